package middleware

import (
	"context"
	"net/http"
	"strings"

	userRepo "tourbook/database/repository/user"
	"tourbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// JWTAuthMiddleware authenticates the bearer token and, when roles are
// given, requires the token's role to be one of them. The token hash is
// checked against the Redis auth cache first and falls back to the
// account record on a miss, so a revoked or superseded token dies as
// soon as the cache entry expires or is dropped.
func JWTAuthMiddleware(repo userRepo.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		if len(roles) > 0 && !roleAllowed(role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "This action is not available for your role"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		ctx := context.Background()
		cacheKey := utils.AuthCachePrefix + userID

		authCache := utils.GetAuthCacheClient()
		if authCache != nil {
			cachedHash, err := authCache.Get(ctx, cacheKey).Result()
			if err == nil {
				if cachedHash != computedHash {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token mismatch"})
					return
				}
				_ = authCache.Expire(ctx, cacheKey, utils.AuthCacheTTL).Err()
				c.Set(CtxUserID, userID)
				c.Set(CtxRole, role)
				c.Next()
				return
			} else if err != redis.Nil {
				utils.GetLogger().Warn("auth cache lookup failed, falling back to DB", zap.Error(err))
			}
		}

		proj := bson.M{"id": 1, "role": 1, "active": 1, "tokenHash": 1}
		usr, err := repo.GetByIDWithProjection(userID, proj)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication error"})
			return
		}
		if !usr.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "This account has been deactivated"})
			return
		}
		if usr.TokenHash == "" || usr.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token mismatch"})
			return
		}

		if authCache != nil {
			_ = authCache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxRole, role)
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
