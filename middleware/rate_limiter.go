package middleware

import (
	"net/http"
	"sync"
	"time"

	"tourbook/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	visitorMu sync.Mutex
	visitors  = map[string]*rate.Limiter{}
)

func limiterFor(ip string) *rate.Limiter {
	visitorMu.Lock()
	defer visitorMu.Unlock()

	if l, ok := visitors[ip]; ok {
		return l
	}
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 100
	}
	l := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
	visitors[ip] = l
	return l
}

// RateLimitMiddleware throttles requests per client IP. The per-minute
// budget comes from config; burst equals the budget.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		if !limiterFor(ip).Allow() {
			zap.L().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
