package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"tourbook/config"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new parent or school_admin account. Registering a
// school_admin also creates the admin's (unverified) school and links
// it to the account. System admins are provisioned out-of-band and
// cannot self-register.
func (s *DefaultUserService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Role != models.RoleParent && req.Role != models.RoleSchoolAdmin {
		return nil, utils.NewValidationError("role must be parent or school_admin")
	}
	if req.Role == models.RoleSchoolAdmin && req.SchoolName == "" {
		return nil, utils.NewValidationError("schoolName is required for school_admin registration")
	}
	if len(req.Password) < 8 {
		return nil, utils.NewValidationError("password must be at least 8 characters")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, utils.NewInternalError("failed to check existing account", err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewInternalError("failed to hash password", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         req.Role,
		Active:       true,
		// Parents are usable immediately; school admins are verified
		// together with their school by a system admin.
		Verified: req.Role == models.RoleParent,
	}

	if req.Role == models.RoleSchoolAdmin {
		school := &models.School{
			ID:       uuid.New().String(),
			Name:     req.SchoolName,
			Address:  req.SchoolAddress,
			AdminID:  usr.ID,
			Verified: false,
			FeeRange: req.FeeRange,
		}
		if err := s.SchoolRepo.Create(school); err != nil {
			return nil, utils.NewInternalError("failed to create school", err)
		}
		usr.SchoolID = school.ID
	}

	if err := s.Repo.Create(usr); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, utils.NewConflictError("an account with this email already exists")
		}
		return nil, utils.NewInternalError("failed to create account", err)
	}

	utils.GetLogger().Info("account registered",
		zap.String("userId", usr.ID),
		zap.String("role", usr.Role),
	)
	return s.issueToken(usr)
}

// Login verifies credentials and issues a fresh token.
func (s *DefaultUserService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	usr, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, utils.NewInternalError("failed to load account", err)
	}
	if usr == nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}
	if !usr.Active {
		return nil, utils.NewForbiddenError("this account has been deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(req.Password)) != nil {
		return nil, utils.NewUnauthorizedError("invalid email or password")
	}

	return s.issueToken(usr)
}

// issueToken generates a JWT, persists its hash and primes the auth
// cache so the first authenticated request skips the DB lookup.
func (s *DefaultUserService) issueToken(usr *models.User) (*models.AuthResponse, error) {
	expiry := time.Duration(config.AppConfig.JWTExpiryHours) * time.Hour
	if expiry == 0 {
		expiry = 24 * time.Hour
	}

	token, err := utils.GenerateToken(usr.ID, usr.Role, expiry)
	if err != nil {
		return nil, utils.NewInternalError("failed to generate token", err)
	}

	hash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(usr.ID, hash); err != nil {
		return nil, utils.NewInternalError("failed to store token", err)
	}
	usr.TokenHash = hash

	if cache := utils.AuthCacheClient; cache != nil {
		key := utils.AuthCachePrefix + usr.ID
		_ = cache.Set(context.Background(), key, hash, utils.AuthCacheTTL).Err()
	}

	return &models.AuthResponse{Token: token, User: usr}, nil
}
