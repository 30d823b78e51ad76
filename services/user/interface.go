package user

import (
	schoolRepo "tourbook/database/repository/school"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
)

// UserService owns account registration, authentication and the
// system-admin account controls.
type UserService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	GetByID(id string) (*models.User, error)
	ListAll() ([]models.User, error)
	SetActive(id string, active bool) (*models.User, error)
}

// DefaultUserService is the production implementation. SchoolRepo is
// needed because registering a school_admin creates the (unverified)
// school in the same flow.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	SchoolRepo schoolRepo.SchoolRepository
}
