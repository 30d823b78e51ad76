package userRepo

import (
	"tourbook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines persistence operations for platform accounts.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.User, error)
	GetAll() ([]models.User, error)
	UpdateTokenHash(id, tokenHash string) error
	SetActive(id string, active bool) error
	CountByRole() ([]models.StatusCount, error)
}
