package schoolRepo

import "tourbook/models"

// SchoolFilter narrows the public school listing.
type SchoolFilter struct {
	Name   string // Case-insensitive substring match.
	FeeMin int
	FeeMax int // 0 means no upper bound.
}

// SchoolRepository defines persistence operations for school profiles.
type SchoolRepository interface {
	Create(school *models.School) error
	Update(school *models.School) error
	GetByID(id string) (*models.School, error)
	GetByAdminID(adminID string) (*models.School, error)
	GetAll() ([]models.School, error)
	ListVerified(filter SchoolFilter) ([]models.School, error)
	SetVerified(id string, verified bool) error
	AddRating(schoolID string, rating models.SchoolRating) error
	CountByVerification() ([]models.StatusCount, error)
}
