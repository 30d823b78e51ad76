package school

import (
	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
)

// SchoolService owns the public directory, profile management, rating
// aggregation and system-admin verification.
type SchoolService interface {
	ListVerified(filter schoolRepo.SchoolFilter) ([]models.School, error)
	GetByID(id string) (*models.School, error)
	GetByAdminID(adminID string) (*models.School, error)
	UpdateProfile(adminID string, input models.SchoolUpdateInput) (*models.School, error)
	SubmitRating(parentID, schoolID string, input models.RatingInput) (*models.School, error)
	SetVerified(schoolID string, verified bool) (*models.School, error)
	ListAll() ([]models.School, error)
}

// DefaultSchoolService is the production implementation.
type DefaultSchoolService struct {
	Repo schoolRepo.SchoolRepository
}
