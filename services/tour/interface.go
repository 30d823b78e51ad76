package tour

import (
	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
)

// TourService owns the tour catalog: school-admin CRUD on their own
// tours and the public listing parents browse.
type TourService interface {
	Create(schoolID string, input models.TourInput) (*models.Tour, error)
	Update(schoolID, tourID string, input models.TourInput) (*models.Tour, error)
	Delete(schoolID, tourID string) error
	GetByID(id string) (*models.Tour, error)
	ListForSchoolAdmin(schoolID string) ([]models.Tour, error)
	ListPublic(schoolID string) ([]models.Tour, error)
}

// DefaultTourService is the production implementation.
type DefaultTourService struct {
	Repo tourRepo.TourRepository
}
