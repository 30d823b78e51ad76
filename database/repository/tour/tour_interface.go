package tourRepo

import "tourbook/models"

// TourRepository defines persistence operations for the tour catalog.
// currentBookings is never written through this interface; only the
// booking repository's transactional paths touch it.
type TourRepository interface {
	Create(tour *models.Tour) error
	UpdateDetails(tour *models.Tour) error
	Delete(id string) error
	GetByID(id string) (*models.Tour, error)
	ListBySchool(schoolID string, activeOnly bool) ([]models.Tour, error)
	CountUpcoming(fromDate string) (int, error)
	UpcomingFillRates(schoolID, fromDate string) ([]models.TourFillRate, error)
}
