package bookingRepo

import (
	"context"
	"time"

	"tourbook/models"
)

// BookingRepository defines persistence operations for the booking
// engine. Capacity-affecting writes (create, cancel) run inside a
// multi-document transaction so the tour counter and the booking record
// can never diverge.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	ListByParent(parentID string) ([]models.Booking, error)
	ListBySchool(schoolID string) ([]models.Booking, error)
	CreateWithCapacity(ctx context.Context, booking *models.Booking) error
	CancelWithRelease(ctx context.Context, bookingID string, cancelledAt time.Time) error
	TransitionStatus(bookingID string, from, to models.BookingStatus) error
	DeleteCancelled(bookingID, parentID string) error
	CompleteOverdue(beforeDate string) (int64, error)
	CountByStatus(schoolID string) ([]models.StatusCount, error)
	TopSchools(limit int) ([]models.SchoolBookingVolume, error)
}
