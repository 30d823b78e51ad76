package booking

import (
	"context"
	"time"

	bookingRepo "tourbook/database/repository/booking"
	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
)

// BookingService is the booking lifecycle and capacity-accounting
// engine. Capacity is live occupancy: creation claims spots, any path
// into cancelled releases them, and the claim/release is atomic with
// the booking write.
type BookingService interface {
	CreateBooking(ctx context.Context, parentID string, req models.CreateBookingRequest) (*models.Booking, error)
	ListParentBookings(ctx context.Context, parentID string) ([]models.Booking, error)
	CancelBooking(ctx context.Context, parentID, bookingID string) (*models.Booking, error)
	DeleteBooking(parentID, bookingID string) error
	ListSchoolBookings(schoolID string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, schoolID, bookingID string, target models.BookingStatus) (*models.Booking, error)
	CompleteOverdue(now time.Time) (int64, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	TourRepo tourRepo.TourRepository
}
