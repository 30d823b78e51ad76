package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "tourbook/database/repository/booking"
	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking validates the request against the tour's offer and
// inserts the booking while claiming capacity transactionally.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, parentID string, req models.CreateBookingRequest) (*models.Booking, error) {
	if req.NumberOfGuests == 0 {
		req.NumberOfGuests = 1
	}
	if req.NumberOfGuests < 1 {
		return nil, utils.NewValidationError("numberOfGuests must be a positive integer")
	}

	tour, err := svc.TourRepo.GetByID(req.TourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("tour not found")
		}
		return nil, utils.NewInternalError("failed to load tour", err)
	}
	if tour.SchoolID != req.SchoolID {
		return nil, utils.NewValidationError("tour does not belong to the given school")
	}
	if !tour.IsActive {
		return nil, utils.NewPolicyError("this tour is no longer accepting bookings")
	}
	if !tour.HasSlot(req.SelectedTimeSlot) {
		return nil, utils.NewValidationError("selected time slot is not offered by this tour")
	}
	if tour.Date < time.Now().Format(utils.TourDateLayout) {
		return nil, utils.NewPolicyError("cannot book a tour whose date has passed")
	}

	booking := &models.Booking{
		ID:               uuid.New().String(),
		TourID:           tour.ID,
		SchoolID:         tour.SchoolID,
		ParentID:         parentID,
		NumberOfGuests:   req.NumberOfGuests,
		SelectedTimeSlot: req.SelectedTimeSlot,
		TourDate:         tour.Date,
	}

	if err := svc.Repo.CreateWithCapacity(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrDuplicateBooking):
			return nil, utils.NewConflictError("you already have an active booking for this tour")
		case errors.Is(err, bookingRepo.ErrNoCapacity):
			return nil, utils.NewPolicyError("not enough available spots on this tour")
		default:
			return nil, utils.NewInternalError("failed to create booking", err)
		}
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("tourId", tour.ID),
		zap.Int("guests", booking.NumberOfGuests),
	)
	return booking, nil
}
