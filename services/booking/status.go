package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "tourbook/database/repository/booking"
	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// UpdateStatus applies a school-admin status transition to a booking
// belonging to the admin's school. Transitions into cancelled release
// the booking's spots like a parent cancellation; the notice window
// does not apply to admins.
func (svc *DefaultBookingService) UpdateStatus(ctx context.Context, schoolID, bookingID string, target models.BookingStatus) (*models.Booking, error) {
	if !target.IsValid() {
		return nil, utils.NewValidationError("unknown booking status")
	}

	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("booking not found")
		}
		return nil, utils.NewInternalError("failed to load booking", err)
	}
	if booking.SchoolID != schoolID {
		return nil, utils.NewNotFoundError("booking not found")
	}
	if !booking.Status.CanTransitionTo(target) {
		return nil, utils.NewPolicyError(
			"cannot move a " + string(booking.Status) + " booking to " + string(target))
	}

	if target == models.BookingCancelled {
		cancelledAt := time.Now()
		err = svc.Repo.CancelWithRelease(ctx, booking.ID, cancelledAt)
		if err == nil {
			booking.CancelledAt = &cancelledAt
		}
	} else {
		err = svc.Repo.TransitionStatus(booking.ID, booking.Status, target)
	}
	if err != nil {
		if errors.Is(err, bookingRepo.ErrInvalidState) {
			return nil, utils.NewConflictError("booking was updated concurrently, please retry")
		}
		return nil, utils.NewInternalError("failed to update booking status", err)
	}

	booking.Status = target
	utils.GetLogger().Info("booking status updated",
		zap.String("bookingId", booking.ID),
		zap.String("status", string(target)),
	)
	return booking, nil
}
