package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "tourbook/database/repository/booking"
	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// checkCancellationWindow enforces the minimum notice for a parent
// cancellation. The comparison is by calendar day: a booking may be
// cancelled while the tour date is at least CancellationWindowDays
// whole days away.
func checkCancellationWindow(tourDate string, now time.Time) error {
	tourDay, err := time.Parse(utils.TourDateLayout, tourDate)
	if err != nil {
		return utils.NewInternalError("booking has a malformed tour date", err)
	}
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysUntil := int(tourDay.Sub(today).Hours() / 24)
	if daysUntil < utils.CancellationWindowDays {
		return utils.NewPolicyError(fmt.Sprintf(
			"bookings can only be cancelled at least %d days before the tour date",
			utils.CancellationWindowDays,
		))
	}
	return nil
}

// CancelBooking cancels a parent's own active booking and releases the
// reserved spots back to the tour.
func (svc *DefaultBookingService) CancelBooking(ctx context.Context, parentID, bookingID string) (*models.Booking, error) {
	booking, err := svc.ownedBooking(parentID, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.IsActive() {
		return nil, utils.NewPolicyError("only pending or confirmed bookings can be cancelled")
	}

	// The window is measured against the tour's current date. The copy
	// stored on the booking can predate an admin reschedule, so prefer
	// the live tour and fall back only when the tour cannot be loaded.
	windowDate := booking.TourDate
	if t, err := svc.TourRepo.GetByID(booking.TourID); err == nil {
		windowDate = t.Date
	}
	if err := checkCancellationWindow(windowDate, time.Now()); err != nil {
		return nil, err
	}

	cancelledAt := time.Now()
	if err := svc.Repo.CancelWithRelease(ctx, booking.ID, cancelledAt); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, utils.NewNotFoundError("booking not found")
		case errors.Is(err, bookingRepo.ErrInvalidState):
			return nil, utils.NewConflictError("booking was updated concurrently, please retry")
		default:
			return nil, utils.NewInternalError("failed to cancel booking", err)
		}
	}

	booking.Status = models.BookingCancelled
	booking.CancelledAt = &cancelledAt

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingId", booking.ID),
		zap.String("tourId", booking.TourID),
	)
	return booking, nil
}

// DeleteBooking hard-removes a booking. Only the owning parent may
// delete, and only after the booking has been cancelled.
func (svc *DefaultBookingService) DeleteBooking(parentID, bookingID string) error {
	booking, err := svc.ownedBooking(parentID, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != models.BookingCancelled {
		return utils.NewPolicyError("booking must be cancelled before it can be deleted")
	}

	if err := svc.Repo.DeleteCancelled(bookingID, parentID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return utils.NewNotFoundError("booking not found")
		case errors.Is(err, bookingRepo.ErrInvalidState):
			return utils.NewPolicyError("booking must be cancelled before it can be deleted")
		default:
			return utils.NewInternalError("failed to delete booking", err)
		}
	}
	return nil
}

// ownedBooking loads a booking and verifies parent ownership. A booking
// owned by someone else is reported as not found, never as forbidden,
// so the API does not leak other parents' booking IDs.
func (svc *DefaultBookingService) ownedBooking(parentID, bookingID string) (*models.Booking, error) {
	booking, err := svc.Repo.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("booking not found")
		}
		return nil, utils.NewInternalError("failed to load booking", err)
	}
	if booking.ParentID != parentID {
		return nil, utils.NewNotFoundError("booking not found")
	}
	return booking, nil
}
