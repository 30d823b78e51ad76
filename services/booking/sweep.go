package booking

import (
	"context"
	"time"

	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// CompleteOverdue promotes confirmed bookings whose tour date has
// passed into completed. It is idempotent and safe to run from any
// number of callers: the underlying update only matches bookings still
// in confirmed. Both the inline list path and the scheduled worker call
// this.
func (svc *DefaultBookingService) CompleteOverdue(now time.Time) (int64, error) {
	today := now.Format(utils.TourDateLayout)
	n, err := svc.Repo.CompleteOverdue(today)
	if err != nil {
		return 0, utils.NewInternalError("overdue booking sweep failed", err)
	}
	if n > 0 {
		utils.GetLogger().Info("completed overdue bookings", zap.Int64("count", n))
	}
	return n, nil
}

// ListParentBookings returns a parent's bookings, sweeping overdue ones
// into completed first so the listing never shows a stale confirmed
// booking for a past tour.
func (svc *DefaultBookingService) ListParentBookings(ctx context.Context, parentID string) ([]models.Booking, error) {
	if _, err := svc.CompleteOverdue(time.Now()); err != nil {
		// The sweep is maintenance; a failed sweep must not block reads.
		utils.GetLogger().Warn("inline overdue sweep failed", zap.Error(err))
	}

	bookings, err := svc.Repo.ListByParent(parentID)
	if err != nil {
		return nil, utils.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}

// ListSchoolBookings returns all bookings against a school's tours.
func (svc *DefaultBookingService) ListSchoolBookings(schoolID string) ([]models.Booking, error) {
	bookings, err := svc.Repo.ListBySchool(schoolID)
	if err != nil {
		return nil, utils.NewInternalError("failed to list bookings", err)
	}
	return bookings, nil
}
