package tour

import (
	"errors"
	"time"

	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
	"tourbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validateInput checks the invariants shared by create and update.
func validateInput(input models.TourInput) error {
	if _, err := time.Parse(utils.TourDateLayout, input.Date); err != nil {
		return utils.NewValidationError("date must be in YYYY-MM-DD format")
	}
	if input.MaxCapacity < 1 {
		return utils.NewValidationError("maxCapacity must be a positive integer")
	}
	if len(input.TimeSlots) == 0 || len(input.TimeSlots) > utils.MaxTimeSlotsPerTour {
		return utils.NewValidationError("a tour must offer between 1 and 3 time slots")
	}
	for _, slot := range input.TimeSlots {
		if slot.StartTime == "" || slot.EndTime == "" || slot.StartTime >= slot.EndTime {
			return utils.NewValidationError("each time slot needs a start time before its end time")
		}
	}
	if !models.ValidTourType(input.TourType) {
		return utils.NewValidationError("tourType must be Virtual, Physical or Hybrid")
	}
	return nil
}

// Create adds a tour to the admin's school.
func (svc *DefaultTourService) Create(schoolID string, input models.TourInput) (*models.Tour, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	t := &models.Tour{
		ID:          uuid.New().String(),
		SchoolID:    schoolID,
		Title:       input.Title,
		Date:        input.Date,
		TimeSlots:   input.TimeSlots,
		MaxCapacity: input.MaxCapacity,
		TourType:    input.TourType,
		IsActive:    active,
	}
	if err := svc.Repo.Create(t); err != nil {
		return nil, utils.NewInternalError("failed to create tour", err)
	}

	utils.GetLogger().Info("tour created",
		zap.String("tourId", t.ID),
		zap.String("schoolId", schoolID),
	)
	return t, nil
}

// Update edits a tour owned by the admin's school. The capacity guard
// lives in the repository: shrinking maxCapacity below the live booking
// count is rejected.
func (svc *DefaultTourService) Update(schoolID, tourID string, input models.TourInput) (*models.Tour, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	t, err := svc.ownedTour(schoolID, tourID)
	if err != nil {
		return nil, err
	}

	t.Title = input.Title
	t.Date = input.Date
	t.TimeSlots = input.TimeSlots
	t.MaxCapacity = input.MaxCapacity
	t.TourType = input.TourType
	if input.IsActive != nil {
		t.IsActive = *input.IsActive
	}

	if err := svc.Repo.UpdateDetails(t); err != nil {
		switch {
		case errors.Is(err, tourRepo.ErrNotFound):
			return nil, utils.NewNotFoundError("tour not found")
		case errors.Is(err, tourRepo.ErrCapacityConflict):
			return nil, utils.NewPolicyError("maxCapacity cannot be lower than current bookings")
		default:
			return nil, utils.NewInternalError("failed to update tour", err)
		}
	}
	return t, nil
}

// Delete removes a tour that has no live bookings.
func (svc *DefaultTourService) Delete(schoolID, tourID string) error {
	if _, err := svc.ownedTour(schoolID, tourID); err != nil {
		return err
	}

	if err := svc.Repo.Delete(tourID); err != nil {
		switch {
		case errors.Is(err, tourRepo.ErrNotFound):
			return utils.NewNotFoundError("tour not found")
		case errors.Is(err, tourRepo.ErrCapacityConflict):
			return utils.NewPolicyError("tour still has bookings and cannot be deleted")
		default:
			return utils.NewInternalError("failed to delete tour", err)
		}
	}
	return nil
}

// GetByID returns one tour.
func (svc *DefaultTourService) GetByID(id string) (*models.Tour, error) {
	t, err := svc.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, tourRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("tour not found")
		}
		return nil, utils.NewInternalError("failed to load tour", err)
	}
	return t, nil
}

// ListForSchoolAdmin returns all of a school's tours, active or not.
func (svc *DefaultTourService) ListForSchoolAdmin(schoolID string) ([]models.Tour, error) {
	tours, err := svc.Repo.ListBySchool(schoolID, false)
	if err != nil {
		return nil, utils.NewInternalError("failed to list tours", err)
	}
	return tours, nil
}

// ListPublic returns a school's active tours for parents to browse.
func (svc *DefaultTourService) ListPublic(schoolID string) ([]models.Tour, error) {
	tours, err := svc.Repo.ListBySchool(schoolID, true)
	if err != nil {
		return nil, utils.NewInternalError("failed to list tours", err)
	}
	return tours, nil
}

// ownedTour loads a tour and verifies it belongs to the admin's school.
func (svc *DefaultTourService) ownedTour(schoolID, tourID string) (*models.Tour, error) {
	t, err := svc.GetByID(tourID)
	if err != nil {
		return nil, err
	}
	if t.SchoolID != schoolID {
		return nil, utils.NewNotFoundError("tour not found")
	}
	return t, nil
}
