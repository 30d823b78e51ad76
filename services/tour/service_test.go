package tour

import (
	"testing"

	tourRepo "tourbook/database/repository/tour"
	"tourbook/models"
	"tourbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTourRepo records writes and serves a fixed set of tours.
type fakeTourRepo struct {
	tours     map[string]*models.Tour
	updateErr error
	deleteErr error

	created []string
	deleted []string
}

func newFakeTourRepo(tours ...*models.Tour) *fakeTourRepo {
	f := &fakeTourRepo{tours: map[string]*models.Tour{}}
	for _, t := range tours {
		f.tours[t.ID] = t
	}
	return f
}

func (f *fakeTourRepo) Create(tour *models.Tour) error {
	f.created = append(f.created, tour.ID)
	f.tours[tour.ID] = tour
	return nil
}

func (f *fakeTourRepo) UpdateDetails(tour *models.Tour) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.tours[tour.ID] = tour
	return nil
}

func (f *fakeTourRepo) Delete(id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.tours, id)
	return nil
}

func (f *fakeTourRepo) GetByID(id string) (*models.Tour, error) {
	t, ok := f.tours[id]
	if !ok {
		return nil, tourRepo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTourRepo) ListBySchool(schoolID string, activeOnly bool) ([]models.Tour, error) {
	var out []models.Tour
	for _, t := range f.tours {
		if t.SchoolID != schoolID {
			continue
		}
		if activeOnly && !t.IsActive {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTourRepo) CountUpcoming(fromDate string) (int, error) { return 0, nil }
func (f *fakeTourRepo) UpcomingFillRates(schoolID, fromDate string) ([]models.TourFillRate, error) {
	return nil, nil
}

func validInput() models.TourInput {
	return models.TourInput{
		Title:       "Open Morning",
		Date:        "2026-11-20",
		TimeSlots:   []models.TimeSlot{{StartTime: "09:00", EndTime: "10:30"}},
		MaxCapacity: 25,
		TourType:    models.TourTypePhysical,
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.TourInput)
		ok     bool
	}{
		{"valid", func(in *models.TourInput) {}, true},
		{"bad date format", func(in *models.TourInput) { in.Date = "20/11/2026" }, false},
		{"zero capacity", func(in *models.TourInput) { in.MaxCapacity = 0 }, false},
		{"no slots", func(in *models.TourInput) { in.TimeSlots = nil }, false},
		{"too many slots", func(in *models.TourInput) {
			in.TimeSlots = []models.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "11:00"},
				{StartTime: "11:00", EndTime: "12:00"},
				{StartTime: "12:00", EndTime: "13:00"},
			}
		}, false},
		{"three slots allowed", func(in *models.TourInput) {
			in.TimeSlots = []models.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "10:00", EndTime: "11:00"},
				{StartTime: "11:00", EndTime: "12:00"},
			}
		}, true},
		{"slot start after end", func(in *models.TourInput) {
			in.TimeSlots = []models.TimeSlot{{StartTime: "15:00", EndTime: "14:00"}}
		}, false},
		{"slot missing end", func(in *models.TourInput) {
			in.TimeSlots = []models.TimeSlot{{StartTime: "09:00"}}
		}, false},
		{"unknown tour type", func(in *models.TourInput) { in.TourType = "OpenDay" }, false},
		{"virtual type allowed", func(in *models.TourInput) { in.TourType = models.TourTypeVirtual }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := validateInput(in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCreateTourDefaultsActive(t *testing.T) {
	repo := newFakeTourRepo()
	svc := &DefaultTourService{Repo: repo}

	created, err := svc.Create("school-1", validInput())
	require.NoError(t, err)

	assert.True(t, created.IsActive)
	assert.Equal(t, "school-1", created.SchoolID)
	assert.NotEmpty(t, created.ID)
	assert.Zero(t, created.CurrentBookings)
}

func TestUpdateTourCapacityGuard(t *testing.T) {
	existing := &models.Tour{
		ID: "t1", SchoolID: "school-1", Title: "Open Morning",
		Date: "2026-11-20", MaxCapacity: 25, CurrentBookings: 10,
		TimeSlots: []models.TimeSlot{{StartTime: "09:00", EndTime: "10:30"}},
		TourType:  models.TourTypePhysical, IsActive: true,
	}
	repo := newFakeTourRepo(existing)
	repo.updateErr = tourRepo.ErrCapacityConflict
	svc := &DefaultTourService{Repo: repo}

	in := validInput()
	in.MaxCapacity = 5

	_, err := svc.Update("school-1", "t1", in)
	require.Error(t, err)
	assert.Equal(t, 400, utils.HTTPStatus(err))
}

func TestUpdateTourOwnership(t *testing.T) {
	existing := &models.Tour{
		ID: "t1", SchoolID: "school-1", Date: "2026-11-20",
		MaxCapacity: 25, TimeSlots: []models.TimeSlot{{StartTime: "09:00", EndTime: "10:30"}},
		TourType: models.TourTypePhysical,
	}
	svc := &DefaultTourService{Repo: newFakeTourRepo(existing)}

	// Another school's tour reads as not found.
	_, err := svc.Update("school-2", "t1", validInput())
	require.Error(t, err)
	assert.Equal(t, 404, utils.HTTPStatus(err))
}

func TestDeleteTourWithBookings(t *testing.T) {
	existing := &models.Tour{
		ID: "t1", SchoolID: "school-1", CurrentBookings: 3,
	}
	repo := newFakeTourRepo(existing)
	repo.deleteErr = tourRepo.ErrCapacityConflict
	svc := &DefaultTourService{Repo: repo}

	err := svc.Delete("school-1", "t1")
	require.Error(t, err)
	assert.Equal(t, 400, utils.HTTPStatus(err))
	assert.Empty(t, repo.deleted)
}
