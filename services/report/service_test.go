package report

import (
	"context"
	"testing"
	"time"

	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// The report service only reads aggregates; the fakes return canned
// ones and record which school scope was queried.

type fakeUserRepo struct{ byRole []models.StatusCount }

func (f *fakeUserRepo) Create(u *models.User) error           { return nil }
func (f *fakeUserRepo) Update(u *models.User) error           { return nil }
func (f *fakeUserRepo) Delete(id string) error                { return nil }
func (f *fakeUserRepo) GetByID(id string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetAll() ([]models.User, error)            { return nil, nil }
func (f *fakeUserRepo) UpdateTokenHash(id, tokenHash string) error { return nil }
func (f *fakeUserRepo) SetActive(id string, active bool) error     { return nil }
func (f *fakeUserRepo) CountByRole() ([]models.StatusCount, error) { return f.byRole, nil }

type fakeSchoolRepo struct{ byStatus []models.StatusCount }

func (f *fakeSchoolRepo) Create(s *models.School) error                  { return nil }
func (f *fakeSchoolRepo) Update(s *models.School) error                  { return nil }
func (f *fakeSchoolRepo) GetByID(id string) (*models.School, error)      { return nil, nil }
func (f *fakeSchoolRepo) GetByAdminID(id string) (*models.School, error) { return nil, nil }
func (f *fakeSchoolRepo) GetAll() ([]models.School, error)               { return nil, nil }
func (f *fakeSchoolRepo) ListVerified(filter schoolRepo.SchoolFilter) ([]models.School, error) {
	return nil, nil
}
func (f *fakeSchoolRepo) SetVerified(id string, verified bool) error             { return nil }
func (f *fakeSchoolRepo) AddRating(schoolID string, r models.SchoolRating) error { return nil }
func (f *fakeSchoolRepo) CountByVerification() ([]models.StatusCount, error) {
	return f.byStatus, nil
}

type fakeTourRepo struct {
	upcoming  int
	fillRates []models.TourFillRate
	fillScope string
}

func (f *fakeTourRepo) Create(tour *models.Tour) error          { return nil }
func (f *fakeTourRepo) UpdateDetails(tour *models.Tour) error   { return nil }
func (f *fakeTourRepo) Delete(id string) error                  { return nil }
func (f *fakeTourRepo) GetByID(id string) (*models.Tour, error) { return nil, nil }
func (f *fakeTourRepo) ListBySchool(schoolID string, activeOnly bool) ([]models.Tour, error) {
	return nil, nil
}
func (f *fakeTourRepo) CountUpcoming(fromDate string) (int, error) { return f.upcoming, nil }
func (f *fakeTourRepo) UpcomingFillRates(schoolID, fromDate string) ([]models.TourFillRate, error) {
	f.fillScope = schoolID
	return f.fillRates, nil
}

type fakeBookingRepo struct {
	byStatus    []models.StatusCount
	top         []models.SchoolBookingVolume
	statusScope string
}

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error)           { return nil, nil }
func (f *fakeBookingRepo) ListByParent(parentID string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) ListBySchool(schoolID string) ([]models.Booking, error) { return nil, nil }
func (f *fakeBookingRepo) CreateWithCapacity(ctx context.Context, booking *models.Booking) error {
	return nil
}
func (f *fakeBookingRepo) CancelWithRelease(ctx context.Context, bookingID string, cancelledAt time.Time) error {
	return nil
}
func (f *fakeBookingRepo) TransitionStatus(bookingID string, from, to models.BookingStatus) error {
	return nil
}
func (f *fakeBookingRepo) DeleteCancelled(bookingID, parentID string) error { return nil }
func (f *fakeBookingRepo) CompleteOverdue(beforeDate string) (int64, error) { return 0, nil }
func (f *fakeBookingRepo) CountByStatus(schoolID string) ([]models.StatusCount, error) {
	f.statusScope = schoolID
	return f.byStatus, nil
}
func (f *fakeBookingRepo) TopSchools(limit int) ([]models.SchoolBookingVolume, error) {
	return f.top, nil
}

func TestPlatformReport(t *testing.T) {
	bookings := &fakeBookingRepo{
		byStatus: []models.StatusCount{{Key: "pending", Count: 4}, {Key: "confirmed", Count: 9}},
		top:      []models.SchoolBookingVolume{{SchoolID: "school-1", Name: "St Mary's", Bookings: 13}},
	}
	svc := &DefaultReportService{
		UserRepo:    &fakeUserRepo{byRole: []models.StatusCount{{Key: "parent", Count: 40}}},
		SchoolRepo:  &fakeSchoolRepo{byStatus: []models.StatusCount{{Key: "verified", Count: 7}}},
		TourRepo:    &fakeTourRepo{upcoming: 12},
		BookingRepo: bookings,
	}

	rep, err := svc.PlatformReport()
	require.NoError(t, err)

	assert.Equal(t, 12, rep.ToursScheduled)
	assert.Equal(t, []models.StatusCount{{Key: "parent", Count: 40}}, rep.UsersByRole)
	assert.Equal(t, []models.StatusCount{{Key: "verified", Count: 7}}, rep.SchoolsByStatus)
	assert.Len(t, rep.TopSchools, 1)
	// Platform scope: the status aggregation is not limited to a school.
	assert.Empty(t, bookings.statusScope)
}

func TestSchoolDashboard(t *testing.T) {
	tours := &fakeTourRepo{
		fillRates: []models.TourFillRate{{TourID: "t1", MaxCapacity: 20, CurrentBookings: 15, FillRate: 0.75}},
	}
	bookings := &fakeBookingRepo{
		byStatus: []models.StatusCount{{Key: "confirmed", Count: 15}},
	}
	svc := &DefaultReportService{
		UserRepo:    &fakeUserRepo{},
		SchoolRepo:  &fakeSchoolRepo{},
		TourRepo:    tours,
		BookingRepo: bookings,
	}

	dash, err := svc.SchoolDashboard("school-1")
	require.NoError(t, err)

	assert.Equal(t, "school-1", bookings.statusScope)
	assert.Equal(t, "school-1", tours.fillScope)
	require.Len(t, dash.UpcomingTours, 1)
	assert.InDelta(t, 0.75, dash.UpcomingTours[0].FillRate, 1e-9)
}
