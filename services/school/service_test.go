package school

import (
	"net/http"
	"testing"

	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
	"tourbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchoolRepo struct {
	schools map[string]*models.School

	ratingErr error
	ratings   []models.SchoolRating
}

func newFakeSchoolRepo(schools ...*models.School) *fakeSchoolRepo {
	f := &fakeSchoolRepo{schools: map[string]*models.School{}}
	for _, s := range schools {
		f.schools[s.ID] = s
	}
	return f
}

func (f *fakeSchoolRepo) Create(s *models.School) error {
	f.schools[s.ID] = s
	return nil
}

func (f *fakeSchoolRepo) Update(s *models.School) error {
	if _, ok := f.schools[s.ID]; !ok {
		return schoolRepo.ErrNotFound
	}
	f.schools[s.ID] = s
	return nil
}

func (f *fakeSchoolRepo) GetByID(id string) (*models.School, error) {
	s, ok := f.schools[id]
	if !ok {
		return nil, schoolRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSchoolRepo) GetByAdminID(adminID string) (*models.School, error) {
	for _, s := range f.schools {
		if s.AdminID == adminID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, schoolRepo.ErrNotFound
}

func (f *fakeSchoolRepo) GetAll() ([]models.School, error) {
	var out []models.School
	for _, s := range f.schools {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSchoolRepo) ListVerified(filter schoolRepo.SchoolFilter) ([]models.School, error) {
	var out []models.School
	for _, s := range f.schools {
		if s.Verified {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSchoolRepo) SetVerified(id string, verified bool) error {
	s, ok := f.schools[id]
	if !ok {
		return schoolRepo.ErrNotFound
	}
	s.Verified = verified
	return nil
}

func (f *fakeSchoolRepo) AddRating(schoolID string, rating models.SchoolRating) error {
	if f.ratingErr != nil {
		return f.ratingErr
	}
	s, ok := f.schools[schoolID]
	if !ok {
		return schoolRepo.ErrNotFound
	}
	f.ratings = append(f.ratings, rating)
	s.Ratings = append(s.Ratings, rating)
	s.TotalRatings = len(s.Ratings)
	s.Averages = models.ComputeRatingAverages(s.Ratings)
	return nil
}

func (f *fakeSchoolRepo) CountByVerification() ([]models.StatusCount, error) { return nil, nil }

func demoSchool() *models.School {
	return &models.School{
		ID:       "school-1",
		Name:     "St Mary's",
		AdminID:  "admin-1",
		Verified: true,
		FeeRange: models.FeeRange{Min: 1000, Max: 5000},
	}
}

func TestUpdateProfilePartialEdits(t *testing.T) {
	repo := newFakeSchoolRepo(demoSchool())
	svc := &DefaultSchoolService{Repo: repo}

	updated, err := svc.UpdateProfile("admin-1", models.SchoolUpdateInput{
		Description: "A small village school.",
	})
	require.NoError(t, err)

	// Untouched fields keep their values.
	assert.Equal(t, "St Mary's", updated.Name)
	assert.Equal(t, "A small village school.", updated.Description)
	assert.Equal(t, models.FeeRange{Min: 1000, Max: 5000}, updated.FeeRange)
}

func TestUpdateProfileFeeRangeValidation(t *testing.T) {
	repo := newFakeSchoolRepo(demoSchool())
	svc := &DefaultSchoolService{Repo: repo}

	_, err := svc.UpdateProfile("admin-1", models.SchoolUpdateInput{
		FeeRange: &models.FeeRange{Min: 5000, Max: 1000},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))
}

func TestUpdateProfileWrongAdmin(t *testing.T) {
	svc := &DefaultSchoolService{Repo: newFakeSchoolRepo(demoSchool())}

	_, err := svc.UpdateProfile("someone-else", models.SchoolUpdateInput{Name: "Hijacked"})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, utils.HTTPStatus(err))
}

func TestSubmitRating(t *testing.T) {
	repo := newFakeSchoolRepo(demoSchool())
	svc := &DefaultSchoolService{Repo: repo}

	updated, err := svc.SubmitRating("parent-1", "school-1", models.RatingInput{
		Facilities: 4, Teaching: 5, Safety: 5, Environment: 3, Communication: 4,
		Comment: "Lovely visit.",
	})
	require.NoError(t, err)

	require.Len(t, repo.ratings, 1)
	assert.Equal(t, "parent-1", repo.ratings[0].ParentID)
	assert.Equal(t, 1, updated.TotalRatings)
	assert.InDelta(t, 4.2, updated.Averages.Overall, 1e-9)
}

func TestSubmitRatingScoreBounds(t *testing.T) {
	svc := &DefaultSchoolService{Repo: newFakeSchoolRepo(demoSchool())}

	_, err := svc.SubmitRating("parent-1", "school-1", models.RatingInput{Teaching: 6})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))

	_, err = svc.SubmitRating("parent-1", "school-1", models.RatingInput{Safety: -1})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))
}

func TestSubmitRatingOncePerParent(t *testing.T) {
	repo := newFakeSchoolRepo(demoSchool())
	repo.ratingErr = schoolRepo.ErrDuplicateRating
	svc := &DefaultSchoolService{Repo: repo}

	_, err := svc.SubmitRating("parent-1", "school-1", models.RatingInput{Teaching: 4})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, utils.HTTPStatus(err))
}

func TestSetVerified(t *testing.T) {
	school := demoSchool()
	school.Verified = false
	svc := &DefaultSchoolService{Repo: newFakeSchoolRepo(school)}

	updated, err := svc.SetVerified("school-1", true)
	require.NoError(t, err)
	assert.True(t, updated.Verified)

	_, err = svc.SetVerified("missing", true)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, utils.HTTPStatus(err))
}

func TestListVerifiedSkipsCacheWhenFiltered(t *testing.T) {
	verified := demoSchool()
	hidden := demoSchool()
	hidden.ID = "school-2"
	hidden.Verified = false
	svc := &DefaultSchoolService{Repo: newFakeSchoolRepo(verified, hidden)}

	schools, err := svc.ListVerified(schoolRepo.SchoolFilter{Name: "mary"})
	require.NoError(t, err)
	require.Len(t, schools, 1)
	assert.Equal(t, "school-1", schools[0].ID)
}
