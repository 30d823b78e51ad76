package user

import (
	"net/http"
	"testing"

	schoolRepo "tourbook/database/repository/school"
	userRepo "tourbook/database/repository/user"
	"tourbook/models"
	"tourbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*models.User{}, byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Update(u *models.User) error {
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) Delete(id string) error {
	if u, ok := f.byID[id]; ok {
		delete(f.byEmail, u.Email)
		delete(f.byID, id)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, userRepo.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDWithProjection(id string, projection bson.M) (*models.User, error) {
	return f.GetByID(id)
}

func (f *fakeUserRepo) GetByEmailWithProjection(email string, projection bson.M) (*models.User, error) {
	return f.GetByEmail(email)
}

func (f *fakeUserRepo) GetAll() ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateTokenHash(id, tokenHash string) error {
	if u, ok := f.byID[id]; ok {
		u.TokenHash = tokenHash
	}
	return nil
}

func (f *fakeUserRepo) SetActive(id string, active bool) error {
	u, ok := f.byID[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.Active = active
	return nil
}

func (f *fakeUserRepo) CountByRole() ([]models.StatusCount, error) { return nil, nil }

type fakeSchoolRepo struct {
	schools []*models.School
}

func (f *fakeSchoolRepo) Create(s *models.School) error {
	f.schools = append(f.schools, s)
	return nil
}
func (f *fakeSchoolRepo) Update(s *models.School) error { return nil }
func (f *fakeSchoolRepo) GetByID(id string) (*models.School, error) {
	return nil, nil
}
func (f *fakeSchoolRepo) GetByAdminID(adminID string) (*models.School, error) {
	return nil, nil
}
func (f *fakeSchoolRepo) GetAll() ([]models.School, error) { return nil, nil }
func (f *fakeSchoolRepo) ListVerified(filter schoolRepo.SchoolFilter) ([]models.School, error) {
	return nil, nil
}
func (f *fakeSchoolRepo) SetVerified(id string, verified bool) error { return nil }
func (f *fakeSchoolRepo) AddRating(schoolID string, rating models.SchoolRating) error {
	return nil
}
func (f *fakeSchoolRepo) CountByVerification() ([]models.StatusCount, error) { return nil, nil }

func newUserService() (*DefaultUserService, *fakeUserRepo, *fakeSchoolRepo) {
	ur := newFakeUserRepo()
	sr := &fakeSchoolRepo{}
	return &DefaultUserService{Repo: ur, SchoolRepo: sr}, ur, sr
}

func TestRegisterParent(t *testing.T) {
	svc, ur, sr := newUserService()

	resp, err := svc.Register(models.RegisterRequest{
		Name:     "Dana",
		Email:    "  Dana@Example.COM ",
		Password: "supersecret",
		Role:     models.RoleParent,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleParent, resp.User.Role)
	assert.True(t, resp.User.Active)
	assert.True(t, resp.User.Verified)
	assert.Empty(t, resp.User.SchoolID)
	assert.Empty(t, sr.schools)

	// Email is normalized before storage.
	stored, _ := ur.GetByEmail("dana@example.com")
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.NotEmpty(t, stored.TokenHash)
}

func TestRegisterSchoolAdminCreatesUnverifiedSchool(t *testing.T) {
	svc, _, sr := newUserService()

	resp, err := svc.Register(models.RegisterRequest{
		Name:       "Head Office",
		Email:      "office@stmarys.example",
		Password:   "supersecret",
		Role:       models.RoleSchoolAdmin,
		SchoolName: "St Mary's",
	})
	require.NoError(t, err)

	require.Len(t, sr.schools, 1)
	school := sr.schools[0]
	assert.False(t, school.Verified)
	assert.Equal(t, resp.User.ID, school.AdminID)
	assert.Equal(t, school.ID, resp.User.SchoolID)
	assert.False(t, resp.User.Verified)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newUserService()

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"system admin cannot self-register", models.RegisterRequest{
			Email: "a@b.c", Password: "supersecret", Role: models.RoleSystemAdmin,
		}},
		{"unknown role", models.RegisterRequest{
			Email: "a@b.c", Password: "supersecret", Role: "teacher",
		}},
		{"short password", models.RegisterRequest{
			Email: "a@b.c", Password: "short", Role: models.RoleParent,
		}},
		{"school admin without school name", models.RegisterRequest{
			Email: "a@b.c", Password: "supersecret", Role: models.RoleSchoolAdmin,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.req)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, utils.HTTPStatus(err))
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()
	req := models.RegisterRequest{
		Email: "dup@example.com", Password: "supersecret", Role: models.RoleParent,
	}

	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, utils.HTTPStatus(err))
}

func TestLogin(t *testing.T) {
	svc, ur, _ := newUserService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, ur.Create(&models.User{
		ID: "u1", Email: "dana@example.com", PasswordHash: string(hash),
		Role: models.RoleParent, Active: true,
	}))

	resp, err := svc.Login(models.LoginRequest{Email: "Dana@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, utils.HashToken(resp.Token), resp.User.TokenHash)

	_, err = svc.Login(models.LoginRequest{Email: "dana@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, utils.HTTPStatus(err))

	_, err = svc.Login(models.LoginRequest{Email: "nobody@example.com", Password: "supersecret"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, utils.HTTPStatus(err))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, ur, _ := newUserService()
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	require.NoError(t, ur.Create(&models.User{
		ID: "u1", Email: "dana@example.com", PasswordHash: string(hash),
		Role: models.RoleParent, Active: false,
	}))

	_, err := svc.Login(models.LoginRequest{Email: "dana@example.com", Password: "supersecret"})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, utils.HTTPStatus(err))
}
