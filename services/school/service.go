package school

import (
	"context"
	"encoding/json"
	"errors"

	schoolRepo "tourbook/database/repository/school"
	"tourbook/models"
	"tourbook/utils"

	"go.uber.org/zap"
)

// ListVerified returns the public school directory. The unfiltered
// listing is served from the Redis cache when possible; filtered
// queries always hit the store.
func (s *DefaultSchoolService) ListVerified(filter schoolRepo.SchoolFilter) ([]models.School, error) {
	ctx := context.Background()
	unfiltered := filter.Name == "" && filter.FeeMin == 0 && filter.FeeMax == 0

	cache := utils.CacheClient
	if unfiltered && cache != nil {
		if cached, err := cache.Get(ctx, utils.SchoolListCacheKey).Result(); err == nil {
			var schools []models.School
			if json.Unmarshal([]byte(cached), &schools) == nil {
				return schools, nil
			}
		}
	}

	schools, err := s.Repo.ListVerified(filter)
	if err != nil {
		return nil, utils.NewInternalError("failed to list schools", err)
	}

	if unfiltered && cache != nil {
		if data, err := json.Marshal(schools); err == nil {
			_ = cache.Set(ctx, utils.SchoolListCacheKey, data, utils.SchoolListCacheTTL).Err()
		}
	}
	return schools, nil
}

// invalidateListing drops the cached public directory after any write
// that could change it.
func (s *DefaultSchoolService) invalidateListing() {
	if cache := utils.CacheClient; cache != nil {
		_ = cache.Del(context.Background(), utils.SchoolListCacheKey).Err()
	}
}

// GetByID returns one school's public profile.
func (s *DefaultSchoolService) GetByID(id string) (*models.School, error) {
	school, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, schoolRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("school not found")
		}
		return nil, utils.NewInternalError("failed to load school", err)
	}
	return school, nil
}

// GetByAdminID returns the school owned by a school_admin account.
func (s *DefaultSchoolService) GetByAdminID(adminID string) (*models.School, error) {
	school, err := s.Repo.GetByAdminID(adminID)
	if err != nil {
		if errors.Is(err, schoolRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("no school linked to this account")
		}
		return nil, utils.NewInternalError("failed to load school", err)
	}
	return school, nil
}

// UpdateProfile applies a school admin's edits to their own school.
func (s *DefaultSchoolService) UpdateProfile(adminID string, input models.SchoolUpdateInput) (*models.School, error) {
	school, err := s.GetByAdminID(adminID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		school.Name = input.Name
	}
	if input.Description != "" {
		school.Description = input.Description
	}
	if input.Address != "" {
		school.Address = input.Address
	}
	if input.FeeRange != nil {
		if input.FeeRange.Min < 0 || input.FeeRange.Max < input.FeeRange.Min {
			return nil, utils.NewValidationError("feeRange must satisfy 0 <= min <= max")
		}
		school.FeeRange = *input.FeeRange
	}

	if err := s.Repo.Update(school); err != nil {
		return nil, utils.NewInternalError("failed to update school", err)
	}
	s.invalidateListing()
	return school, nil
}

// SubmitRating records one parent's review of a school. Each parent may
// rate a school once; the duplicate guard and the average recompute run
// in one repository transaction.
func (s *DefaultSchoolService) SubmitRating(parentID, schoolID string, input models.RatingInput) (*models.School, error) {
	for _, score := range []int{input.Facilities, input.Teaching, input.Safety, input.Environment, input.Communication} {
		if score < 0 || score > 5 {
			return nil, utils.NewValidationError("rating scores must be between 0 and 5")
		}
	}

	rating := models.SchoolRating{
		ParentID:      parentID,
		Facilities:    input.Facilities,
		Teaching:      input.Teaching,
		Safety:        input.Safety,
		Environment:   input.Environment,
		Communication: input.Communication,
		Comment:       input.Comment,
	}

	if err := s.Repo.AddRating(schoolID, rating); err != nil {
		switch {
		case errors.Is(err, schoolRepo.ErrNotFound):
			return nil, utils.NewNotFoundError("school not found")
		case errors.Is(err, schoolRepo.ErrDuplicateRating):
			return nil, utils.NewConflictError("you have already rated this school")
		default:
			return nil, utils.NewInternalError("failed to submit rating", err)
		}
	}

	utils.GetLogger().Info("rating submitted",
		zap.String("schoolId", schoolID),
		zap.String("parentId", parentID),
	)
	s.invalidateListing()
	return s.GetByID(schoolID)
}

// SetVerified flips a school's verification flag (system admin only;
// enforced by routing).
func (s *DefaultSchoolService) SetVerified(schoolID string, verified bool) (*models.School, error) {
	if err := s.Repo.SetVerified(schoolID, verified); err != nil {
		if errors.Is(err, schoolRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("school not found")
		}
		return nil, utils.NewInternalError("failed to update school", err)
	}
	s.invalidateListing()
	return s.GetByID(schoolID)
}

// ListAll returns every school for the system-admin view.
func (s *DefaultSchoolService) ListAll() ([]models.School, error) {
	schools, err := s.Repo.GetAll()
	if err != nil {
		return nil, utils.NewInternalError("failed to list schools", err)
	}
	return schools, nil
}
