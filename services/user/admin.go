package user

import (
	"context"
	"errors"

	userRepo "tourbook/database/repository/user"
	"tourbook/models"
	"tourbook/utils"
)

// GetByID returns one account.
func (s *DefaultUserService) GetByID(id string) (*models.User, error) {
	usr, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("user not found")
		}
		return nil, utils.NewInternalError("failed to load user", err)
	}
	return usr, nil
}

// ListAll returns every account for the system-admin view.
func (s *DefaultUserService) ListAll() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		return nil, utils.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// SetActive toggles an account's active flag (system admin only;
// enforced by routing). Deactivation also revokes the account's live
// session: the stored token hash is cleared and the auth cache entry
// dropped, so the lockout takes effect on the next request rather than
// after the cache expires.
func (s *DefaultUserService) SetActive(id string, active bool) (*models.User, error) {
	if err := s.Repo.SetActive(id, active); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("user not found")
		}
		return nil, utils.NewInternalError("failed to update user", err)
	}

	if !active {
		if err := s.Repo.UpdateTokenHash(id, ""); err != nil {
			return nil, utils.NewInternalError("failed to revoke session", err)
		}
		if cache := utils.AuthCacheClient; cache != nil {
			_ = cache.Del(context.Background(), utils.AuthCachePrefix+id).Err()
		}
	}
	return s.GetByID(id)
}
