package user

import (
	"net/http"
	"testing"

	"tourbook/models"
	"tourbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deactivation must end the account's live session, not just flag the
// document: the stored token hash is cleared so the next auth check
// fails instead of riding out the cached credential.
func TestSetActiveDeactivateRevokesSession(t *testing.T) {
	svc, ur, _ := newUserService()
	ur.byID["u1"] = &models.User{
		ID:        "u1",
		Email:     "dana@example.com",
		Role:      models.RoleParent,
		Active:    true,
		TokenHash: utils.HashToken("some-live-token"),
	}

	usr, err := svc.SetActive("u1", false)
	require.NoError(t, err)

	assert.False(t, usr.Active)
	assert.Empty(t, ur.byID["u1"].TokenHash)
}

func TestSetActiveReactivateKeepsSessionRevoked(t *testing.T) {
	svc, ur, _ := newUserService()
	ur.byID["u1"] = &models.User{
		ID: "u1", Role: models.RoleParent, Active: false,
	}

	usr, err := svc.SetActive("u1", true)
	require.NoError(t, err)

	// Coming back online does not mint a session; the user logs in again.
	assert.True(t, usr.Active)
	assert.Empty(t, ur.byID["u1"].TokenHash)
}

func TestSetActiveUnknownUser(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.SetActive("ghost", false)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, utils.HTTPStatus(err))
}
