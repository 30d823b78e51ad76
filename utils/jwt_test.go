package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-123", "parent", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", sub)
	assert.Equal(t, "parent", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-123", "parent", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractClaimsFromToken("not.a.token")
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken("other-token"))
}
