package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoginLogout(t *testing.T) {
	store := New(nil)

	assert.False(t, store.IsLoggedIn())
	assert.Empty(t, store.Token())
	assert.Empty(t, store.UserID())

	expiry := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Login("u1", "tok", expiry)

	assert.True(t, store.IsLoggedIn())
	assert.Equal(t, "u1", store.UserID())
	assert.Equal(t, "tok", store.Token())
	assert.Equal(t, expiry, store.ExpiresAt())

	store.Logout()

	assert.False(t, store.IsLoggedIn())
	assert.Empty(t, store.UserID())
	assert.Empty(t, store.Token())
	assert.True(t, store.ExpiresAt().IsZero())
}

func TestStore_LastWriteWins(t *testing.T) {
	store := New(nil)

	store.Login("u1", "tok1", time.Now().Add(time.Hour))
	store.Login("u2", "tok2", time.Now().Add(2*time.Hour))

	assert.Equal(t, "u2", store.UserID())
	assert.Equal(t, "tok2", store.Token())
}

func TestStore_ExpiryFallsBackToJWTClaim(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	store := New(nil)
	store.Login("u1", token, time.Time{})

	assert.Equal(t, exp.Unix(), store.ExpiresAt().Unix())
}

func TestStore_OpaqueTokenWithoutExpiry(t *testing.T) {
	store := New(nil)
	store.Login("u1", "not-a-jwt", time.Time{})

	assert.True(t, store.IsLoggedIn())
	assert.True(t, store.ExpiresAt().IsZero())
}
