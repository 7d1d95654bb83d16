package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T) AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(StaticAllowList{"admin@nimkostore.com"}, string(hash), "test-secret")
}

func TestStaticAllowListIsCaseInsensitive(t *testing.T) {
	list := StaticAllowList{"Admin@NimkoStore.com"}

	assert.True(t, list.IsAuthorized("admin@nimkostore.com"))
	assert.True(t, list.IsAuthorized(" ADMIN@nimkostore.COM "))
	assert.False(t, list.IsAuthorized("someone@else.com"))
}

func TestLoginVerifyRoundTrip(t *testing.T) {
	auth := newAuth(t)

	token, err := auth.Login("admin@nimkostore.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := auth.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@nimkostore.com", email)
}

func TestLoginRejectsWrongPasswordAndUnknownEmail(t *testing.T) {
	auth := newAuth(t)

	_, err := auth.Login("admin@nimkostore.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.Login("stranger@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	auth := newAuth(t)

	token, err := auth.Login("admin@nimkostore.com", "secret123")
	require.NoError(t, err)

	_, err = auth.Verify(token + "x")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
