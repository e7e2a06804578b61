package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, tokens, err := f.services.Auth.Register(ctx, "alex@example.com", "alexj", "", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alexj", user.Name, "name defaults to username")
	assert.NotEqual(t, "password123", user.Password)
	assert.NotEmpty(t, tokens.Access)
	assert.NotEmpty(t, tokens.Refresh)

	subject, err := f.services.Auth.Authenticate(tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, subject)

	_, _, err = f.services.Auth.Register(ctx, "ALEX@example.com", "other", "", "password123")
	assert.ErrorIs(t, err, ErrUserExists)
	_, _, err = f.services.Auth.Register(ctx, "new@example.com", "AlexJ", "", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, _, err = f.services.Auth.Login(ctx, "alex@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.services.Auth.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	loggedIn, _, err := f.services.Auth.Login(ctx, "alex@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, tokens, err := f.services.Auth.Register(ctx, "alex@example.com", "alexj", "Alex", "password123")
	require.NoError(t, err)

	next, err := f.services.Auth.RefreshToken(ctx, tokens.Refresh)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.Refresh, next.Refresh)

	_, err = f.services.Auth.RefreshToken(ctx, tokens.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken, "a rotated token cannot be reused")

	require.NoError(t, f.services.Auth.Logout(ctx, next.Refresh))
	_, err = f.services.Auth.RefreshToken(ctx, next.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, tokens, err := f.services.Auth.Register(ctx, "alex@example.com", "alexj", "Alex", "password123")
	require.NoError(t, err)

	_, err = f.services.Auth.Authenticate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherCfg := *f.cfg
	otherCfg.JWTSecret = "another-secret"
	_, err = NewAuthService(&otherCfg, f.repos.UserRepo).Authenticate(tokens.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewAuthService(f.cfg, f.repos.UserRepo).(*authService)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Authenticate(tokens.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
