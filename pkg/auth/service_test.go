package auth

import (
	"context"
	"testing"
	"time"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionService(t *testing.T) (context.Context, *Service, user.Service) {
	users := user.NewUserService(user.NewStubUserRepo())
	sessions := NewService(users, config.Auth{
		SessionSecret:   "test-secret",
		SessionValidity: time.Hour,
	})
	return context.Background(), sessions, users
}

func TestService_SignUpAndSignIn(t *testing.T) {
	// given
	ctx, sessions, _ := setupSessionService(t)
	signedUp, err := sessions.SignUp(ctx, "anna@example.com", "s3cret", "Anna")
	require.NoError(t, err)
	assert.NotEmpty(t, signedUp.Token)
	assert.NotEmpty(t, signedUp.User.Id)
	assert.Equal(t, "Anna", signedUp.User.DisplayName)

	// when
	signedIn, err := sessions.SignIn(ctx, "anna@example.com", "s3cret")

	// then
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.Id, signedIn.User.Id)

	resolved, err := sessions.UserFromToken(ctx, signedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, signedUp.User.Id, resolved.Id)
}

func TestService_SignIn_InvalidCredentials(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		ctx, sessions, _ := setupSessionService(t)

		_, err := sessions.SignIn(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctx, sessions, _ := setupSessionService(t)
		_, err := sessions.SignUp(ctx, "anna@example.com", "s3cret", "Anna")
		require.NoError(t, err)

		_, err = sessions.SignIn(ctx, "anna@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("provider account without a password", func(t *testing.T) {
		ctx, sessions, _ := setupSessionService(t)
		_, err := sessions.SignInProviderUser(ctx, "google@example.com", "Google User")
		require.NoError(t, err)

		_, err = sessions.SignIn(ctx, "google@example.com", "")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_SignUp_EmailTaken(t *testing.T) {
	ctx, sessions, _ := setupSessionService(t)
	_, err := sessions.SignUp(ctx, "anna@example.com", "s3cret", "Anna")
	require.NoError(t, err)

	_, err = sessions.SignUp(ctx, "anna@example.com", "other", "Other Anna")

	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestService_SignInProviderUser(t *testing.T) {
	t.Run("should create the account on first sign-in", func(t *testing.T) {
		// given
		ctx, sessions, users := setupSessionService(t)

		// when
		session, err := sessions.SignInProviderUser(ctx, "google@example.com", "Google User")

		// then
		require.NoError(t, err)
		created, err := users.GetUserByEmail(ctx, "google@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.Id, session.User.Id)
		assert.Equal(t, "Google User", created.DisplayName)
	})

	t.Run("should reuse the existing account", func(t *testing.T) {
		// given
		ctx, sessions, _ := setupSessionService(t)
		first, err := sessions.SignInProviderUser(ctx, "google@example.com", "Google User")
		require.NoError(t, err)

		// when
		second, err := sessions.SignInProviderUser(ctx, "google@example.com", "Renamed")

		// then
		require.NoError(t, err)
		assert.Equal(t, first.User.Id, second.User.Id)
	})
}

func TestService_UserFromToken_Invalid(t *testing.T) {
	ctx, sessions, _ := setupSessionService(t)

	_, err := sessions.UserFromToken(ctx, "not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}
