package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bilagsky/internal/config"
	"bilagsky/internal/domain"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-not-for-production",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "bilagsky-test",
	}
}

func TestAuth_SignupLoginValidateRoundtrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig())

	user, err := svc.Signup(context.Background(), SignupInput{
		Email:    "kari@nordmann.no",
		Password: "superhemmelig",
		FullName: "Kari Nordmann",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "superhemmelig", user.PasswordHash)

	pair, err := svc.Login(context.Background(), LoginInput{
		Email:    "kari@nordmann.no",
		Password: "superhemmelig",
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "kari@nordmann.no", claims.Email)
}

func TestAuth_SignupRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig())

	input := SignupInput{Email: "kari@nordmann.no", Password: "superhemmelig", FullName: "Kari"}
	_, err := svc.Signup(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuth_LoginRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig())
	_, err := svc.Signup(context.Background(), SignupInput{
		Email: "kari@nordmann.no", Password: "superhemmelig", FullName: "Kari",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginInput{Email: "kari@nordmann.no", Password: "feilpassord"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown address gets the same error as a wrong password.
	_, err = svc.Login(context.Background(), LoginInput{Email: "ukjent@b.no", Password: "superhemmelig"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuth_LoginRejectsInactiveUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTConfig())
	user, err := svc.Signup(context.Background(), SignupInput{
		Email: "kari@nordmann.no", Password: "superhemmelig", FullName: "Kari",
	})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, repo.Update(context.Background(), user))

	_, err = svc.Login(context.Background(), LoginInput{Email: "kari@nordmann.no", Password: "superhemmelig"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuth_RefreshIssuesNewPair(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig())
	_, err := svc.Signup(context.Background(), SignupInput{
		Email: "kari@nordmann.no", Password: "superhemmelig", FullName: "Kari",
	})
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), LoginInput{Email: "kari@nordmann.no", Password: "superhemmelig"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuth_ValidateRejectsRefreshToken(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTConfig())
	_, err := svc.Signup(context.Background(), SignupInput{
		Email: "kari@nordmann.no", Password: "superhemmelig", FullName: "Kari",
	})
	require.NoError(t, err)

	pair, err := svc.Login(context.Background(), LoginInput{Email: "kari@nordmann.no", Password: "superhemmelig"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ValidateToken("ikke.et.token")
	assert.Error(t, err)
}
