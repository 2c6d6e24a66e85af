package service

import (
	"context"
	"testing"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/garagelog/garagelog-backend/internal/identity"
	"github.com/garagelog/garagelog-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate_CreatesUserOnFirstSight(t *testing.T) {
	verifier := testutil.NewMockVerifier()
	verifier.Subjects["good-token"] = &identity.Subject{
		UID:     "firebase-uid-1",
		Email:   "driver@example.com",
		Name:    "Test Driver",
		Picture: "https://example.com/p.png",
	}
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(verifier, userRepo)

	user, err := svc.Authenticate(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", user.FirebaseUID)
	assert.Equal(t, "driver@example.com", user.Email)
	assert.NotZero(t, user.ID)
}

func TestAuthenticate_IdempotentForSameSubject(t *testing.T) {
	verifier := testutil.NewMockVerifier()
	verifier.Subjects["token-a"] = &identity.Subject{UID: "uid-1", Email: "a@example.com"}
	verifier.Subjects["token-b"] = &identity.Subject{UID: "uid-1", Email: "a@example.com"}
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(verifier, userRepo)

	first, err := svc.Authenticate(context.Background(), "token-a")
	require.NoError(t, err)
	second, err := svc.Authenticate(context.Background(), "token-b")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, userRepo.Users, 1)
}

func TestAuthenticate_ExistingRowNotRefreshed(t *testing.T) {
	verifier := testutil.NewMockVerifier()
	verifier.Subjects["t1"] = &identity.Subject{UID: "uid-1", Email: "old@example.com", Name: "Old"}
	verifier.Subjects["t2"] = &identity.Subject{UID: "uid-1", Email: "new@example.com", Name: "New"}
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(verifier, userRepo)

	_, err := svc.Authenticate(context.Background(), "t1")
	require.NoError(t, err)
	user, err := svc.Authenticate(context.Background(), "t2")
	require.NoError(t, err)

	assert.Equal(t, "old@example.com", user.Email)
	assert.Equal(t, "Old", user.Name)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	verifier := testutil.NewMockVerifier()
	userRepo := testutil.NewMockUserRepository()
	svc := NewAuthService(verifier, userRepo)

	_, err := svc.Authenticate(context.Background(), "forged")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.Empty(t, userRepo.Users)
}
