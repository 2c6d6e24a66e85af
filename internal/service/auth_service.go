package service

import (
	"context"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/garagelog/garagelog-backend/internal/identity"
	"github.com/rs/zerolog/log"
)

// AuthService handles authentication-related business logic
type AuthService struct {
	verifier identity.Verifier
	userRepo domain.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(verifier identity.Verifier, userRepo domain.UserRepository) *AuthService {
	return &AuthService{
		verifier: verifier,
		userRepo: userRepo,
	}
}

// Authenticate verifies the identity token and returns the local user for
// its subject, creating one on first sight. Re-authentication returns the
// existing row unmodified; profile fields are captured only at creation.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.verifier.Verify(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("Token verification failed")
		return nil, err
	}

	user, err := s.userRepo.CreateOrGet(ctx, &domain.User{
		FirebaseUID: subject.UID,
		Email:       subject.Email,
		Name:        subject.Name,
		Picture:     subject.Picture,
	})
	if err != nil {
		log.Error().Err(err).Str("firebase_uid", subject.UID).Msg("Failed to create or get user")
		return nil, err
	}
	return user, nil
}
