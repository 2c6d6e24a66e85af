package identity

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/garagelog/garagelog-backend/internal/domain"
)

// Subject is the verified identity attested by an ID token.
type Subject struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

// Verifier checks an opaque identity token against the external provider
// and returns the subject it attests to, or an error wrapping
// domain.ErrInvalidToken when verification fails.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Subject, error)
}

// customClaims carries the profile claims Firebase embeds in ID tokens.
type customClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Validate implements validator.CustomClaims
func (c *customClaims) Validate(ctx context.Context) error {
	return nil
}

// Google publishes the keys signing securetoken (Firebase ID) tokens here;
// the issuer itself does not serve a JWKS at the well-known path.
const securetokenJWKSURI = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// securetokenIssuer returns the exact iss claim Firebase puts in ID tokens
// for the project. No trailing slash: the validator compares issuer strings
// byte for byte.
func securetokenIssuer(projectID string) string {
	return "https://securetoken.google.com/" + projectID
}

// FirebaseVerifier validates Firebase ID tokens for a single project.
type FirebaseVerifier struct {
	validator *validator.Validator
}

// NewFirebaseVerifier creates a verifier for the given Firebase project.
// Keys are fetched from Google's JWKS endpoint and cached.
func NewFirebaseVerifier(projectID string) (*FirebaseVerifier, error) {
	issuerURL, err := url.Parse(securetokenIssuer(projectID))
	if err != nil {
		return nil, err
	}
	jwksURI, err := url.Parse(securetokenJWKSURI)
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute, jwks.WithCustomJWKSURI(jwksURI))

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{projectID},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &customClaims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, err
	}

	return &FirebaseVerifier{validator: jwtValidator}, nil
}

// Verify validates the token's signature, issuer, audience and expiry and
// extracts the subject. Callers never see the underlying validation detail,
// only domain.ErrInvalidToken.
func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Subject, error) {
	claims, err := v.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidToken, err)
	}

	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	subject := &Subject{UID: validated.RegisteredClaims.Subject}
	if custom, ok := validated.CustomClaims.(*customClaims); ok {
		subject.Email = custom.Email
		subject.Name = custom.Name
		subject.Picture = custom.Picture
	}
	return subject, nil
}
