package handler

import (
	"errors"
	"net/http"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/garagelog/garagelog-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// AuthRequest represents the authentication request body
type AuthRequest struct {
	Token string `json:"token"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

// Authenticate handles POST /auth/firebase. A bad, expired or forged token
// is reported as a generic 401 with no verification detail.
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "Invalid request body")
	}

	user, err := h.authService.Authenticate(c.Request().Context(), req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			return NewUnauthorizedError(c, "Invalid Firebase token")
		}
		log.Error().Err(err).Msg("Authentication failed")
		return NewInternalError(c, "Authentication failed")
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Authenticated with Firebase",
		User:    user,
	})
}
