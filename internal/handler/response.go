package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the error envelope every failing endpoint returns.
// Bodies stay generic on 5xx: store errors are logged server-side only.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewBadRequestError creates a bad request error response
func NewBadRequestError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: detail})
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: detail})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: detail})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: detail})
}
