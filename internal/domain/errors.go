package domain

import "errors"

// Domain errors
var (
	ErrInvalidToken    = errors.New("invalid identity token")
	ErrUserNotFound    = errors.New("user not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrJobNotFound     = errors.New("job not found")
	ErrNameRequired    = errors.New("name is required")
	ErrNegativeCost    = errors.New("cost must not be negative")
)
