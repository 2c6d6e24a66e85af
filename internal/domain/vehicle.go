package domain

import (
	"context"

	"github.com/google/uuid"
)

// Vehicle is owned by exactly one user. UUID is the externally visible
// identifier, assigned once at creation and never reused.
type Vehicle struct {
	ID           int32     `json:"id"`
	UserID       int32     `json:"userId"`
	UUID         uuid.UUID `json:"uuid"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int32     `json:"year"`
	LicensePlate string    `json:"licensePlate"`
	Color        string    `json:"color"`
	Category     string    `json:"category"`
}

// VehicleRepository defines storage operations for vehicles
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *Vehicle) (*Vehicle, error)
	GetByUserID(ctx context.Context, userID int32) ([]*Vehicle, error)
	// Update replaces every mutable field; returns ErrVehicleNotFound when
	// the id does not exist.
	Update(ctx context.Context, vehicle *Vehicle) (*Vehicle, error)
	// Delete removes the vehicle together with its jobs and their parts in
	// one transaction and returns the deleted row, or ErrVehicleNotFound.
	Delete(ctx context.Context, id int32) (*Vehicle, error)
}
