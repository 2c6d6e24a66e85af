package service

import (
	"context"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/google/uuid"
)

// VehicleService handles vehicle-related business logic
type VehicleService struct {
	vehicleRepo domain.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo domain.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// CreateVehicleInput holds the input for creating a vehicle
type CreateVehicleInput struct {
	UserID       int32
	Make         string
	Model        string
	Year         int32
	LicensePlate string
	Color        string
	Category     string
}

// CreateVehicle creates a vehicle for the owner, assigning a fresh external
// uuid independent of the primary key.
func (s *VehicleService) CreateVehicle(ctx context.Context, input CreateVehicleInput) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		UserID:       input.UserID,
		UUID:         uuid.New(),
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Color:        input.Color,
		Category:     input.Category,
	}
	return s.vehicleRepo.Create(ctx, vehicle)
}

// GetVehicles retrieves all vehicles owned by a user
func (s *VehicleService) GetVehicles(ctx context.Context, userID int32) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.GetByUserID(ctx, userID)
}

// UpdateVehicle replaces every mutable field of the vehicle
func (s *VehicleService) UpdateVehicle(ctx context.Context, id int32, input CreateVehicleInput) (*domain.Vehicle, error) {
	vehicle := &domain.Vehicle{
		ID:           id,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Color:        input.Color,
		Category:     input.Category,
	}
	return s.vehicleRepo.Update(ctx, vehicle)
}

// DeleteVehicle removes the vehicle and all of its jobs and parts
func (s *VehicleService) DeleteVehicle(ctx context.Context, id int32) (*domain.Vehicle, error) {
	return s.vehicleRepo.Delete(ctx, id)
}
