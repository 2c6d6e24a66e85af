package postgres

import (
	"context"
	"errors"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VehicleRepository implements domain.VehicleRepository using PostgreSQL
type VehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

const vehicleColumns = `id, user_id, uuid, make, model, year, license_plate, color, category`

func scanVehicle(row pgx.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := row.Scan(
		&v.ID, &v.UserID, &v.UUID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Color, &v.Category,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	const query = `INSERT INTO vehicles (user_id, uuid, make, model, year, license_plate, color, category)
	               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	               RETURNING ` + vehicleColumns

	return scanVehicle(r.pool.QueryRow(ctx, query,
		vehicle.UserID, vehicle.UUID, vehicle.Make, vehicle.Model,
		vehicle.Year, vehicle.LicensePlate, vehicle.Color, vehicle.Category,
	))
}

// GetByUserID retrieves all vehicles owned by a user
func (r *VehicleRepository) GetByUserID(ctx context.Context, userID int32) ([]*domain.Vehicle, error) {
	const query = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []*domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

// Update replaces every mutable field of the vehicle
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	const query = `UPDATE vehicles
	               SET make = $1, model = $2, year = $3, license_plate = $4, color = $5, category = $6
	               WHERE id = $7
	               RETURNING ` + vehicleColumns

	updated, err := scanVehicle(r.pool.QueryRow(ctx, query,
		vehicle.Make, vehicle.Model, vehicle.Year, vehicle.LicensePlate,
		vehicle.Color, vehicle.Category, vehicle.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a vehicle together with its jobs and their parts in one
// transaction and returns the deleted row.
func (r *VehicleRepository) Delete(ctx context.Context, id int32) (*domain.Vehicle, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM parts WHERE job_id IN (SELECT id FROM jobs WHERE vehicle_id = $1)`, id)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `DELETE FROM jobs WHERE vehicle_id = $1`, id)
	if err != nil {
		return nil, err
	}

	deleted, err := scanVehicle(tx.QueryRow(ctx,
		`DELETE FROM vehicles WHERE id = $1 RETURNING `+vehicleColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return deleted, nil
}
