package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Part is a consumable attached to a maintenance job. Its lifetime is
// bounded by the job: parts are created and removed only through job
// create/update/delete.
type Part struct {
	ID           int32           `json:"id"`
	JobID        int32           `json:"jobId"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Cost         decimal.Decimal `json:"cost"`
	Observations string          `json:"observations"`
}

// Job is a maintenance job on a vehicle. TotalCost is denormalized: after
// every committed create or update it equals LaborCost plus the sum of the
// persisted parts' costs.
type Job struct {
	ID                  int32           `json:"id"`
	VehicleID           int32           `json:"vehicleId"`
	Name                string          `json:"name"`
	Date                time.Time       `json:"date"`
	LaborCost           decimal.Decimal `json:"laborCost"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	GeneralObservations string          `json:"generalObservations"`
	Parts               []*Part         `json:"parts"`
}

// JobTotal returns laborCost plus the sum of the given parts' costs.
func JobTotal(laborCost decimal.Decimal, parts []*Part) decimal.Decimal {
	total := laborCost
	for _, part := range parts {
		total = total.Add(part.Cost)
	}
	return total
}

// JobRepository defines storage operations for jobs and their parts
type JobRepository interface {
	// Create inserts the job and all of its parts in one transaction and
	// returns the new job id.
	Create(ctx context.Context, job *Job) (int32, error)
	// GetByVehicleID returns the vehicle's jobs, each with its full current
	// parts collection, in insertion order.
	GetByVehicleID(ctx context.Context, vehicleID int32) ([]*Job, error)
	// Update applies the job's scalar fields and reconciles the persisted
	// parts against job.Parts in one transaction: parts carrying an id are
	// updated, parts without an id are inserted, persisted parts whose id is
	// absent from job.Parts are deleted. TotalCost is recomputed from the
	// parts actually persisted, not from client-supplied costs. Returns
	// ErrJobNotFound when the id does not exist.
	Update(ctx context.Context, job *Job) error
	// Delete removes the job's parts and then the job, atomically.
	Delete(ctx context.Context, id int32) error
}
