package postgres

import (
	"context"
	"fmt"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// JobRepository implements domain.JobRepository using PostgreSQL.
// Every multi-statement mutation runs in a single transaction; the deferred
// rollback releases the connection on every exit path and becomes a no-op
// after commit.
type JobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

// Create inserts the job and all of its parts atomically and returns the
// new job id.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (int32, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	const insertJob = `INSERT INTO jobs (vehicle_id, name, date, labor_cost, total_cost, general_observations)
	                   VALUES ($1, $2, $3, $4, $5, $6)
	                   RETURNING id`

	var jobID int32
	err = tx.QueryRow(ctx, insertJob,
		job.VehicleID, job.Name, job.Date, job.LaborCost.String(),
		job.TotalCost.String(), job.GeneralObservations,
	).Scan(&jobID)
	if err != nil {
		return 0, fmt.Errorf("insert job: %w", err)
	}

	const insertPart = `INSERT INTO parts (job_id, name, type, cost, observations)
	                    VALUES ($1, $2, $3, $4, $5)`

	for _, part := range job.Parts {
		_, err := tx.Exec(ctx, insertPart,
			jobID, part.Name, part.Type, part.Cost.String(), part.Observations)
		if err != nil {
			return 0, fmt.Errorf("insert part: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return jobID, nil
}

// GetByVehicleID retrieves the vehicle's jobs, each with its full parts
// collection. Plain reads, no transaction: the parts query for a job can see
// a later snapshot than the job list when writers are active.
func (r *JobRepository) GetByVehicleID(ctx context.Context, vehicleID int32) ([]*domain.Job, error) {
	const query = `SELECT id, vehicle_id, name, date, labor_cost::text, total_cost::text, general_observations
	               FROM jobs WHERE vehicle_id = $1`

	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []*domain.Job{}
	for rows.Next() {
		var job domain.Job
		var laborCost, totalCost string
		err := rows.Scan(&job.ID, &job.VehicleID, &job.Name, &job.Date,
			&laborCost, &totalCost, &job.GeneralObservations)
		if err != nil {
			return nil, err
		}
		if job.LaborCost, err = decimal.NewFromString(laborCost); err != nil {
			return nil, err
		}
		if job.TotalCost, err = decimal.NewFromString(totalCost); err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, job := range jobs {
		parts, err := r.getParts(ctx, r.pool, job.ID)
		if err != nil {
			return nil, err
		}
		job.Parts = parts
	}
	return jobs, nil
}

// Update applies the job's scalar fields and reconciles its persisted parts
// against job.Parts in one transaction:
//  1. write scalars plus a provisional total computed from the request
//  2. read the ids currently persisted under the job
//  3. delete persisted parts whose id is absent from the request
//  4. update parts carrying an id (scoped by id and job id), insert the rest
//  5. re-read the persisted parts' costs and write the authoritative total
//
// The final re-read exists because the provisional total trusts
// client-supplied costs; the committed total never does.
func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const updateJob = `UPDATE jobs
	                   SET name = $1, date = $2, labor_cost = $3, total_cost = $4, general_observations = $5
	                   WHERE id = $6`

	tag, err := tx.Exec(ctx, updateJob,
		job.Name, job.Date, job.LaborCost.String(), job.TotalCost.String(),
		job.GeneralObservations, job.ID)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}

	rows, err := tx.Query(ctx, `SELECT id FROM parts WHERE job_id = $1`, job.ID)
	if err != nil {
		return err
	}
	existingIDs, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return err
	}

	incoming := make(map[int32]bool, len(job.Parts))
	for _, part := range job.Parts {
		if part.ID != 0 {
			incoming[part.ID] = true
		}
	}

	stale := []int32{}
	for _, id := range existingIDs {
		if !incoming[id] {
			stale = append(stale, id)
		}
	}
	if len(stale) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM parts WHERE id = ANY($1)`, stale); err != nil {
			return fmt.Errorf("delete stale parts: %w", err)
		}
	}

	const updatePart = `UPDATE parts
	                    SET name = $1, type = $2, cost = $3, observations = $4
	                    WHERE id = $5 AND job_id = $6`
	const insertPart = `INSERT INTO parts (job_id, name, type, cost, observations)
	                    VALUES ($1, $2, $3, $4, $5)`

	for _, part := range job.Parts {
		if part.ID != 0 {
			_, err = tx.Exec(ctx, updatePart,
				part.Name, part.Type, part.Cost.String(), part.Observations, part.ID, job.ID)
		} else {
			_, err = tx.Exec(ctx, insertPart,
				job.ID, part.Name, part.Type, part.Cost.String(), part.Observations)
		}
		if err != nil {
			return fmt.Errorf("upsert part: %w", err)
		}
	}

	persisted, err := r.getParts(ctx, tx, job.ID)
	if err != nil {
		return err
	}
	total := domain.JobTotal(job.LaborCost, persisted)

	if _, err := tx.Exec(ctx, `UPDATE jobs SET total_cost = $1 WHERE id = $2`, total.String(), job.ID); err != nil {
		return fmt.Errorf("write total: %w", err)
	}

	return tx.Commit(ctx)
}

// Delete removes the job's parts and then the job, atomically
func (r *JobRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM parts WHERE job_id = $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrJobNotFound
	}

	return tx.Commit(ctx)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *JobRepository) getParts(ctx context.Context, q querier, jobID int32) ([]*domain.Part, error) {
	const query = `SELECT id, job_id, name, type, cost::text, observations FROM parts WHERE job_id = $1`

	rows, err := q.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parts := []*domain.Part{}
	for rows.Next() {
		var part domain.Part
		var cost string
		err := rows.Scan(&part.ID, &part.JobID, &part.Name, &part.Type, &cost, &part.Observations)
		if err != nil {
			return nil, err
		}
		if part.Cost, err = decimal.NewFromString(cost); err != nil {
			return nil, err
		}
		parts = append(parts, &part)
	}
	return parts, rows.Err()
}
