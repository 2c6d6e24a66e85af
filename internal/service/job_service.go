package service

import (
	"context"
	"strings"
	"time"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// JobService handles job-related business logic
type JobService struct {
	jobRepo domain.JobRepository
}

// NewJobService creates a new JobService
func NewJobService(jobRepo domain.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// PartInput holds one part of a job create/update request. ID is zero for
// parts that do not exist yet.
type PartInput struct {
	ID           int32
	Name         string
	Type         string
	Cost         decimal.Decimal
	Observations string
}

// JobInput holds the input for creating or updating a job
type JobInput struct {
	VehicleID    int32
	Name         string
	Date         time.Time
	LaborCost    decimal.Decimal
	Observations string
	Parts        []PartInput
}

func (input *JobInput) toJob() (*domain.Job, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrNameRequired
	}
	if input.LaborCost.IsNegative() {
		return nil, domain.ErrNegativeCost
	}

	parts := make([]*domain.Part, len(input.Parts))
	for i, p := range input.Parts {
		if p.Cost.IsNegative() {
			return nil, domain.ErrNegativeCost
		}
		parts[i] = &domain.Part{
			ID:           p.ID,
			Name:         p.Name,
			Type:         p.Type,
			Cost:         p.Cost,
			Observations: p.Observations,
		}
	}

	return &domain.Job{
		VehicleID:           input.VehicleID,
		Name:                input.Name,
		Date:                input.Date,
		LaborCost:           input.LaborCost,
		TotalCost:           domain.JobTotal(input.LaborCost, parts),
		GeneralObservations: input.Observations,
		Parts:               parts,
	}, nil
}

// CreateJob validates the input and inserts the job with its parts
// atomically, returning the new job id.
func (s *JobService) CreateJob(ctx context.Context, input JobInput) (int32, error) {
	job, err := input.toJob()
	if err != nil {
		return 0, err
	}
	return s.jobRepo.Create(ctx, job)
}

// GetJobsByVehicle retrieves the vehicle's jobs with their parts
func (s *JobService) GetJobsByVehicle(ctx context.Context, vehicleID int32) ([]*domain.Job, error) {
	return s.jobRepo.GetByVehicleID(ctx, vehicleID)
}

// UpdateJob validates the input and reconciles the persisted job and parts
// against it. The total it carries is provisional; the repository writes the
// authoritative total from what the transaction actually persisted.
func (s *JobService) UpdateJob(ctx context.Context, jobID int32, input JobInput) error {
	job, err := input.toJob()
	if err != nil {
		return err
	}
	job.ID = jobID
	return s.jobRepo.Update(ctx, job)
}

// DeleteJob removes the job and all of its parts
func (s *JobService) DeleteJob(ctx context.Context, jobID int32) error {
	return s.jobRepo.Delete(ctx, jobID)
}
