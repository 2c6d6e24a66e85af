package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/garagelog/garagelog-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// PartRequest represents one part in a job request body. A part carrying an
// id updates that part; a part without one is inserted. Parts persisted
// under the job but absent from the request are deleted.
type PartRequest struct {
	ID           int32           `json:"id,omitempty"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Cost         decimal.Decimal `json:"cost"`
	Observations string          `json:"observations"`
}

// JobRequest represents the create/update job request body
type JobRequest struct {
	VehicleID           int32           `json:"vehicleId"`
	Name                string          `json:"name"`
	Date                string          `json:"date"`
	LaborCost           decimal.Decimal `json:"laborCost"`
	GeneralObservations string          `json:"generalObservations"`
	Parts               []PartRequest   `json:"parts"`
}

// CreateJobResponse represents the create job response
type CreateJobResponse struct {
	Message string `json:"message"`
	JobID   int32  `json:"jobId"`
}

// MessageResponse represents a plain confirmation response
type MessageResponse struct {
	Message string `json:"message"`
}

// JobResponse represents a job with its parts in API responses
type JobResponse struct {
	ID                  int32           `json:"id"`
	VehicleID           int32           `json:"vehicleId"`
	Name                string          `json:"name"`
	Date                string          `json:"date"`
	LaborCost           decimal.Decimal `json:"laborCost"`
	TotalCost           decimal.Decimal `json:"totalCost"`
	GeneralObservations string          `json:"generalObservations"`
	Parts               []*domain.Part  `json:"parts"`
}

func (req *JobRequest) toInput() (service.JobInput, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return service.JobInput{}, err
	}

	parts := make([]service.PartInput, len(req.Parts))
	for i, p := range req.Parts {
		parts[i] = service.PartInput{
			ID:           p.ID,
			Name:         p.Name,
			Type:         p.Type,
			Cost:         p.Cost,
			Observations: p.Observations,
		}
	}

	return service.JobInput{
		VehicleID:    req.VehicleID,
		Name:         req.Name,
		Date:         date,
		LaborCost:    req.LaborCost,
		Observations: req.GeneralObservations,
		Parts:        parts,
	}, nil
}

// CreateJob handles POST /jobs
func (h *JobHandler) CreateJob(c echo.Context) error {
	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return NewBadRequestError(c, "Invalid date")
	}

	jobID, err := h.jobService.CreateJob(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) || errors.Is(err, domain.ErrNegativeCost) {
			return NewBadRequestError(c, err.Error())
		}
		log.Error().Err(err).Int32("vehicle_id", req.VehicleID).Msg("Failed to create job")
		return NewInternalError(c, "Error creating job")
	}

	return c.JSON(http.StatusCreated, CreateJobResponse{
		Message: "Job created successfully",
		JobID:   jobID,
	})
}

// GetJobs handles GET /jobs/:vehicleId
func (h *JobHandler) GetJobs(c echo.Context) error {
	vehicleID, err := parseIDParam(c, "vehicleId")
	if err != nil {
		return NewBadRequestError(c, "Invalid vehicle id")
	}

	jobs, err := h.jobService.GetJobsByVehicle(c.Request().Context(), vehicleID)
	if err != nil {
		log.Error().Err(err).Int32("vehicle_id", vehicleID).Msg("Failed to fetch jobs")
		return NewInternalError(c, "Error fetching jobs")
	}

	response := make([]JobResponse, len(jobs))
	for i, job := range jobs {
		response[i] = JobResponse{
			ID:                  job.ID,
			VehicleID:           job.VehicleID,
			Name:                job.Name,
			Date:                job.Date.Format("2006-01-02"),
			LaborCost:           job.LaborCost,
			TotalCost:           job.TotalCost,
			GeneralObservations: job.GeneralObservations,
			Parts:               job.Parts,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateJob handles PUT /jobs/:jobId
func (h *JobHandler) UpdateJob(c echo.Context) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return NewBadRequestError(c, "Invalid job id")
	}

	var req JobRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "Invalid request body")
	}

	input, err := req.toInput()
	if err != nil {
		return NewBadRequestError(c, "Invalid date")
	}

	if err := h.jobService.UpdateJob(c.Request().Context(), jobID, input); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return NewNotFoundError(c, "Job not found")
		}
		if errors.Is(err, domain.ErrNameRequired) || errors.Is(err, domain.ErrNegativeCost) {
			return NewBadRequestError(c, err.Error())
		}
		log.Error().Err(err).Int32("job_id", jobID).Msg("Failed to update job")
		return NewInternalError(c, "Error updating job")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Job and parts updated successfully"})
}

// DeleteJob handles DELETE /jobs/:jobId
func (h *JobHandler) DeleteJob(c echo.Context) error {
	jobID, err := parseIDParam(c, "jobId")
	if err != nil {
		return NewBadRequestError(c, "Invalid job id")
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), jobID); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return NewNotFoundError(c, "Job not found")
		}
		log.Error().Err(err).Int32("job_id", jobID).Msg("Failed to delete job")
		return NewInternalError(c, "Error deleting job")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Job deleted successfully"})
}

// parseDate accepts the date-only form clients send, falling back to RFC 3339
func parseDate(value string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", value); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, value)
}
