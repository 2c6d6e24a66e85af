package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/garagelog/garagelog-backend/internal/domain"
	"github.com/garagelog/garagelog-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// VehicleHandler handles vehicle-related HTTP requests
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// VehicleRequest represents the create/update vehicle request body
type VehicleRequest struct {
	UserID       int32  `json:"userId"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int32  `json:"year"`
	LicensePlate string `json:"licensePlate"`
	Color        string `json:"color"`
	Category     string `json:"category"`
}

// DeleteVehicleResponse represents the delete vehicle response
type DeleteVehicleResponse struct {
	Message string          `json:"message"`
	Vehicle *domain.Vehicle `json:"vehicle"`
}

func (req *VehicleRequest) toInput() service.CreateVehicleInput {
	return service.CreateVehicleInput{
		UserID:       req.UserID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		Color:        req.Color,
		Category:     req.Category,
	}
}

// CreateVehicle handles POST /vehicles
func (h *VehicleHandler) CreateVehicle(c echo.Context) error {
	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "Invalid request body")
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request().Context(), req.toInput())
	if err != nil {
		log.Error().Err(err).Int32("user_id", req.UserID).Msg("Failed to create vehicle")
		return NewInternalError(c, "Failed to create vehicle")
	}
	return c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles handles GET /vehicles/:userId
func (h *VehicleHandler) GetVehicles(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return NewBadRequestError(c, "Invalid user id")
	}

	vehicles, err := h.vehicleService.GetVehicles(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to fetch vehicles")
		return NewInternalError(c, "Failed to fetch vehicles")
	}
	return c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle handles PUT /vehicles/:id
func (h *VehicleHandler) UpdateVehicle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return NewBadRequestError(c, "Invalid vehicle id")
	}

	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError(c, "Invalid request body")
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request().Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return NewNotFoundError(c, "Vehicle not found")
		}
		log.Error().Err(err).Int32("vehicle_id", id).Msg("Failed to update vehicle")
		return NewInternalError(c, "Failed to update vehicle")
	}
	return c.JSON(http.StatusOK, vehicle)
}

// DeleteVehicle handles DELETE /vehicles/:id
func (h *VehicleHandler) DeleteVehicle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return NewBadRequestError(c, "Invalid vehicle id")
	}

	vehicle, err := h.vehicleService.DeleteVehicle(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return NewNotFoundError(c, "Vehicle not found")
		}
		log.Error().Err(err).Int32("vehicle_id", id).Msg("Failed to delete vehicle")
		return NewInternalError(c, "Failed to delete vehicle")
	}
	return c.JSON(http.StatusOK, DeleteVehicleResponse{
		Message: "Vehicle deleted",
		Vehicle: vehicle,
	})
}

func parseIDParam(c echo.Context, name string) (int32, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
