package handler

import (
	"log/slog"
	"net/http"

	"rutero/internal/delivery/http/response"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TrackingHandlerParams holds dependencies for TrackingHandler, injected by Fx.
type TrackingHandlerParams struct {
	fx.In

	TrackingUC usecase.TrackingUsecase
	Logger     *slog.Logger
}

// TrackingHandler holds dependencies for trip and live-tracking handlers.
type TrackingHandler struct {
	trackingUC usecase.TrackingUsecase
	logger     *slog.Logger
}

// NewTrackingHandler is the constructor for TrackingHandler.
func NewTrackingHandler(params TrackingHandlerParams) *TrackingHandler {
	return &TrackingHandler{
		trackingUC: params.TrackingUC,
		logger:     params.Logger,
	}
}

// StartTripRequest represents the request body for starting a trip.
type StartTripRequest struct {
	DispatchID string `json:"dispatch_id" validate:"required,uuid"`
}

// StartTrip opens a trip for the authenticated driver on a dispatch.
func (h *TrackingHandler) StartTrip(c echo.Context) error {
	driverID, err := h.getDriverID(c)
	if err != nil {
		return err
	}

	var req StartTripRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid trip input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	dispatchID, err := uuid.Parse(req.DispatchID)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	if err := h.trackingUC.StartTrip(c.Request().Context(), driverID, dispatchID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{
		"dispatch_id": dispatchID.String(),
	}, "Trip started successfully")
}

// StopTrip closes the authenticated driver's active trip.
func (h *TrackingHandler) StopTrip(c echo.Context) error {
	driverID, err := h.getDriverID(c)
	if err != nil {
		return err
	}

	if err := h.trackingUC.StopTrip(c.Request().Context(), driverID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Trip stopped"}, "Trip stopped successfully")
}

// GetActiveTrip reports the dispatch of the driver's active trip, if any.
func (h *TrackingHandler) GetActiveTrip(c echo.Context) error {
	driverID, err := h.getDriverID(c)
	if err != nil {
		return err
	}

	dispatchID, active := h.trackingUC.ActiveDispatch(driverID)
	data := map[string]any{"active": active}
	if active {
		data["dispatch_id"] = dispatchID.String()
	}

	return response.Success(c, http.StatusOK, data, "Active trip retrieved successfully")
}

// RecordPosition ingests one position report from the authenticated driver.
func (h *TrackingHandler) RecordPosition(c echo.Context) error {
	driverID, err := h.getDriverID(c)
	if err != nil {
		return err
	}

	var input *usecase.RecordPositionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid position input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}
	input.DriverID = driverID

	if err := h.trackingUC.RecordPosition(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusAccepted, nil, "Position recorded")
}

// GetTrail reconstructs the recorded trail of a dispatch.
func (h *TrackingHandler) GetTrail(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	trail, err := h.trackingUC.BuildTrail(c.Request().Context(), dispatchID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, trail, "Trail retrieved successfully")
}

// GetPlannedRoute resolves the depot-to-delivery-points route of a dispatch.
func (h *TrackingHandler) GetPlannedRoute(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	route, err := h.trackingUC.PlannedRoute(c.Request().Context(), dispatchID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, route, "Planned route retrieved successfully")
}

// ListDrivers retrieves the last known position of every driver.
func (h *TrackingHandler) ListDrivers(c echo.Context) error {
	drivers, err := h.trackingUC.ListDrivers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, drivers, "Drivers retrieved successfully")
}

func (h *TrackingHandler) getDriverID(c echo.Context) (uuid.UUID, error) {
	driverID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return uuid.Nil, response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	return driverID, nil
}
