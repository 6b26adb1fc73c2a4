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

// RouteHandlerParams holds dependencies for RouteHandler, injected by Fx.
type RouteHandlerParams struct {
	fx.In

	RouteUC usecase.RouteUsecase
	Logger  *slog.Logger
}

// RouteHandler holds dependencies for route-related handlers.
type RouteHandler struct {
	routeUC usecase.RouteUsecase
	logger  *slog.Logger
}

// NewRouteHandler is the constructor for RouteHandler.
func NewRouteHandler(params RouteHandlerParams) *RouteHandler {
	return &RouteHandler{
		routeUC: params.RouteUC,
		logger:  params.Logger,
	}
}

// CreateRoute handles creating a new delivery route.
func (h *RouteHandler) CreateRoute(c echo.Context) error {
	var input *usecase.CreateRouteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	route, err := h.routeUC.CreateRoute(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, route, "Route created successfully")
}

// GetRoute handles retrieving a single route.
func (h *RouteHandler) GetRoute(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
	}

	route, err := h.routeUC.GetRoute(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, route, "Route retrieved successfully")
}

// ListRoutes handles retrieving every route.
func (h *RouteHandler) ListRoutes(c echo.Context) error {
	routes, err := h.routeUC.ListRoutes(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, routes, "Routes retrieved successfully")
}

// UpdateRoute handles a partial update of a route.
func (h *RouteHandler) UpdateRoute(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
	}

	var input *usecase.UpdateRouteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid route input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	route, err := h.routeUC.UpdateRoute(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, route, "Route updated successfully")
}

// DeleteRoute handles deleting a route.
func (h *RouteHandler) DeleteRoute(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
	}

	if err := h.routeUC.DeleteRoute(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Route deleted"}, "Route deleted successfully")
}
