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

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	Logger     *slog.Logger
}

// CustomerHandler holds dependencies for customer-related handlers.
type CustomerHandler struct {
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler.
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC: params.CustomerUC,
		logger:     params.Logger,
	}
}

// CreateCustomer handles creating a new customer.
func (h *CustomerHandler) CreateCustomer(c echo.Context) error {
	var input *usecase.CreateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	customer, err := h.customerUC.CreateCustomer(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created successfully")
}

// GetCustomer handles retrieving a single customer.
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	customer, err := h.customerUC.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer retrieved successfully")
}

// ListCustomers handles retrieving customers, optionally filtered by route.
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	if routeIDParam := c.QueryParam("route_id"); routeIDParam != "" {
		routeID, err := uuid.Parse(routeIDParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid route ID")
		}

		customers, err := h.customerUC.ListCustomersByRoute(c.Request().Context(), routeID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, customers, "Customers retrieved successfully")
	}

	customers, err := h.customerUC.ListCustomers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customers, "Customers retrieved successfully")
}

// UpdateCustomer handles a partial update of a customer.
func (h *CustomerHandler) UpdateCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	var input *usecase.UpdateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	customer, err := h.customerUC.UpdateCustomer(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer updated successfully")
}

// DeleteCustomer handles deleting a customer.
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
	}

	if err := h.customerUC.DeleteCustomer(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Customer deleted"}, "Customer deleted successfully")
}
