package usecase

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCustomerInput represents the input for creating a new customer
type CreateCustomerInput struct {
	Name        string   `json:"name" validate:"required"`
	RouteID     string   `json:"route_id" validate:"required,uuid"`
	TaxClass    string   `json:"tax_class" validate:"required"`
	PaymentTerm int      `json:"payment_term" validate:"gte=0"`
	Geofence    string   `json:"geofence"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// UpdateCustomerInput represents the input for updating an existing customer
type UpdateCustomerInput struct {
	Name        *string  `json:"name,omitempty"`
	RouteID     *string  `json:"route_id,omitempty" validate:"omitempty,uuid"`
	TaxClass    *string  `json:"tax_class,omitempty"`
	PaymentTerm *int     `json:"payment_term,omitempty" validate:"omitempty,gte=0"`
	Geofence    *string  `json:"geofence,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
}

// CustomerUsecase defines the interface for customer management use cases
type CustomerUsecase interface {
	// CreateCustomer registers a new customer; a non-empty geofence is
	// normalized and must parse to at least one polygon
	CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error)

	// GetCustomer retrieves a customer by ID
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// ListCustomers retrieves every customer
	ListCustomers(ctx context.Context) ([]*entity.Customer, error)

	// ListCustomersByRoute retrieves the customers of one route
	ListCustomersByRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.Customer, error)

	// UpdateCustomer applies a partial update; geofence updates follow the
	// same normalization rules as creation
	UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error)

	// DeleteCustomer removes a customer unless invoices still reference it
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
}
