// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for customer persistence.
var (
	// ErrCustomerNotFound is returned when a customer is not found.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCustomerReferenced is returned when a delete is blocked by existing references.
	ErrCustomerReferenced = errors.New("customer is still referenced")
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *entity.Customer) error

	// FindByID retrieves a customer by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)

	// FindAll retrieves every customer.
	FindAll(ctx context.Context) ([]*entity.Customer, error)

	// FindByRoute retrieves the customers assigned to a route.
	FindByRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.Customer, error)

	// Update updates an existing customer record.
	Update(ctx context.Context, customer *entity.Customer) error

	// Delete removes a customer. Returns ErrCustomerReferenced when invoices
	// still point at it.
	Delete(ctx context.Context, id uuid.UUID) error
}
