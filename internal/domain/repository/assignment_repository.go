package repository

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for assignment persistence.
var (
	// ErrAssignmentNotFound is returned when an assignment is not found.
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// AssignmentRepository defines the interface for dispatch/invoice assignment operations.
type AssignmentRepository interface {
	// Create persists a new assignment.
	Create(ctx context.Context, assignment *entity.DispatchInvoiceAssignment) error

	// FindByID retrieves an assignment by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DispatchInvoiceAssignment, error)

	// FindByDispatch retrieves the assignments of a dispatch with their
	// invoice and customer joined. This is the input of the totals
	// aggregator, which always re-derives from the full set.
	FindByDispatch(ctx context.Context, dispatchID uuid.UUID) ([]*entity.DispatchInvoiceAssignment, error)

	// ListAssignedInvoiceIDs returns the IDs of every invoice currently
	// assigned to any dispatch. Feeds the eligibility filter's exclusion rule.
	ListAssignedInvoiceIDs(ctx context.Context) ([]uuid.UUID, error)

	// Update updates an existing assignment record.
	Update(ctx context.Context, assignment *entity.DispatchInvoiceAssignment) error

	// Delete removes an assignment by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
