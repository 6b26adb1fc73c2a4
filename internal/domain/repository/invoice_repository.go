package repository

import (
	"context"
	"time"

	"rutero/internal/domain/entity"
	"rutero/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for invoice persistence.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found.
	ErrInvoiceNotFound = errors.New("invoice not found")
	// ErrInvoiceReferenced is returned when a delete is blocked by a dispatch assignment.
	ErrInvoiceReferenced = errors.New("invoice is still referenced by an assignment")
)

// InvoiceRepository defines the interface for invoice-related database operations.
type InvoiceRepository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// CreateBatch persists a set of imported invoices in one operation.
	CreateBatch(ctx context.Context, invoices []*entity.Invoice) error

	// FindByID retrieves an invoice by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindByIssueDate retrieves every invoice issued on the given calendar day.
	FindByIssueDate(ctx context.Context, day time.Time) ([]*entity.Invoice, error)

	// FindByCustomer retrieves every invoice of a customer.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Invoice, error)

	// Update updates the mutable (payment) fields of an invoice.
	Update(ctx context.Context, invoice *entity.Invoice) error

	// Delete removes an invoice. Returns ErrInvoiceReferenced while a
	// dispatch assignment points at it.
	Delete(ctx context.Context, id uuid.UUID) error
}
