package usecase

import (
	"context"
	"io"
	"time"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceInput represents the input for registering a new invoice
type CreateInvoiceInput struct {
	Number     string          `json:"number" validate:"required"`
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	IssueDate  time.Time       `json:"issue_date" validate:"required"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// UpdateInvoicePaymentInput represents the input for updating an invoice's
// payment fields. Issue date, number and amount are immutable once issued.
type UpdateInvoicePaymentInput struct {
	Paid        *bool      `json:"paid,omitempty"`
	CollectedAt *time.Time `json:"collected_at,omitempty"`
}

// ImportSummary reports the outcome of a workbook import. Rows that fail to
// parse are skipped and reported; they never abort the rows that succeeded.
type ImportSummary struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// InvoiceUsecase defines the interface for invoice management use cases
type InvoiceUsecase interface {
	// CreateInvoice registers a single invoice
	CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error)

	// GetInvoice retrieves an invoice by ID
	GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// ListInvoicesByIssueDate retrieves the invoices issued on a calendar day
	ListInvoicesByIssueDate(ctx context.Context, day time.Time) ([]*entity.Invoice, error)

	// ListInvoicesByCustomer retrieves every invoice of a customer
	ListInvoicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Invoice, error)

	// UpdateInvoicePayment updates the mutable payment fields of an invoice
	UpdateInvoicePayment(ctx context.Context, id uuid.UUID, input *UpdateInvoicePaymentInput) (*entity.Invoice, error)

	// DeleteInvoice removes an invoice unless a dispatch assignment still
	// references it
	DeleteInvoice(ctx context.Context, id uuid.UUID) error

	// ImportWorkbook reads an Excel billing export and registers its invoices
	ImportWorkbook(ctx context.Context, workbook io.Reader) (*ImportSummary, error)
}
