package usecase

import (
	"context"
	"io"
	"time"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDispatchInput represents the input for creating a new dispatch run
type CreateDispatchInput struct {
	RouteID  string    `json:"route_id" validate:"required,uuid"`
	DriverID string    `json:"driver_id" validate:"required,uuid"`
	HelperID string    `json:"helper_id" validate:"required,uuid"`
	Date     time.Time `json:"date" validate:"required"`
}

// UpdateDispatchInput represents the input for updating a dispatch run.
// Totals and stage flags are excluded on purpose; they have their own paths.
type UpdateDispatchInput struct {
	RouteID  *string    `json:"route_id,omitempty" validate:"omitempty,uuid"`
	DriverID *string    `json:"driver_id,omitempty" validate:"omitempty,uuid"`
	HelperID *string    `json:"helper_id,omitempty" validate:"omitempty,uuid"`
	Date     *time.Time `json:"date,omitempty"`
}

// ReceiptUpload carries one receipt image to be stored before the assignment
// record is touched. A failed upload aborts the whole update.
type ReceiptUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// AssignInvoiceInput represents the input for assigning an invoice to a dispatch
type AssignInvoiceInput struct {
	InvoiceID     string          `json:"invoice_id" validate:"required,uuid"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Paid          bool            `json:"paid"`
}

// UpdateAssignmentInput represents the input for updating an existing assignment
type UpdateAssignmentInput struct {
	PaymentMethod *string          `json:"payment_method,omitempty"`
	AmountPaid    *decimal.Decimal `json:"amount_paid,omitempty"`
	Paid          *bool            `json:"paid,omitempty"`
	Receipt       *ReceiptUpload   `json:"-"`
}

// DispatchUsecase defines the interface for dispatch management use cases.
// Every assignment mutation recomputes the dispatch totals from the full
// assignment set inside the mutation's own database transaction.
type DispatchUsecase interface {
	// CreateDispatch registers a new dispatch run
	CreateDispatch(ctx context.Context, input *CreateDispatchInput) (*entity.Dispatch, error)

	// GetDispatch retrieves a dispatch by ID
	GetDispatch(ctx context.Context, id uuid.UUID) (*entity.Dispatch, error)

	// ListDispatches retrieves every dispatch, newest first
	ListDispatches(ctx context.Context) ([]*entity.Dispatch, error)

	// UpdateDispatch applies a partial update to a dispatch run
	UpdateDispatch(ctx context.Context, id uuid.UUID, input *UpdateDispatchInput) (*entity.Dispatch, error)

	// DeleteDispatch removes a dispatch and its assignments
	DeleteDispatch(ctx context.Context, id uuid.UUID) error

	// EligibleInvoices lists the invoices that may be assigned to the
	// dispatch: issued on the dispatch date, not assigned elsewhere, and with
	// the customer's location inside the effective geofence. editingInvoiceID,
	// when set, keeps an already-assigned invoice visible while it is being
	// re-edited.
	EligibleInvoices(ctx context.Context, dispatchID uuid.UUID, editingInvoiceID *uuid.UUID) ([]*entity.Invoice, error)

	// ListAssignments retrieves the assignments of a dispatch with invoice
	// and customer joined
	ListAssignments(ctx context.Context, dispatchID uuid.UUID) ([]*entity.DispatchInvoiceAssignment, error)

	// AssignInvoice assigns an eligible invoice to the dispatch
	AssignInvoice(ctx context.Context, dispatchID uuid.UUID, input *AssignInvoiceInput) (*entity.DispatchInvoiceAssignment, error)

	// UpdateAssignment updates an assignment's payment fields, uploading the
	// receipt image first when one is attached
	UpdateAssignment(ctx context.Context, assignmentID uuid.UUID, input *UpdateAssignmentInput) (*entity.DispatchInvoiceAssignment, error)

	// UnassignInvoice removes an assignment from its dispatch
	UnassignInvoice(ctx context.Context, assignmentID uuid.UUID) error

	// SetStage flips one workflow checkpoint, gated by the caller's roles
	SetStage(ctx context.Context, dispatchID uuid.UUID, stage entity.DispatchStage, done bool, roles entity.Roles) (*entity.Dispatch, error)

	// GenerateDispatchQR generates the check-in QR code PNG for a dispatch
	GenerateDispatchQR(ctx context.Context, dispatchID uuid.UUID) ([]byte, error)
}
