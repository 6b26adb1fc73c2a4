package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how an assigned invoice was settled on delivery.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

// IsValid checks if the PaymentMethod is a known value.
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	default:
		return false
	}
}

// DispatchInvoiceAssignment links one invoice to one dispatch run. An invoice
// is assigned to at most one dispatch at a time; the eligibility filter
// enforces the exclusion, not a storage constraint. Creating or deleting an
// assignment triggers recomputation of the dispatch totals inside the same
// transaction.
type DispatchInvoiceAssignment struct {
	ID            uuid.UUID       `json:"id"`
	DispatchID    uuid.UUID       `json:"dispatch_id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	ReceiptURL    string          `json:"receipt_url"` // Public URL of the uploaded receipt image, if any.
	Paid          bool            `json:"paid"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Populated on reads that join the invoice and its customer; nil otherwise.
	Invoice  *Invoice  `json:"invoice,omitempty"`
	Customer *Customer `json:"customer,omitempty"`
}
