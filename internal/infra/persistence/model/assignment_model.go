package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DispatchAssignmentModel is the GORM-specific struct for the
// 'dispatch_invoice_assignments' table. The unique index on invoice_id is
// the storage-level backstop for "one dispatch per invoice".
type DispatchAssignmentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DispatchID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	AmountPaid    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	ReceiptURL    string          `gorm:"type:text"`
	Paid          bool            `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (DispatchAssignmentModel) TableName() string {
	return "dispatch_invoice_assignments"
}
