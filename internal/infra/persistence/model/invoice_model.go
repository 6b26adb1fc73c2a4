package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceModel is the GORM-specific struct for the 'invoices' table.
// IssueDate is a plain date; eligibility compares calendar days only.
type InvoiceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Number      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	IssueDate   time.Time       `gorm:"type:date;not null;index"`
	GrandTotal  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Paid        bool            `gorm:"not null;default:false"`
	CollectedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (InvoiceModel) TableName() string {
	return "invoices"
}
