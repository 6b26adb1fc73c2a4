package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DispatchModel is the GORM-specific struct for the 'dispatches' table.
// The three totals are derived values; only UpdateTotals writes them.
type DispatchModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RouteID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID uuid.UUID `gorm:"type:uuid;not null;index"`
	HelperID uuid.UUID `gorm:"type:uuid;not null"`
	Date     time.Time `gorm:"type:date;not null;index"`

	CashTotal   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreditTotal decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	GrandTotal  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	WarehouseDone      bool `gorm:"not null;default:false"`
	DeliveryDone       bool `gorm:"not null;default:false"`
	BillingDone        bool `gorm:"not null;default:false"`
	CollectionsDone    bool `gorm:"not null;default:false"`
	AdminAssistantDone bool `gorm:"not null;default:false"`
	AdminManagerDone   bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (DispatchModel) TableName() string {
	return "dispatches"
}
