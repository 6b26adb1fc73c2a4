package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DispatchStage identifies one workflow checkpoint of a dispatch run.
type DispatchStage string

const (
	StageWarehouse      DispatchStage = "warehouse"
	StageDelivery       DispatchStage = "delivery"
	StageBilling        DispatchStage = "billing"
	StageCollections    DispatchStage = "collections"
	StageAdminAssistant DispatchStage = "admin_assistant"
	StageAdminManager   DispatchStage = "admin_manager"
)

// IsValid checks if the DispatchStage is a known value.
func (s DispatchStage) IsValid() bool {
	switch s {
	case StageWarehouse, StageDelivery, StageBilling,
		StageCollections, StageAdminAssistant, StageAdminManager:
		return true
	default:
		return false
	}
}

// Dispatch is a single day's delivery run assigned to a driver/helper pair
// along a route. Its three monetary totals are derived from the currently
// assigned invoices and are never hand-edited; every assignment mutation
// recomputes them from scratch.
type Dispatch struct {
	ID       uuid.UUID `json:"id"`
	RouteID  uuid.UUID `json:"route_id"`
	DriverID uuid.UUID `json:"driver_id"`
	HelperID uuid.UUID `json:"helper_id"`
	Date     time.Time `json:"date"` // Calendar day of the run.

	// Derived totals. CashTotal sums invoices of final-consumer customers,
	// CreditTotal sums invoices of fiscal-credit customers, GrandTotal is
	// their sum.
	CashTotal   decimal.Decimal `json:"cash_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	GrandTotal  decimal.Decimal `json:"grand_total"`

	// Workflow checkpoints.
	WarehouseDone      bool `json:"warehouse_done"`
	DeliveryDone       bool `json:"delivery_done"`
	BillingDone        bool `json:"billing_done"`
	CollectionsDone    bool `json:"collections_done"`
	AdminAssistantDone bool `json:"admin_assistant_done"`
	AdminManagerDone   bool `json:"admin_manager_done"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetStage flips one workflow checkpoint. Returns false for unknown stages.
func (d *Dispatch) SetStage(stage DispatchStage, done bool) bool {
	switch stage {
	case StageWarehouse:
		d.WarehouseDone = done
	case StageDelivery:
		d.DeliveryDone = done
	case StageBilling:
		d.BillingDone = done
	case StageCollections:
		d.CollectionsDone = done
	case StageAdminAssistant:
		d.AdminAssistantDone = done
	case StageAdminManager:
		d.AdminManagerDone = done
	default:
		return false
	}

	return true
}
