// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TaxClass is the fiscal classification of a customer. It decides which
// dispatch total an assigned invoice contributes to.
type TaxClass string

const (
	// TaxClassFinalConsumer maps invoice amounts to the cash total.
	TaxClassFinalConsumer TaxClass = "Consumidor Final"
	// TaxClassFiscalCredit maps invoice amounts to the credit total.
	TaxClassFiscalCredit TaxClass = "Crédito Fiscal"
)

// String returns the string representation of the TaxClass.
func (t TaxClass) String() string {
	return string(t)
}

// IsValid checks if the TaxClass is a known value. Unknown classes are
// tolerated on read (they are simply excluded from both dispatch totals)
// but rejected on write.
func (t TaxClass) IsValid() bool {
	switch t {
	case TaxClassFinalConsumer, TaxClassFiscalCredit:
		return true
	default:
		return false
	}
}

// Customer is a delivery customer with an optional geofence used to decide
// whether its invoices are eligible for a given dispatch run.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	RouteID     uuid.UUID `json:"route_id"`      // Route the customer belongs to.
	TaxClass    TaxClass  `json:"tax_class"`     // Fiscal classification.
	PaymentTerm int       `json:"payment_term"`  // Credit days granted to the customer.
	Geofence    string    `json:"geofence"`      // Normalized WKT polygon text; empty means no geofence.
	Latitude    *float64  `json:"latitude"`      // Last registered location, if any.
	Longitude   *float64  `json:"longitude"`     //
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasGeofence reports whether the customer carries its own geofence.
func (c *Customer) HasGeofence() bool {
	return c.Geofence != ""
}

// HasLocation reports whether a registered location is available.
func (c *Customer) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}
