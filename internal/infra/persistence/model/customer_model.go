// Package model contains the GORM-specific structs of the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerModel is the GORM-specific struct for the 'customers' table.
// The geofence travels as normalized WKT text; parsing happens on demand in
// the application, never in the database.
type CustomerModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(255);not null;index"`
	RouteID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TaxClass    string    `gorm:"type:varchar(50);not null"`
	PaymentTerm int       `gorm:"not null;default:0"`
	Geofence    string    `gorm:"type:text"`
	Latitude    *float64  `gorm:"type:double precision"`
	Longitude   *float64  `gorm:"type:double precision"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}
