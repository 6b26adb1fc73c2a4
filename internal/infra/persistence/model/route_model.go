package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RouteModel is the GORM-specific struct for the 'routes' table.
type RouteModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Description string    `gorm:"type:varchar(255);not null"`
	Geofence    string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (RouteModel) TableName() string {
	return "routes"
}
