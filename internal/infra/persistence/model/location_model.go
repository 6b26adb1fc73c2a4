package model

import (
	"time"

	"github.com/google/uuid"
)

// LocationSampleModel is the GORM-specific struct for the 'location_samples'
// table. Rows are append-only; there is no soft delete and no updated-at.
type LocationSampleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index"`
	DispatchID uuid.UUID `gorm:"type:uuid;not null;index:idx_location_samples_dispatch_recorded"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_location_samples_dispatch_recorded"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LocationSampleModel) TableName() string {
	return "location_samples"
}

// LastKnownLocationModel is the GORM-specific struct for the
// 'last_known_locations' table, one row per driver, last write wins.
type LastKnownLocationModel struct {
	DriverID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	RecordedAt time.Time `gorm:"not null"`
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (LastKnownLocationModel) TableName() string {
	return "last_known_locations"
}
