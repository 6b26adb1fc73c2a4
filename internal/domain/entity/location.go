package entity

import (
	"time"

	"github.com/google/uuid"
)

// LocationSample is one recorded position of a driver while a trip is
// active. Samples are append-only and never updated; a dispatch's trail is
// the timestamp-ordered set of its samples, not a stored object.
type LocationSample struct {
	ID         uuid.UUID `json:"id"`
	DriverID   uuid.UUID `json:"driver_id"`
	DispatchID uuid.UUID `json:"dispatch_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// LastKnownLocation is the single most recent position of a driver,
// upserted on every position update independent of any active trip. Backs
// the "all drivers" live view.
type LastKnownLocation struct {
	DriverID   uuid.UUID `json:"driver_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}
