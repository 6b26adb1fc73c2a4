package entity

import (
	"time"

	"github.com/google/uuid"
)

// Route is a delivery route. Its geofence approximates "which customers are
// reachable on this route" for customers that lack their own geofence.
type Route struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Geofence    string    `json:"geofence"` // Normalized WKT polygon text; empty means no geofence.
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasGeofence reports whether the route carries a geofence.
func (r *Route) HasGeofence() bool {
	return r.Geofence != ""
}
