package service

import (
	"context"
	"time"
)

// Coordinate is a geographic point, longitude-first to match the WKT
// convention used across the system.
type Coordinate struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// PlannedRoute is the ordered path returned by the directions service.
type PlannedRoute struct {
	Points   []Coordinate  `json:"points"`
	Distance float64       `json:"distance"` // Meters.
	Duration time.Duration `json:"duration"`
}

// DirectionsService resolves a shortest route between a depot and a set of
// delivery waypoints through an external directions provider. Used only for
// the planned-route overlay; eligibility and totals never depend on it.
type DirectionsService interface {
	// Route returns an ordered route visiting the waypoints from the origin.
	Route(ctx context.Context, origin Coordinate, waypoints []Coordinate) (*PlannedRoute, error)
}
