package usecase

import (
	"context"
	"time"

	"rutero/internal/domain/entity"
	"rutero/internal/domain/service"

	"github.com/google/uuid"
)

// RecordPositionInput represents one position report from a driver device
type RecordPositionInput struct {
	DriverID   uuid.UUID `json:"driver_id"`
	Latitude   float64   `json:"latitude" validate:"latitude"`
	Longitude  float64   `json:"longitude" validate:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrailPoint is one point of a reconstructed dispatch trail
type TrailPoint struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// TrackingUsecase defines the interface for trip and live-tracking use cases.
// Trip state lives server-side, keyed by driver; it is created by StartTrip
// and cleared by StopTrip, never carried as ambient client state.
type TrackingUsecase interface {
	// StartTrip opens a trip for a driver on a dispatch. A driver has at most
	// one active trip at a time.
	StartTrip(ctx context.Context, driverID, dispatchID uuid.UUID) error

	// StopTrip closes the driver's active trip. Stopping with no active trip
	// is an error; samples already in flight may still land.
	StopTrip(ctx context.Context, driverID uuid.UUID) error

	// ClearTrip drops the driver's trip state if there is any. Unlike StopTrip
	// it never fails; it backs the logout path, where a driver may or may not
	// be mid-trip.
	ClearTrip(ctx context.Context, driverID uuid.UUID)

	// ActiveDispatch reports the dispatch of the driver's active trip, if any
	ActiveDispatch(driverID uuid.UUID) (uuid.UUID, bool)

	// RecordPosition ingests one position report. With an active trip it
	// appends a trail sample and upserts the last known location; while idle
	// it only upserts the last known location.
	RecordPosition(ctx context.Context, input *RecordPositionInput) error

	// BuildTrail reconstructs the recorded trail of a dispatch, ordered by
	// recording time ascending. An empty trail is valid.
	BuildTrail(ctx context.Context, dispatchID uuid.UUID) ([]TrailPoint, error)

	// PlannedRoute resolves the depot-to-delivery-points route of a dispatch
	// through the external directions service
	PlannedRoute(ctx context.Context, dispatchID uuid.UUID) (*service.PlannedRoute, error)

	// ListDrivers retrieves the last known position of every driver
	ListDrivers(ctx context.Context) ([]*entity.LastKnownLocation, error)
}
