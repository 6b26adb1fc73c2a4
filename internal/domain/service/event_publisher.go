package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PositionEvent is one driver position pushed to the realtime feed so live
// map consumers do not have to poll.
type PositionEvent struct {
	DriverID   uuid.UUID `json:"driver_id"`
	DispatchID uuid.UUID `json:"dispatch_id,omitempty"` // Zero when the driver is idle.
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishPositionEvent publishes a driver position update for live consumers
	PublishPositionEvent(ctx context.Context, event *PositionEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
