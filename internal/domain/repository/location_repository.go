package repository

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
)

// LocationRepository defines the interface for location sample and
// last-known-location operations.
type LocationRepository interface {
	// AppendSample appends one location sample. Samples are never updated
	// afterwards; a failed append is reported, not retried.
	AppendSample(ctx context.Context, sample *entity.LocationSample) error

	// ListSamplesByDispatch retrieves the samples of one dispatch ordered by
	// recording time ascending.
	ListSamplesByDispatch(ctx context.Context, dispatchID uuid.UUID) ([]*entity.LocationSample, error)

	// UpsertLastKnown writes the driver's most recent position,
	// last-write-wins, one row per driver.
	UpsertLastKnown(ctx context.Context, location *entity.LastKnownLocation) error

	// ListLastKnown retrieves the latest position of every driver.
	ListLastKnown(ctx context.Context) ([]*entity.LastKnownLocation, error)
}
