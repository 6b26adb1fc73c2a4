package repository

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for dispatch persistence.
var (
	// ErrDispatchNotFound is returned when a dispatch is not found.
	ErrDispatchNotFound = errors.New("dispatch not found")
)

// DispatchTotals carries the three derived monetary totals of a dispatch.
type DispatchTotals struct {
	Cash   decimal.Decimal
	Credit decimal.Decimal
	Grand  decimal.Decimal
}

// DispatchRepository defines the interface for dispatch-related database operations.
type DispatchRepository interface {
	// Create persists a new dispatch.
	Create(ctx context.Context, dispatch *entity.Dispatch) error

	// FindByID retrieves a dispatch by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispatch, error)

	// FindAll retrieves every dispatch, newest first.
	FindAll(ctx context.Context) ([]*entity.Dispatch, error)

	// Update updates an existing dispatch record.
	Update(ctx context.Context, dispatch *entity.Dispatch) error

	// UpdateTotals overwrites the three derived totals of a dispatch.
	UpdateTotals(ctx context.Context, id uuid.UUID, totals DispatchTotals) error

	// Delete removes a dispatch and, through the storage layer's cascade,
	// its assignments.
	Delete(ctx context.Context, id uuid.UUID) error
}
