package repository

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for route persistence.
var (
	// ErrRouteNotFound is returned when a route is not found.
	ErrRouteNotFound = errors.New("route not found")
	// ErrRouteReferenced is returned when a delete is blocked by existing references.
	ErrRouteReferenced = errors.New("route is still referenced")
)

// RouteRepository defines the interface for route-related database operations.
type RouteRepository interface {
	// Create persists a new route.
	Create(ctx context.Context, route *entity.Route) error

	// FindByID retrieves a route by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)

	// FindAll retrieves every route.
	FindAll(ctx context.Context) ([]*entity.Route, error)

	// Update updates an existing route record.
	Update(ctx context.Context, route *entity.Route) error

	// Delete removes a route. Returns ErrRouteReferenced when customers or
	// dispatches still point at it.
	Delete(ctx context.Context, id uuid.UUID) error
}
