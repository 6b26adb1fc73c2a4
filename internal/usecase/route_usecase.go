package usecase

import (
	"context"

	"rutero/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateRouteInput represents the input for creating a new route
type CreateRouteInput struct {
	Description string `json:"description" validate:"required"`
	Geofence    string `json:"geofence"`
}

// UpdateRouteInput represents the input for updating an existing route
type UpdateRouteInput struct {
	Description *string `json:"description,omitempty"`
	Geofence    *string `json:"geofence,omitempty"`
}

// RouteUsecase defines the interface for route management use cases
type RouteUsecase interface {
	// CreateRoute registers a new route; a non-empty geofence is normalized
	// and must parse to at least one polygon
	CreateRoute(ctx context.Context, input *CreateRouteInput) (*entity.Route, error)

	// GetRoute retrieves a route by ID
	GetRoute(ctx context.Context, id uuid.UUID) (*entity.Route, error)

	// ListRoutes retrieves every route
	ListRoutes(ctx context.Context) ([]*entity.Route, error)

	// UpdateRoute applies a partial update; geofence updates follow the same
	// normalization rules as creation
	UpdateRoute(ctx context.Context, id uuid.UUID, input *UpdateRouteInput) (*entity.Route, error)

	// DeleteRoute removes a route unless customers or dispatches still
	// reference it
	DeleteRoute(ctx context.Context, id uuid.UUID) error
}
