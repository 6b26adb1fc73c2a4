package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "rutero/internal/delivery/context"
	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type routeService struct {
	routeRepo repository.RouteRepository
	logger    *slog.Logger
}

// RouteServiceParams holds dependencies for RouteService, injected by Fx.
type RouteServiceParams struct {
	fx.In

	RouteRepo repository.RouteRepository
	Logger    *slog.Logger
}

// NewRouteService creates a new route service instance
func NewRouteService(params RouteServiceParams) usecase.RouteUsecase {
	return &routeService{
		routeRepo: params.RouteRepo,
		logger:    params.Logger,
	}
}

func (s *routeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// CreateRoute registers a new route
func (s *routeService) CreateRoute(ctx context.Context, input *usecase.CreateRouteInput) (*entity.Route, error) {
	geofence, err := normalizeGeofence(input.Geofence)
	if err != nil {
		return nil, err
	}

	route := &entity.Route{
		ID:          uuid.New(),
		Description: input.Description,
		Geofence:    geofence,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, errors.Wrap(err, "failed to create route")
	}

	s.log(ctx).Debug("Route created", slog.Any("routeID", route.ID))

	return route, nil
}

// GetRoute retrieves a route by ID
func (s *routeService) GetRoute(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return nil, domainerrors.ErrRouteNotFound
		}

		return nil, errors.Wrap(err, "failed to find route by id")
	}

	return route, nil
}

// ListRoutes retrieves every route
func (s *routeService) ListRoutes(ctx context.Context) ([]*entity.Route, error) {
	routes, err := s.routeRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list routes")
	}

	return routes, nil
}

// UpdateRoute applies a partial update to a route
func (s *routeService) UpdateRoute(ctx context.Context, id uuid.UUID, input *usecase.UpdateRouteInput) (*entity.Route, error) {
	route, err := s.routeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return nil, domainerrors.ErrRouteNotFound
		}

		return nil, errors.Wrap(err, "failed to find route by id")
	}

	if input.Description != nil {
		route.Description = *input.Description
	}
	if input.Geofence != nil {
		geofence, err := normalizeGeofence(*input.Geofence)
		if err != nil {
			return nil, err
		}
		route.Geofence = geofence
	}
	route.UpdatedAt = time.Now()

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, errors.Wrap(err, "failed to update route")
	}

	return route, nil
}

// DeleteRoute removes a route unless customers or dispatches still reference it
func (s *routeService) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	if err := s.routeRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrRouteNotFound):
			return domainerrors.ErrRouteNotFound
		case errors.Is(err, repository.ErrRouteReferenced):
			return domainerrors.ErrRouteInUse
		default:
			return errors.Wrap(err, "failed to delete route")
		}
	}

	s.log(ctx).Debug("Route deleted", slog.Any("routeID", id))

	return nil
}
