package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	mockRepo "rutero/internal/mocks/repository"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// routeServiceFixtures holds all test dependencies for route service tests.
type routeServiceFixtures struct {
	service   usecase.RouteUsecase
	routeRepo *mockRepo.MockRouteRepository
}

func createTestRouteService(t *testing.T) routeServiceFixtures {
	routeRepo := mockRepo.NewMockRouteRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewRouteService(RouteServiceParams{
		RouteRepo: routeRepo,
		Logger:    logger,
	})

	return routeServiceFixtures{
		service:   service,
		routeRepo: routeRepo,
	}
}

func TestRouteService_CreateRoute_Success(t *testing.T) {
	fx := createTestRouteService(t)

	ctx := context.Background()
	input := &usecase.CreateRouteInput{
		Description: "Ruta 4 - San Miguel",
		Geofence:    squareFence,
	}

	fx.routeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Route")).Return(nil)

	route, err := fx.service.CreateRoute(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Ruta 4 - San Miguel", route.Description)
	assert.Equal(t, squareFence, route.Geofence)
}

func TestRouteService_CreateRoute_MultiplePolygonsWrapped(t *testing.T) {
	fx := createTestRouteService(t)

	ctx := context.Background()
	input := &usecase.CreateRouteInput{
		Description: "Ruta 7 - Zona costera",
		Geofence:    "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0)) POLYGON((2 2, 3 2, 3 3, 2 3, 2 2))",
	}

	fx.routeRepo.On("Create", ctx, mock.AnythingOfType("*entity.Route")).Return(nil)

	route, err := fx.service.CreateRoute(ctx, input)

	require.NoError(t, err)
	assert.Equal(t,
		"GEOMETRYCOLLECTION(POLYGON((0 0, 1 0, 1 1, 0 1, 0 0)), POLYGON((2 2, 3 2, 3 3, 2 3, 2 2)))",
		route.Geofence)
}

func TestRouteService_CreateRoute_InvalidGeofence(t *testing.T) {
	fx := createTestRouteService(t)

	input := &usecase.CreateRouteInput{
		Description: "Ruta 9",
		Geofence:    "LINESTRING(0 0, 1 1)",
	}

	route, err := fx.service.CreateRoute(context.Background(), input)

	assert.Nil(t, route)
	require.ErrorIs(t, err, domainerrors.ErrInvalidGeofence)
}

func TestRouteService_UpdateRoute_Success(t *testing.T) {
	fx := createTestRouteService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New(), Description: "Ruta 4"}

	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.routeRepo.On("Update", ctx, route).Return(nil)

	description := "Ruta 4 - ampliada"
	updated, err := fx.service.UpdateRoute(ctx, route.ID, &usecase.UpdateRouteInput{
		Description: &description,
	})

	require.NoError(t, err)
	assert.Equal(t, "Ruta 4 - ampliada", updated.Description)
}

func TestRouteService_UpdateRoute_NotFound(t *testing.T) {
	fx := createTestRouteService(t)

	ctx := context.Background()
	routeID := uuid.New()

	fx.routeRepo.On("FindByID", ctx, routeID).Return(nil, repository.ErrRouteNotFound)

	updated, err := fx.service.UpdateRoute(ctx, routeID, &usecase.UpdateRouteInput{})

	assert.Nil(t, updated)
	require.ErrorIs(t, err, domainerrors.ErrRouteNotFound)
}

func TestRouteService_DeleteRoute_StillReferenced(t *testing.T) {
	fx := createTestRouteService(t)

	ctx := context.Background()
	routeID := uuid.New()

	fx.routeRepo.On("Delete", ctx, routeID).Return(repository.ErrRouteReferenced)

	err := fx.service.DeleteRoute(ctx, routeID)

	require.ErrorIs(t, err, domainerrors.ErrRouteInUse)
}

func TestRouteService_ListRoutes(t *testing.T) {
	fx := createTestRouteService(t)

	ctx := context.Background()
	routes := []*entity.Route{
		{ID: uuid.New(), Description: "Ruta 1"},
		{ID: uuid.New(), Description: "Ruta 2"},
	}

	fx.routeRepo.On("FindAll", ctx).Return(routes, nil)

	got, err := fx.service.ListRoutes(ctx)

	require.NoError(t, err)
	assert.Equal(t, routes, got)
}
