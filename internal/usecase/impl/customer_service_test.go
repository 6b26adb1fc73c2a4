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

// customerServiceFixtures holds all test dependencies for customer service tests.
type customerServiceFixtures struct {
	service      usecase.CustomerUsecase
	customerRepo *mockRepo.MockCustomerRepository
	routeRepo    *mockRepo.MockRouteRepository
}

func createTestCustomerService(t *testing.T) customerServiceFixtures {
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	routeRepo := mockRepo.NewMockRouteRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCustomerService(CustomerServiceParams{
		CustomerRepo: customerRepo,
		RouteRepo:    routeRepo,
		Logger:       logger,
	})

	return customerServiceFixtures{
		service:      service,
		customerRepo: customerRepo,
		routeRepo:    routeRepo,
	}
}

func TestCustomerService_CreateCustomer_Success(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateCustomerInput{
		Name:        "Tienda La Fe",
		RouteID:     routeID.String(),
		TaxClass:    "Consumidor Final",
		PaymentTerm: 15,
		Geofence:    squareFence,
		Latitude:    floatPtr(5),
		Longitude:   floatPtr(5),
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(&entity.Route{ID: routeID}, nil)
	fx.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).Return(nil)

	customer, err := fx.service.CreateCustomer(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Tienda La Fe", customer.Name)
	assert.Equal(t, routeID, customer.RouteID)
	assert.Equal(t, entity.TaxClassFinalConsumer, customer.TaxClass)
	assert.Equal(t, squareFence, customer.Geofence)
}

func TestCustomerService_CreateCustomer_GeofenceUnwrappedFromCollection(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateCustomerInput{
		Name:     "Tienda La Fe",
		RouteID:  routeID.String(),
		TaxClass: "Crédito Fiscal",
		Geofence: "GEOMETRYCOLLECTION(POLYGON((0 0, 1 0, 1 1, 0 1, 0 0)))",
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(&entity.Route{ID: routeID}, nil)
	fx.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).Return(nil)

	customer, err := fx.service.CreateCustomer(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))", customer.Geofence,
		"a single polygon is stored without the collection envelope")
}

func TestCustomerService_CreateCustomer_MultiPolygonGeofence(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateCustomerInput{
		Name:     "Tienda La Fe",
		RouteID:  routeID.String(),
		TaxClass: "Crédito Fiscal",
		Geofence: "MULTIPOLYGON(((0 0, 1 0, 1 1, 0 0)), ((2 2, 3 2, 3 3, 2 2)))",
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(&entity.Route{ID: routeID}, nil)
	fx.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).Return(nil)

	customer, err := fx.service.CreateCustomer(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.Geofence, customer.Geofence,
		"a MULTIPOLYGON is stored whole, not carved into clauses")
}

func TestCustomerService_CreateCustomer_InvalidGeofence(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateCustomerInput{
		Name:     "Tienda La Fe",
		RouteID:  routeID.String(),
		TaxClass: "Consumidor Final",
		Geofence: "not a polygon at all",
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(&entity.Route{ID: routeID}, nil)

	customer, err := fx.service.CreateCustomer(ctx, input)

	assert.Nil(t, customer)
	require.ErrorIs(t, err, domainerrors.ErrInvalidGeofence)
}

func TestCustomerService_CreateCustomer_UnknownTaxClass(t *testing.T) {
	fx := createTestCustomerService(t)

	input := &usecase.CreateCustomerInput{
		Name:     "Tienda La Fe",
		RouteID:  uuid.NewString(),
		TaxClass: "Exento",
	}

	customer, err := fx.service.CreateCustomer(context.Background(), input)

	assert.Nil(t, customer)
	assertAppErrorCode(t, err, "VALIDATION_FAILED")
}

func TestCustomerService_CreateCustomer_RouteNotFound(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateCustomerInput{
		Name:     "Tienda La Fe",
		RouteID:  routeID.String(),
		TaxClass: "Consumidor Final",
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(nil, repository.ErrRouteNotFound)

	customer, err := fx.service.CreateCustomer(ctx, input)

	assert.Nil(t, customer)
	require.ErrorIs(t, err, domainerrors.ErrRouteNotFound)
}

func TestCustomerService_UpdateCustomer_ClearGeofence(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	customer := &entity.Customer{
		ID:       uuid.New(),
		Name:     "Tienda La Fe",
		RouteID:  uuid.New(),
		TaxClass: entity.TaxClassFinalConsumer,
		Geofence: squareFence,
	}

	fx.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.customerRepo.On("Update", ctx, customer).Return(nil)

	empty := ""
	updated, err := fx.service.UpdateCustomer(ctx, customer.ID, &usecase.UpdateCustomerInput{
		Geofence: &empty,
	})

	require.NoError(t, err)
	assert.Empty(t, updated.Geofence, "blank input clears the geofence")
}

func TestCustomerService_UpdateCustomer_NotFound(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	customerID := uuid.New()

	fx.customerRepo.On("FindByID", ctx, customerID).Return(nil, repository.ErrCustomerNotFound)

	updated, err := fx.service.UpdateCustomer(ctx, customerID, &usecase.UpdateCustomerInput{})

	assert.Nil(t, updated)
	require.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}

func TestCustomerService_DeleteCustomer_StillReferenced(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	customerID := uuid.New()

	fx.customerRepo.On("Delete", ctx, customerID).Return(repository.ErrCustomerReferenced)

	err := fx.service.DeleteCustomer(ctx, customerID)

	require.ErrorIs(t, err, domainerrors.ErrCustomerInUse)
}

func TestCustomerService_ListCustomersByRoute(t *testing.T) {
	fx := createTestCustomerService(t)

	ctx := context.Background()
	routeID := uuid.New()
	customers := []*entity.Customer{
		{ID: uuid.New(), RouteID: routeID},
		{ID: uuid.New(), RouteID: routeID},
	}

	fx.customerRepo.On("FindByRoute", ctx, routeID).Return(customers, nil)

	got, err := fx.service.ListCustomersByRoute(ctx, routeID)

	require.NoError(t, err)
	assert.Equal(t, customers, got)
}
