// Package impl contains the implementation of the application's business logic.
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

type customerService struct {
	customerRepo repository.CustomerRepository
	routeRepo    repository.RouteRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for CustomerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	RouteRepo    repository.RouteRepository
	Logger       *slog.Logger
}

// NewCustomerService creates a new customer service instance
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		routeRepo:    params.RouteRepo,
		logger:       params.Logger,
	}
}

func (s *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// CreateCustomer registers a new customer
func (s *customerService) CreateCustomer(ctx context.Context, input *usecase.CreateCustomerInput) (*entity.Customer, error) {
	routeID, err := uuid.Parse(input.RouteID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("route_id is not a valid UUID")
	}

	taxClass := entity.TaxClass(input.TaxClass)
	if !taxClass.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown tax class: " + input.TaxClass)
	}

	if _, err := s.routeRepo.FindByID(ctx, routeID); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return nil, domainerrors.ErrRouteNotFound
		}

		return nil, errors.Wrap(err, "failed to find route by id")
	}

	geofence, err := normalizeGeofence(input.Geofence)
	if err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		ID:          uuid.New(),
		Name:        input.Name,
		RouteID:     routeID,
		TaxClass:    taxClass,
		PaymentTerm: input.PaymentTerm,
		Geofence:    geofence,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to create customer")
	}

	s.log(ctx).Debug("Customer created", slog.Any("customerID", customer.ID))

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *customerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return customer, nil
}

// ListCustomers retrieves every customer
func (s *customerService) ListCustomers(ctx context.Context) ([]*entity.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return customers, nil
}

// ListCustomersByRoute retrieves the customers of one route
func (s *customerService) ListCustomersByRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.Customer, error) {
	customers, err := s.customerRepo.FindByRoute(ctx, routeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers by route")
	}

	return customers, nil
}

// UpdateCustomer applies a partial update to a customer
func (s *customerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *usecase.UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	if err := s.applyCustomerUpdates(ctx, customer, input); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "failed to update customer")
	}

	return customer, nil
}

// applyCustomerUpdates applies the update input to a customer
func (s *customerService) applyCustomerUpdates(ctx context.Context, customer *entity.Customer, input *usecase.UpdateCustomerInput) error {
	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.RouteID != nil {
		routeID, err := uuid.Parse(*input.RouteID)
		if err != nil {
			return domainerrors.ErrValidationFailed.WithDetails("route_id is not a valid UUID")
		}
		if _, err := s.routeRepo.FindByID(ctx, routeID); err != nil {
			if errors.Is(err, repository.ErrRouteNotFound) {
				return domainerrors.ErrRouteNotFound
			}

			return errors.Wrap(err, "failed to find route by id")
		}
		customer.RouteID = routeID
	}
	if input.TaxClass != nil {
		taxClass := entity.TaxClass(*input.TaxClass)
		if !taxClass.IsValid() {
			return domainerrors.ErrValidationFailed.WithDetails("unknown tax class: " + *input.TaxClass)
		}
		customer.TaxClass = taxClass
	}
	if input.PaymentTerm != nil {
		customer.PaymentTerm = *input.PaymentTerm
	}
	if input.Geofence != nil {
		geofence, err := normalizeGeofence(*input.Geofence)
		if err != nil {
			return err
		}
		customer.Geofence = geofence
	}
	if input.Latitude != nil {
		customer.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		customer.Longitude = input.Longitude
	}
	customer.UpdatedAt = time.Now()

	return nil
}

// DeleteCustomer removes a customer unless invoices still reference it
func (s *customerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCustomerNotFound):
			return domainerrors.ErrCustomerNotFound
		case errors.Is(err, repository.ErrCustomerReferenced):
			return domainerrors.ErrCustomerInUse
		default:
			return errors.Wrap(err, "failed to delete customer")
		}
	}

	s.log(ctx).Debug("Customer deleted", slog.Any("customerID", id))

	return nil
}
