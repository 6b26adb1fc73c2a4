package postgres

import (
	"context"

	"rutero/internal/domain/entity"
	"rutero/internal/domain/repository"
	"rutero/internal/errors"
	"rutero/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerModel := fromCustomerDomain(customer)
	if err := r.db.WithContext(ctx).Create(customerModel).Error; err != nil {
		return errors.Wrap(err, "failed to create customer")
	}
	customer.ID = customerModel.ID
	customer.CreatedAt = customerModel.CreatedAt
	customer.UpdatedAt = customerModel.UpdatedAt

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customerModel model.CustomerModel
	if err := r.db.WithContext(ctx).First(&customerModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return toCustomerDomain(&customerModel), nil
}

func (r *customerRepository) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	var customerModels []model.CustomerModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find customers")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, toCustomerDomain(&customerModels[i]))
	}

	return customers, nil
}

func (r *customerRepository) FindByRoute(ctx context.Context, routeID uuid.UUID) ([]*entity.Customer, error) {
	var customerModels []model.CustomerModel
	if err := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("name asc").
		Find(&customerModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find customers by route")
	}

	customers := make([]*entity.Customer, 0, len(customerModels))
	for i := range customerModels {
		customers = append(customers, toCustomerDomain(&customerModels[i]))
	}

	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	customerModel := fromCustomerDomain(customer)
	result := r.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{
			"name":         customerModel.Name,
			"route_id":     customerModel.RouteID,
			"tax_class":    customerModel.TaxClass,
			"payment_term": customerModel.PaymentTerm,
			"geofence":     customerModel.Geofence,
			"latitude":     customerModel.Latitude,
			"longitude":    customerModel.Longitude,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var referencing int64
	if err := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("customer_id = ?", id).
		Count(&referencing).Error; err != nil {
		return errors.Wrap(err, "failed to count invoices of customer")
	}
	if referencing > 0 {
		return repository.ErrCustomerReferenced
	}

	result := r.db.WithContext(ctx).Delete(&model.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrCustomerReferenced
		}

		return errors.Wrap(result.Error, "failed to delete customer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCustomerNotFound
	}

	return nil
}

func toCustomerDomain(customerModel *model.CustomerModel) *entity.Customer {
	return &entity.Customer{
		ID:          customerModel.ID,
		Name:        customerModel.Name,
		RouteID:     customerModel.RouteID,
		TaxClass:    entity.TaxClass(customerModel.TaxClass),
		PaymentTerm: customerModel.PaymentTerm,
		Geofence:    customerModel.Geofence,
		Latitude:    customerModel.Latitude,
		Longitude:   customerModel.Longitude,
		CreatedAt:   customerModel.CreatedAt,
		UpdatedAt:   customerModel.UpdatedAt,
	}
}

func fromCustomerDomain(customer *entity.Customer) *model.CustomerModel {
	return &model.CustomerModel{
		ID:          customer.ID,
		Name:        customer.Name,
		RouteID:     customer.RouteID,
		TaxClass:    customer.TaxClass.String(),
		PaymentTerm: customer.PaymentTerm,
		Geofence:    customer.Geofence,
		Latitude:    customer.Latitude,
		Longitude:   customer.Longitude,
		CreatedAt:   customer.CreatedAt,
		UpdatedAt:   customer.UpdatedAt,
	}
}
