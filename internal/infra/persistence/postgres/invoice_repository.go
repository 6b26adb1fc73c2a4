package postgres

import (
	"context"
	"time"

	"rutero/internal/domain/entity"
	"rutero/internal/domain/repository"
	"rutero/internal/errors"
	"rutero/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new instance of InvoiceRepository.
func NewInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := fromInvoiceDomain(invoice)
	if err := r.db.WithContext(ctx).Create(invoiceModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "invoice number already exists")
		}

		return errors.Wrap(err, "failed to create invoice")
	}
	invoice.ID = invoiceModel.ID
	invoice.CreatedAt = invoiceModel.CreatedAt
	invoice.UpdatedAt = invoiceModel.UpdatedAt

	return nil
}

func (r *invoiceRepository) CreateBatch(ctx context.Context, invoices []*entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}

	invoiceModels := make([]*model.InvoiceModel, 0, len(invoices))
	for _, invoice := range invoices {
		invoiceModels = append(invoiceModels, fromInvoiceDomain(invoice))
	}

	if err := r.db.WithContext(ctx).Create(&invoiceModels).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "invoice number already exists")
		}

		return errors.Wrap(err, "failed to create invoices")
	}

	for i, invoiceModel := range invoiceModels {
		invoices[i].ID = invoiceModel.ID
		invoices[i].CreatedAt = invoiceModel.CreatedAt
		invoices[i].UpdatedAt = invoiceModel.UpdatedAt
	}

	return nil
}

func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	if err := r.db.WithContext(ctx).First(&invoiceModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find invoice by id")
	}

	return toInvoiceDomain(&invoiceModel), nil
}

func (r *invoiceRepository) FindByIssueDate(ctx context.Context, day time.Time) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("issue_date = ?", day.Format("2006-01-02")).
		Order("number asc").
		Find(&invoiceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find invoices by issue date")
	}

	invoices := make([]*entity.Invoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, toInvoiceDomain(&invoiceModels[i]))
	}

	return invoices, nil
}

func (r *invoiceRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("issue_date desc").
		Find(&invoiceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find invoices by customer")
	}

	invoices := make([]*entity.Invoice, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoices = append(invoices, toInvoiceDomain(&invoiceModels[i]))
	}

	return invoices, nil
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]any{
			"paid":         invoice.Paid,
			"collected_at": invoice.CollectedAt,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update invoice")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvoiceNotFound
	}

	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var assignments int64
	if err := r.db.WithContext(ctx).
		Model(&model.DispatchAssignmentModel{}).
		Where("invoice_id = ?", id).
		Count(&assignments).Error; err != nil {
		return errors.Wrap(err, "failed to count assignments of invoice")
	}
	if assignments > 0 {
		return repository.ErrInvoiceReferenced
	}

	result := r.db.WithContext(ctx).Delete(&model.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrInvoiceReferenced
		}

		return errors.Wrap(result.Error, "failed to delete invoice")
	}
	if result.RowsAffected == 0 {
		return repository.ErrInvoiceNotFound
	}

	return nil
}

func toInvoiceDomain(invoiceModel *model.InvoiceModel) *entity.Invoice {
	return &entity.Invoice{
		ID:          invoiceModel.ID,
		Number:      invoiceModel.Number,
		CustomerID:  invoiceModel.CustomerID,
		IssueDate:   invoiceModel.IssueDate,
		GrandTotal:  invoiceModel.GrandTotal,
		Paid:        invoiceModel.Paid,
		CollectedAt: invoiceModel.CollectedAt,
		CreatedAt:   invoiceModel.CreatedAt,
		UpdatedAt:   invoiceModel.UpdatedAt,
	}
}

func fromInvoiceDomain(invoice *entity.Invoice) *model.InvoiceModel {
	return &model.InvoiceModel{
		ID:          invoice.ID,
		Number:      invoice.Number,
		CustomerID:  invoice.CustomerID,
		IssueDate:   invoice.IssueDate,
		GrandTotal:  invoice.GrandTotal,
		Paid:        invoice.Paid,
		CollectedAt: invoice.CollectedAt,
		CreatedAt:   invoice.CreatedAt,
		UpdatedAt:   invoice.UpdatedAt,
	}
}
