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

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new instance of AssignmentRepository.
func NewAssignmentRepository(db *gorm.DB) repository.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.DispatchInvoiceAssignment) error {
	assignmentModel := fromAssignmentDomain(assignment)
	if err := r.db.WithContext(ctx).Create(assignmentModel).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return errors.Wrap(err, "invoice already assigned to a dispatch")
		}

		return errors.Wrap(err, "failed to create assignment")
	}
	assignment.ID = assignmentModel.ID
	assignment.CreatedAt = assignmentModel.CreatedAt
	assignment.UpdatedAt = assignmentModel.UpdatedAt

	return nil
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DispatchInvoiceAssignment, error) {
	var assignmentModel model.DispatchAssignmentModel
	if err := r.db.WithContext(ctx).First(&assignmentModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment by id")
	}

	return toAssignmentDomain(&assignmentModel), nil
}

// FindByDispatch stitches the invoice and customer of each assignment in Go
// rather than with SQL joins, keeping the models free of GORM associations.
func (r *assignmentRepository) FindByDispatch(ctx context.Context, dispatchID uuid.UUID) ([]*entity.DispatchInvoiceAssignment, error) {
	var assignmentModels []model.DispatchAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("dispatch_id = ?", dispatchID).
		Order("created_at asc").
		Find(&assignmentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find assignments by dispatch")
	}

	if len(assignmentModels) == 0 {
		return []*entity.DispatchInvoiceAssignment{}, nil
	}

	invoiceIDs := make([]uuid.UUID, 0, len(assignmentModels))
	for i := range assignmentModels {
		invoiceIDs = append(invoiceIDs, assignmentModels[i].InvoiceID)
	}

	var invoiceModels []model.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", invoiceIDs).
		Find(&invoiceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find invoices of assignments")
	}

	invoicesByID := make(map[uuid.UUID]*entity.Invoice, len(invoiceModels))
	customerIDs := make([]uuid.UUID, 0, len(invoiceModels))
	for i := range invoiceModels {
		invoice := toInvoiceDomain(&invoiceModels[i])
		invoicesByID[invoice.ID] = invoice
		customerIDs = append(customerIDs, invoice.CustomerID)
	}

	customersByID := make(map[uuid.UUID]*entity.Customer, len(customerIDs))
	if len(customerIDs) > 0 {
		var customerModels []model.CustomerModel
		if err := r.db.WithContext(ctx).
			Where("id IN ?", customerIDs).
			Find(&customerModels).Error; err != nil {
			return nil, errors.Wrap(err, "failed to find customers of assignments")
		}
		for i := range customerModels {
			customer := toCustomerDomain(&customerModels[i])
			customersByID[customer.ID] = customer
		}
	}

	assignments := make([]*entity.DispatchInvoiceAssignment, 0, len(assignmentModels))
	for i := range assignmentModels {
		assignment := toAssignmentDomain(&assignmentModels[i])
		if invoice, ok := invoicesByID[assignment.InvoiceID]; ok {
			assignment.Invoice = invoice
			assignment.Customer = customersByID[invoice.CustomerID]
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func (r *assignmentRepository) ListAssignedInvoiceIDs(ctx context.Context) ([]uuid.UUID, error) {
	var invoiceIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&model.DispatchAssignmentModel{}).
		Pluck("invoice_id", &invoiceIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list assigned invoice ids")
	}

	return invoiceIDs, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *entity.DispatchInvoiceAssignment) error {
	result := r.db.WithContext(ctx).
		Model(&model.DispatchAssignmentModel{}).
		Where("id = ?", assignment.ID).
		Updates(map[string]any{
			"payment_method": assignment.PaymentMethod,
			"amount_paid":    assignment.AmountPaid,
			"receipt_url":    assignment.ReceiptURL,
			"paid":           assignment.Paid,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update assignment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAssignmentNotFound
	}

	return nil
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.DispatchAssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete assignment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAssignmentNotFound
	}

	return nil
}

func toAssignmentDomain(assignmentModel *model.DispatchAssignmentModel) *entity.DispatchInvoiceAssignment {
	return &entity.DispatchInvoiceAssignment{
		ID:            assignmentModel.ID,
		DispatchID:    assignmentModel.DispatchID,
		InvoiceID:     assignmentModel.InvoiceID,
		PaymentMethod: entity.PaymentMethod(assignmentModel.PaymentMethod),
		AmountPaid:    assignmentModel.AmountPaid,
		ReceiptURL:    assignmentModel.ReceiptURL,
		Paid:          assignmentModel.Paid,
		CreatedAt:     assignmentModel.CreatedAt,
		UpdatedAt:     assignmentModel.UpdatedAt,
	}
}

func fromAssignmentDomain(assignment *entity.DispatchInvoiceAssignment) *model.DispatchAssignmentModel {
	return &model.DispatchAssignmentModel{
		ID:            assignment.ID,
		DispatchID:    assignment.DispatchID,
		InvoiceID:     assignment.InvoiceID,
		PaymentMethod: string(assignment.PaymentMethod),
		AmountPaid:    assignment.AmountPaid,
		ReceiptURL:    assignment.ReceiptURL,
		Paid:          assignment.Paid,
		CreatedAt:     assignment.CreatedAt,
		UpdatedAt:     assignment.UpdatedAt,
	}
}
