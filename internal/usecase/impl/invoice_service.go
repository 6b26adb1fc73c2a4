package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	deliverycontext "rutero/internal/delivery/context"
	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	"rutero/internal/domain/service"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type invoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	importer     service.InvoiceImporter
	logger       *slog.Logger
}

// InvoiceServiceParams holds dependencies for InvoiceService, injected by Fx.
type InvoiceServiceParams struct {
	fx.In

	InvoiceRepo  repository.InvoiceRepository
	CustomerRepo repository.CustomerRepository
	Importer     service.InvoiceImporter
	Logger       *slog.Logger
}

// NewInvoiceService creates a new invoice service instance
func NewInvoiceService(params InvoiceServiceParams) usecase.InvoiceUsecase {
	return &invoiceService{
		invoiceRepo:  params.InvoiceRepo,
		customerRepo: params.CustomerRepo,
		importer:     params.Importer,
		logger:       params.Logger,
	}
}

func (s *invoiceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// CreateInvoice registers a single invoice
func (s *invoiceService) CreateInvoice(ctx context.Context, input *usecase.CreateInvoiceInput) (*entity.Invoice, error) {
	customerID, err := uuid.Parse(input.CustomerID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("customer_id is not a valid UUID")
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	invoice := &entity.Invoice{
		ID:         uuid.New(),
		Number:     input.Number,
		CustomerID: customerID,
		IssueDate:  truncateToDay(input.IssueDate),
		GrandTotal: input.GrandTotal,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, errors.Wrap(err, "failed to create invoice")
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *invoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, domainerrors.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find invoice by id")
	}

	return invoice, nil
}

// ListInvoicesByIssueDate retrieves the invoices issued on a calendar day
func (s *invoiceService) ListInvoicesByIssueDate(ctx context.Context, day time.Time) ([]*entity.Invoice, error) {
	invoices, err := s.invoiceRepo.FindByIssueDate(ctx, truncateToDay(day))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices by issue date")
	}

	return invoices, nil
}

// ListInvoicesByCustomer retrieves every invoice of a customer
func (s *invoiceService) ListInvoicesByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Invoice, error) {
	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices by customer")
	}

	return invoices, nil
}

// UpdateInvoicePayment updates the mutable payment fields of an invoice
func (s *invoiceService) UpdateInvoicePayment(ctx context.Context, id uuid.UUID, input *usecase.UpdateInvoicePaymentInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			return nil, domainerrors.ErrInvoiceNotFound
		}

		return nil, errors.Wrap(err, "failed to find invoice by id")
	}

	if input.Paid != nil {
		invoice.Paid = *input.Paid
	}
	if input.CollectedAt != nil {
		invoice.CollectedAt = input.CollectedAt
	}
	invoice.UpdatedAt = time.Now()

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, errors.Wrap(err, "failed to update invoice")
	}

	return invoice, nil
}

// DeleteInvoice removes an invoice unless a dispatch assignment still references it
func (s *invoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrInvoiceNotFound):
			return domainerrors.ErrInvoiceNotFound
		case errors.Is(err, repository.ErrInvoiceReferenced):
			return domainerrors.ErrInvoiceInUse
		default:
			return errors.Wrap(err, "failed to delete invoice")
		}
	}

	return nil
}

// ImportWorkbook reads an Excel billing export and registers its invoices.
// Customers are matched by name; rows whose customer cannot be resolved are
// skipped and reported, they never abort the rows that succeeded.
func (s *invoiceService) ImportWorkbook(ctx context.Context, workbook io.Reader) (*usecase.ImportSummary, error) {
	rows, rowErrors, err := s.importer.Parse(workbook)
	if err != nil {
		return nil, domainerrors.ErrImportFailed.WrapMessage(err.Error())
	}

	customersByName, err := s.customersByName(ctx)
	if err != nil {
		return nil, err
	}

	summary := &usecase.ImportSummary{Errors: rowErrors}
	summary.Skipped = len(rowErrors)

	invoices := make([]*entity.Invoice, 0, len(rows))
	for _, row := range rows {
		customer, ok := customersByName[normalizeCustomerName(row.CustomerName)]
		if !ok {
			summary.Skipped++
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("fila %d: cliente desconocido %q", row.Row, row.CustomerName))

			continue
		}

		invoices = append(invoices, &entity.Invoice{
			ID:         uuid.New(),
			Number:     row.Number,
			CustomerID: customer.ID,
			IssueDate:  truncateToDay(row.IssueDate),
			GrandTotal: row.GrandTotal,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		})
	}

	if len(invoices) > 0 {
		if err := s.invoiceRepo.CreateBatch(ctx, invoices); err != nil {
			return nil, errors.Wrap(err, "failed to create imported invoices")
		}
	}
	summary.Imported = len(invoices)

	s.log(ctx).Info("Workbook imported",
		slog.Int("imported", summary.Imported),
		slog.Int("skipped", summary.Skipped))

	return summary, nil
}

// customersByName indexes every customer by normalized name for import matching
func (s *invoiceService) customersByName(ctx context.Context) (map[string]*entity.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers for import")
	}

	index := make(map[string]*entity.Customer, len(customers))
	for _, customer := range customers {
		index[normalizeCustomerName(customer.Name)] = customer
	}

	return index, nil
}

func normalizeCustomerName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// truncateToDay zeroes the time component; issue dates compare by calendar day.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
