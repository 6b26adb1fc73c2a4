package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	"rutero/internal/domain/service"
	mockRepo "rutero/internal/mocks/repository"
	mockSvc "rutero/internal/mocks/service"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// invoiceServiceFixtures holds all test dependencies for invoice service tests.
type invoiceServiceFixtures struct {
	service      usecase.InvoiceUsecase
	invoiceRepo  *mockRepo.MockInvoiceRepository
	customerRepo *mockRepo.MockCustomerRepository
	importer     *mockSvc.MockInvoiceImporter
}

func createTestInvoiceService(t *testing.T) invoiceServiceFixtures {
	invoiceRepo := mockRepo.NewMockInvoiceRepository(t)
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	importer := mockSvc.NewMockInvoiceImporter(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewInvoiceService(InvoiceServiceParams{
		InvoiceRepo:  invoiceRepo,
		CustomerRepo: customerRepo,
		Importer:     importer,
		Logger:       logger,
	})

	return invoiceServiceFixtures{
		service:      service,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		importer:     importer,
	}
}

func TestInvoiceService_CreateInvoice_Success(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	customerID := uuid.New()
	input := &usecase.CreateInvoiceInput{
		Number:     "F001-000123",
		CustomerID: customerID.String(),
		IssueDate:  time.Date(2026, 8, 20, 16, 42, 0, 0, time.UTC),
		GrandTotal: decimal.RequireFromString("125.50"),
	}

	fx.customerRepo.On("FindByID", ctx, customerID).Return(&entity.Customer{ID: customerID}, nil)
	fx.invoiceRepo.On("Create", ctx, mock.AnythingOfType("*entity.Invoice")).Return(nil)

	invoice, err := fx.service.CreateInvoice(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "F001-000123", invoice.Number)
	assert.Equal(t, customerID, invoice.CustomerID)
	assert.Equal(t, testDay(), invoice.IssueDate, "issue date must be truncated to the calendar day")
	assert.True(t, invoice.GrandTotal.Equal(decimal.RequireFromString("125.50")))
}

func TestInvoiceService_CreateInvoice_CustomerNotFound(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	customerID := uuid.New()
	input := &usecase.CreateInvoiceInput{
		Number:     "F001-000123",
		CustomerID: customerID.String(),
		IssueDate:  testDay(),
	}

	fx.customerRepo.On("FindByID", ctx, customerID).Return(nil, repository.ErrCustomerNotFound)

	invoice, err := fx.service.CreateInvoice(ctx, input)

	assert.Nil(t, invoice)
	require.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
}

func TestInvoiceService_UpdateInvoicePayment_Success(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	invoice := &entity.Invoice{ID: uuid.New(), Number: "F001-000123"}
	collectedAt := time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC)

	fx.invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
	fx.invoiceRepo.On("Update", ctx, invoice).Return(nil)

	paid := true
	updated, err := fx.service.UpdateInvoicePayment(ctx, invoice.ID, &usecase.UpdateInvoicePaymentInput{
		Paid:        &paid,
		CollectedAt: &collectedAt,
	})

	require.NoError(t, err)
	assert.True(t, updated.Paid)
	require.NotNil(t, updated.CollectedAt)
	assert.True(t, updated.CollectedAt.Equal(collectedAt))
}

func TestInvoiceService_DeleteInvoice_StillAssigned(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	invoiceID := uuid.New()

	fx.invoiceRepo.On("Delete", ctx, invoiceID).Return(repository.ErrInvoiceReferenced)

	err := fx.service.DeleteInvoice(ctx, invoiceID)

	require.ErrorIs(t, err, domainerrors.ErrInvoiceInUse)
}

func TestInvoiceService_ImportWorkbook_SkipsUnknownCustomers(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	workbook := strings.NewReader("xlsx bytes")
	customer := &entity.Customer{ID: uuid.New(), Name: "Tienda La Fe"}

	rows := []*service.ImportedInvoiceRow{
		{Row: 2, Number: "F001-000200", CustomerName: "  TIENDA LA FE ", IssueDate: testDay(), GrandTotal: decimal.RequireFromString("45.90")},
		{Row: 3, Number: "F001-000201", CustomerName: "Abarrotes El Sol", IssueDate: testDay(), GrandTotal: decimal.RequireFromString("12.00")},
	}
	rowErrors := []string{`fila 4: monto inválido "abc"`}

	fx.importer.On("Parse", workbook).Return(rows, rowErrors, nil)
	fx.customerRepo.On("FindAll", ctx).Return([]*entity.Customer{customer}, nil)
	fx.invoiceRepo.On("CreateBatch", ctx, mock.MatchedBy(func(invoices []*entity.Invoice) bool {
		return len(invoices) == 1 &&
			invoices[0].Number == "F001-000200" &&
			invoices[0].CustomerID == customer.ID
	})).Return(nil)

	summary, err := fx.service.ImportWorkbook(ctx, workbook)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 2, summary.Skipped)
	require.Len(t, summary.Errors, 2)
	assert.Contains(t, summary.Errors[1], "cliente desconocido")
}

func TestInvoiceService_ImportWorkbook_NothingToImport(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	workbook := strings.NewReader("xlsx bytes")

	fx.importer.On("Parse", workbook).Return([]*service.ImportedInvoiceRow{}, nil, nil)
	fx.customerRepo.On("FindAll", ctx).Return([]*entity.Customer{}, nil)

	summary, err := fx.service.ImportWorkbook(ctx, workbook)

	require.NoError(t, err)
	assert.Zero(t, summary.Imported)
	assert.Zero(t, summary.Skipped)
	fx.invoiceRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestInvoiceService_ImportWorkbook_ParseFailure(t *testing.T) {
	fx := createTestInvoiceService(t)

	workbook := strings.NewReader("not a workbook")

	fx.importer.On("Parse", workbook).Return(nil, nil, errors.New("zip: not a valid zip file"))

	summary, err := fx.service.ImportWorkbook(context.Background(), workbook)

	assert.Nil(t, summary)
	require.ErrorIs(t, err, domainerrors.ErrImportFailed)
}

func TestInvoiceService_ListInvoicesByIssueDate_TruncatesDay(t *testing.T) {
	fx := createTestInvoiceService(t)

	ctx := context.Background()
	invoices := []*entity.Invoice{{ID: uuid.New(), IssueDate: testDay()}}

	fx.invoiceRepo.On("FindByIssueDate", ctx, testDay()).Return(invoices, nil)

	got, err := fx.service.ListInvoicesByIssueDate(ctx, time.Date(2026, 8, 20, 23, 59, 59, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, invoices, got)
}
