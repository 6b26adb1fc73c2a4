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

const squareFence = "POLYGON((0 0, 10 0, 10 10, 0 10, 0 0))"

// dispatchServiceFixtures holds all test dependencies for dispatch service tests.
type dispatchServiceFixtures struct {
	service        usecase.DispatchUsecase
	txManager      *mockRepo.MockTransactionManager
	txDispatches   *mockRepo.MockDispatchRepository
	txAssignments  *mockRepo.MockAssignmentRepository
	dispatchRepo   *mockRepo.MockDispatchRepository
	assignmentRepo *mockRepo.MockAssignmentRepository
	invoiceRepo    *mockRepo.MockInvoiceRepository
	customerRepo   *mockRepo.MockCustomerRepository
	routeRepo      *mockRepo.MockRouteRepository
	receiptStorage *mockSvc.MockReceiptStorage
	qrcodeService  *mockSvc.MockQRCodeService
}

func createTestDispatchService(t *testing.T) dispatchServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	txDispatches := mockRepo.NewMockDispatchRepository(t)
	txAssignments := mockRepo.NewMockAssignmentRepository(t)
	txManager.Factory = &mockRepo.MockRepositoryFactory{
		DispatchRepo:   txDispatches,
		AssignmentRepo: txAssignments,
		InvoiceRepo:    mockRepo.NewMockInvoiceRepository(t),
	}

	dispatchRepo := mockRepo.NewMockDispatchRepository(t)
	assignmentRepo := mockRepo.NewMockAssignmentRepository(t)
	invoiceRepo := mockRepo.NewMockInvoiceRepository(t)
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	routeRepo := mockRepo.NewMockRouteRepository(t)
	receiptStorage := mockSvc.NewMockReceiptStorage(t)
	qrcodeService := mockSvc.NewMockQRCodeService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewDispatchService(DispatchServiceParams{
		TxManager:      txManager,
		DispatchRepo:   dispatchRepo,
		AssignmentRepo: assignmentRepo,
		InvoiceRepo:    invoiceRepo,
		CustomerRepo:   customerRepo,
		RouteRepo:      routeRepo,
		ReceiptStorage: receiptStorage,
		QRCodeService:  qrcodeService,
		Logger:         logger,
	})

	return dispatchServiceFixtures{
		service:        service,
		txManager:      txManager,
		txDispatches:   txDispatches,
		txAssignments:  txAssignments,
		dispatchRepo:   dispatchRepo,
		assignmentRepo: assignmentRepo,
		invoiceRepo:    invoiceRepo,
		customerRepo:   customerRepo,
		routeRepo:      routeRepo,
		receiptStorage: receiptStorage,
		qrcodeService:  qrcodeService,
	}
}

func testDay() time.Time {
	return time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
}

func testDispatch(routeID uuid.UUID) *entity.Dispatch {
	return &entity.Dispatch{
		ID:          uuid.New(),
		RouteID:     routeID,
		DriverID:    uuid.New(),
		HelperID:    uuid.New(),
		Date:        testDay(),
		CashTotal:   decimal.Zero,
		CreditTotal: decimal.Zero,
		GrandTotal:  decimal.Zero,
	}
}

func testInvoice(customerID uuid.UUID, total string) *entity.Invoice {
	return &entity.Invoice{
		ID:         uuid.New(),
		Number:     "F-" + uuid.NewString()[:8],
		CustomerID: customerID,
		IssueDate:  testDay(),
		GrandTotal: decimal.RequireFromString(total),
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestDispatchService_CreateDispatch_Success(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateDispatchInput{
		RouteID:  routeID.String(),
		DriverID: uuid.NewString(),
		HelperID: uuid.NewString(),
		Date:     time.Date(2026, 8, 20, 14, 35, 12, 0, time.UTC),
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(&entity.Route{ID: routeID}, nil)
	fx.dispatchRepo.On("Create", ctx, mock.AnythingOfType("*entity.Dispatch")).Return(nil)

	dispatch, err := fx.service.CreateDispatch(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, routeID, dispatch.RouteID)
	assert.Equal(t, testDay(), dispatch.Date, "date must be truncated to the calendar day")
	assert.True(t, dispatch.CashTotal.IsZero())
	assert.True(t, dispatch.CreditTotal.IsZero())
	assert.True(t, dispatch.GrandTotal.IsZero())
}

func TestDispatchService_CreateDispatch_InvalidRouteID(t *testing.T) {
	fx := createTestDispatchService(t)

	input := &usecase.CreateDispatchInput{
		RouteID:  "not-a-uuid",
		DriverID: uuid.NewString(),
		HelperID: uuid.NewString(),
		Date:     testDay(),
	}

	dispatch, err := fx.service.CreateDispatch(context.Background(), input)

	assert.Nil(t, dispatch)
	assertAppErrorCode(t, err, "VALIDATION_FAILED")
}

func TestDispatchService_CreateDispatch_RouteNotFound(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	routeID := uuid.New()
	input := &usecase.CreateDispatchInput{
		RouteID:  routeID.String(),
		DriverID: uuid.NewString(),
		HelperID: uuid.NewString(),
		Date:     testDay(),
	}

	fx.routeRepo.On("FindByID", ctx, routeID).Return(nil, repository.ErrRouteNotFound)

	dispatch, err := fx.service.CreateDispatch(ctx, input)

	assert.Nil(t, dispatch)
	require.ErrorIs(t, err, domainerrors.ErrRouteNotFound)
}

func TestDispatchService_EligibleInvoices_GeofenceFilter(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New(), Geofence: squareFence}
	dispatch := testDispatch(route.ID)

	insideCustomer := &entity.Customer{
		ID: uuid.New(), RouteID: route.ID, Geofence: squareFence,
		Latitude: floatPtr(5), Longitude: floatPtr(5),
	}
	outsideCustomer := &entity.Customer{
		ID: uuid.New(), RouteID: route.ID, Geofence: squareFence,
		Latitude: floatPtr(15), Longitude: floatPtr(15),
	}
	routeFenceCustomer := &entity.Customer{
		ID: uuid.New(), RouteID: route.ID,
		Latitude: floatPtr(2), Longitude: floatPtr(2),
	}
	noLocationCustomer := &entity.Customer{
		ID: uuid.New(), RouteID: route.ID, Geofence: squareFence,
	}

	insideInvoice := testInvoice(insideCustomer.ID, "100")
	outsideInvoice := testInvoice(outsideCustomer.ID, "200")
	routeFenceInvoice := testInvoice(routeFenceCustomer.ID, "300")
	noLocationInvoice := testInvoice(noLocationCustomer.ID, "400")
	assignedInvoice := testInvoice(insideCustomer.ID, "500")

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.invoiceRepo.On("FindByIssueDate", ctx, dispatch.Date).Return([]*entity.Invoice{
		insideInvoice, outsideInvoice, routeFenceInvoice, noLocationInvoice, assignedInvoice,
	}, nil)
	fx.assignmentRepo.On("ListAssignedInvoiceIDs", ctx).Return([]uuid.UUID{assignedInvoice.ID}, nil)
	fx.customerRepo.On("FindByID", ctx, insideCustomer.ID).Return(insideCustomer, nil)
	fx.customerRepo.On("FindByID", ctx, outsideCustomer.ID).Return(outsideCustomer, nil)
	fx.customerRepo.On("FindByID", ctx, routeFenceCustomer.ID).Return(routeFenceCustomer, nil)
	fx.customerRepo.On("FindByID", ctx, noLocationCustomer.ID).Return(noLocationCustomer, nil)

	eligible, err := fx.service.EligibleInvoices(ctx, dispatch.ID, nil)

	require.NoError(t, err)
	require.Len(t, eligible, 2)
	assert.Equal(t, insideInvoice.ID, eligible[0].ID)
	assert.Equal(t, routeFenceInvoice.ID, eligible[1].ID, "customer without own fence inherits the route fence")
}

func TestDispatchService_EligibleInvoices_EditingKeepsAssignedInvoice(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New()}
	dispatch := testDispatch(route.ID)
	customer := &entity.Customer{ID: uuid.New(), RouteID: route.ID}
	invoice := testInvoice(customer.ID, "100")

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.invoiceRepo.On("FindByIssueDate", ctx, dispatch.Date).Return([]*entity.Invoice{invoice}, nil)
	fx.assignmentRepo.On("ListAssignedInvoiceIDs", ctx).Return([]uuid.UUID{invoice.ID}, nil)
	fx.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	eligible, err := fx.service.EligibleInvoices(ctx, dispatch.ID, &invoice.ID)

	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, invoice.ID, eligible[0].ID)
}

func TestDispatchService_EligibleInvoices_UnparseableFenceDoesNotGate(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New()}
	dispatch := testDispatch(route.ID)
	customer := &entity.Customer{ID: uuid.New(), RouteID: route.ID, Geofence: "POLYGON((broken"}
	invoice := testInvoice(customer.ID, "100")

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.invoiceRepo.On("FindByIssueDate", ctx, dispatch.Date).Return([]*entity.Invoice{invoice}, nil)
	fx.assignmentRepo.On("ListAssignedInvoiceIDs", ctx).Return([]uuid.UUID{}, nil)
	fx.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)

	eligible, err := fx.service.EligibleInvoices(ctx, dispatch.ID, nil)

	require.NoError(t, err)
	require.Len(t, eligible, 1)
}

func TestDispatchService_AssignInvoice_Success(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New()}
	dispatch := testDispatch(route.ID)

	cashCustomer := &entity.Customer{ID: uuid.New(), RouteID: route.ID, TaxClass: entity.TaxClassFinalConsumer}
	creditCustomer := &entity.Customer{ID: uuid.New(), RouteID: route.ID, TaxClass: entity.TaxClassFiscalCredit}
	invoice := testInvoice(cashCustomer.ID, "150.25")
	creditInvoice := testInvoice(creditCustomer.ID, "49.75")

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.invoiceRepo.On("FindByIssueDate", ctx, dispatch.Date).Return([]*entity.Invoice{invoice}, nil)
	fx.assignmentRepo.On("ListAssignedInvoiceIDs", ctx).Return([]uuid.UUID{}, nil)
	fx.customerRepo.On("FindByID", ctx, cashCustomer.ID).Return(cashCustomer, nil)

	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	fx.txAssignments.On("Create", ctx, mock.AnythingOfType("*entity.DispatchInvoiceAssignment")).Return(nil)
	fx.txAssignments.On("FindByDispatch", ctx, dispatch.ID).Return([]*entity.DispatchInvoiceAssignment{
		{DispatchID: dispatch.ID, InvoiceID: invoice.ID, Invoice: invoice, Customer: cashCustomer},
		{DispatchID: dispatch.ID, InvoiceID: creditInvoice.ID, Invoice: creditInvoice, Customer: creditCustomer},
	}, nil)
	fx.txDispatches.On("UpdateTotals", ctx, dispatch.ID, mock.MatchedBy(func(totals repository.DispatchTotals) bool {
		return totals.Cash.Equal(decimal.RequireFromString("150.25")) &&
			totals.Credit.Equal(decimal.RequireFromString("49.75")) &&
			totals.Grand.Equal(decimal.RequireFromString("200"))
	})).Return(nil)

	assignment, err := fx.service.AssignInvoice(ctx, dispatch.ID, &usecase.AssignInvoiceInput{
		InvoiceID:     invoice.ID.String(),
		PaymentMethod: "cash",
		AmountPaid:    decimal.RequireFromString("150.25"),
		Paid:          true,
	})

	require.NoError(t, err)
	assert.Equal(t, dispatch.ID, assignment.DispatchID)
	assert.Equal(t, invoice.ID, assignment.InvoiceID)
	assert.Equal(t, entity.PaymentCash, assignment.PaymentMethod)
	assert.True(t, assignment.Paid)
}

func TestDispatchService_AssignInvoice_NotEligible(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New()}
	dispatch := testDispatch(route.ID)

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.invoiceRepo.On("FindByIssueDate", ctx, dispatch.Date).Return([]*entity.Invoice{}, nil)
	fx.assignmentRepo.On("ListAssignedInvoiceIDs", ctx).Return([]uuid.UUID{}, nil)

	assignment, err := fx.service.AssignInvoice(ctx, dispatch.ID, &usecase.AssignInvoiceInput{
		InvoiceID:     uuid.NewString(),
		PaymentMethod: "cash",
	})

	assert.Nil(t, assignment)
	require.ErrorIs(t, err, domainerrors.ErrInvoiceNotEligible)
}

func TestDispatchService_AssignInvoice_UnknownPaymentMethod(t *testing.T) {
	fx := createTestDispatchService(t)

	assignment, err := fx.service.AssignInvoice(context.Background(), uuid.New(), &usecase.AssignInvoiceInput{
		InvoiceID:     uuid.NewString(),
		PaymentMethod: "cheque",
	})

	assert.Nil(t, assignment)
	assertAppErrorCode(t, err, "VALIDATION_FAILED")
}

func TestDispatchService_AssignInvoice_TransactionFailure(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	route := &entity.Route{ID: uuid.New()}
	dispatch := testDispatch(route.ID)
	customer := &entity.Customer{ID: uuid.New(), RouteID: route.ID, TaxClass: entity.TaxClassFinalConsumer}
	invoice := testInvoice(customer.ID, "100")

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.routeRepo.On("FindByID", ctx, route.ID).Return(route, nil)
	fx.invoiceRepo.On("FindByIssueDate", ctx, dispatch.Date).Return([]*entity.Invoice{invoice}, nil)
	fx.assignmentRepo.On("ListAssignedInvoiceIDs", ctx).Return([]uuid.UUID{}, nil)
	fx.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(errors.New("deadlock detected"))

	assignment, err := fx.service.AssignInvoice(ctx, dispatch.ID, &usecase.AssignInvoiceInput{
		InvoiceID:     invoice.ID.String(),
		PaymentMethod: "cash",
	})

	assert.Nil(t, assignment)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute assignment transaction")
}

func TestDispatchService_UpdateAssignment_ReceiptUploadFailureAborts(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	assignment := &entity.DispatchInvoiceAssignment{
		ID:         uuid.New(),
		DispatchID: uuid.New(),
		InvoiceID:  uuid.New(),
	}

	fx.assignmentRepo.On("FindByID", ctx, assignment.ID).Return(assignment, nil)
	fx.receiptStorage.On("Upload", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
		Return("", errors.New("bucket unavailable"))

	paid := true
	updated, err := fx.service.UpdateAssignment(ctx, assignment.ID, &usecase.UpdateAssignmentInput{
		Paid: &paid,
		Receipt: &usecase.ReceiptUpload{
			Filename:    "recibo.jpg",
			ContentType: "image/jpeg",
			Body:        strings.NewReader("jpeg bytes"),
		},
	})

	assert.Nil(t, updated)
	require.ErrorIs(t, err, domainerrors.ErrReceiptUploadFailed)
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestDispatchService_UpdateAssignment_WithReceipt(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	customer := &entity.Customer{ID: uuid.New(), TaxClass: entity.TaxClassFinalConsumer}
	invoice := testInvoice(customer.ID, "80")
	assignment := &entity.DispatchInvoiceAssignment{
		ID:            uuid.New(),
		DispatchID:    uuid.New(),
		InvoiceID:     invoice.ID,
		PaymentMethod: entity.PaymentCash,
	}
	expectedKey := "receipts/" + assignment.DispatchID.String() + "/" + assignment.ID.String() + ".png"

	fx.assignmentRepo.On("FindByID", ctx, assignment.ID).Return(assignment, nil)
	fx.receiptStorage.On("Upload", ctx, expectedKey, "image/png", mock.Anything).
		Return("https://cdn.example.com/"+expectedKey, nil)
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	fx.txAssignments.On("Update", ctx, assignment).Return(nil)
	fx.txAssignments.On("FindByDispatch", ctx, assignment.DispatchID).Return([]*entity.DispatchInvoiceAssignment{
		{DispatchID: assignment.DispatchID, InvoiceID: invoice.ID, Invoice: invoice, Customer: customer},
	}, nil)
	fx.txDispatches.On("UpdateTotals", ctx, assignment.DispatchID, mock.MatchedBy(func(totals repository.DispatchTotals) bool {
		return totals.Cash.Equal(decimal.RequireFromString("80")) && totals.Grand.Equal(decimal.RequireFromString("80"))
	})).Return(nil)

	method := "transfer"
	updated, err := fx.service.UpdateAssignment(ctx, assignment.ID, &usecase.UpdateAssignmentInput{
		PaymentMethod: &method,
		Receipt: &usecase.ReceiptUpload{
			Filename:    "recibo.png",
			ContentType: "image/png",
			Body:        strings.NewReader("png bytes"),
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+expectedKey, updated.ReceiptURL)
	assert.Equal(t, entity.PaymentTransfer, updated.PaymentMethod)
}

func TestDispatchService_UnassignInvoice_RecomputesTotals(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	assignment := &entity.DispatchInvoiceAssignment{
		ID:         uuid.New(),
		DispatchID: uuid.New(),
		InvoiceID:  uuid.New(),
	}

	fx.assignmentRepo.On("FindByID", ctx, assignment.ID).Return(assignment, nil)
	fx.txManager.On("Execute", ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).Return(nil)
	fx.txAssignments.On("Delete", ctx, assignment.ID).Return(nil)
	fx.txAssignments.On("FindByDispatch", ctx, assignment.DispatchID).Return([]*entity.DispatchInvoiceAssignment{}, nil)
	fx.txDispatches.On("UpdateTotals", ctx, assignment.DispatchID, mock.MatchedBy(func(totals repository.DispatchTotals) bool {
		return totals.Cash.IsZero() && totals.Credit.IsZero() && totals.Grand.IsZero()
	})).Return(nil)

	err := fx.service.UnassignInvoice(ctx, assignment.ID)

	require.NoError(t, err)
}

func TestDispatchService_UnassignInvoice_NotFound(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	assignmentID := uuid.New()

	fx.assignmentRepo.On("FindByID", ctx, assignmentID).Return(nil, repository.ErrAssignmentNotFound)

	err := fx.service.UnassignInvoice(ctx, assignmentID)

	require.ErrorIs(t, err, domainerrors.ErrAssignmentNotFound)
}

func TestDispatchService_SetStage_RoleGating(t *testing.T) {
	tests := []struct {
		name    string
		stage   entity.DispatchStage
		roles   entity.Roles
		allowed bool
	}{
		{"warehouse sets warehouse", entity.StageWarehouse, entity.Roles{entity.RoleWarehouse}, true},
		{"driver sets delivery", entity.StageDelivery, entity.Roles{entity.RoleDriver}, true},
		{"driver cannot set billing", entity.StageBilling, entity.Roles{entity.RoleDriver}, false},
		{"billing cannot set collections", entity.StageCollections, entity.Roles{entity.RoleBilling}, false},
		{"dispatcher sets admin assistant", entity.StageAdminAssistant, entity.Roles{entity.RoleDispatcher}, true},
		{"admin sets any stage", entity.StageAdminManager, entity.Roles{entity.RoleAdmin}, true},
		{"no roles", entity.StageWarehouse, entity.Roles{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestDispatchService(t)

			ctx := context.Background()
			dispatch := testDispatch(uuid.New())

			if tt.allowed {
				fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
				fx.dispatchRepo.On("Update", ctx, dispatch).Return(nil)
			}

			updated, err := fx.service.SetStage(ctx, dispatch.ID, tt.stage, true, tt.roles)

			if tt.allowed {
				require.NoError(t, err)
				assert.NotNil(t, updated)

				return
			}

			assert.Nil(t, updated)
			require.ErrorIs(t, err, domainerrors.ErrStageNotAllowed)
		})
	}
}

func TestDispatchService_SetStage_FlipsCheckpoint(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	dispatch := testDispatch(uuid.New())

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.dispatchRepo.On("Update", ctx, dispatch).Return(nil)

	updated, err := fx.service.SetStage(ctx, dispatch.ID, entity.StageDelivery, true, entity.Roles{entity.RoleDriver})

	require.NoError(t, err)
	assert.True(t, updated.DeliveryDone)
	assert.False(t, updated.WarehouseDone)
}

func TestDispatchService_SetStage_UnknownStage(t *testing.T) {
	fx := createTestDispatchService(t)

	updated, err := fx.service.SetStage(context.Background(), uuid.New(), "packing", true, entity.Roles{entity.RoleAdmin})

	assert.Nil(t, updated)
	assertAppErrorCode(t, err, "VALIDATION_FAILED")
}

func TestDispatchService_GenerateDispatchQR_Success(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	dispatch := testDispatch(uuid.New())
	png := []byte{0x89, 'P', 'N', 'G'}

	fx.dispatchRepo.On("FindByID", ctx, dispatch.ID).Return(dispatch, nil)
	fx.qrcodeService.On("GenerateDispatchQR", dispatch.ID).Return(png, nil)

	got, err := fx.service.GenerateDispatchQR(ctx, dispatch.ID)

	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestDispatchService_GenerateDispatchQR_DispatchNotFound(t *testing.T) {
	fx := createTestDispatchService(t)

	ctx := context.Background()
	dispatchID := uuid.New()

	fx.dispatchRepo.On("FindByID", ctx, dispatchID).Return(nil, repository.ErrDispatchNotFound)

	got, err := fx.service.GenerateDispatchQR(ctx, dispatchID)

	assert.Nil(t, got)
	require.ErrorIs(t, err, domainerrors.ErrDispatchNotFound)
}
