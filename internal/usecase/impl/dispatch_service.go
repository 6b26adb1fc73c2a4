package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	deliverycontext "rutero/internal/delivery/context"
	"rutero/internal/domain/entity"
	domainerrors "rutero/internal/domain/errors"
	"rutero/internal/domain/repository"
	"rutero/internal/domain/service"
	"rutero/internal/geo"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type dispatchService struct {
	txManager      repository.TransactionManager
	dispatchRepo   repository.DispatchRepository
	assignmentRepo repository.AssignmentRepository
	invoiceRepo    repository.InvoiceRepository
	customerRepo   repository.CustomerRepository
	routeRepo      repository.RouteRepository
	receiptStorage service.ReceiptStorage
	qrcodeService  service.QRCodeService
	logger         *slog.Logger
}

// DispatchServiceParams holds dependencies for DispatchService, injected by Fx.
type DispatchServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	DispatchRepo   repository.DispatchRepository
	AssignmentRepo repository.AssignmentRepository
	InvoiceRepo    repository.InvoiceRepository
	CustomerRepo   repository.CustomerRepository
	RouteRepo      repository.RouteRepository
	ReceiptStorage service.ReceiptStorage
	QRCodeService  service.QRCodeService
	Logger         *slog.Logger
}

// NewDispatchService creates a new dispatch service instance
func NewDispatchService(params DispatchServiceParams) usecase.DispatchUsecase {
	return &dispatchService{
		txManager:      params.TxManager,
		dispatchRepo:   params.DispatchRepo,
		assignmentRepo: params.AssignmentRepo,
		invoiceRepo:    params.InvoiceRepo,
		customerRepo:   params.CustomerRepo,
		routeRepo:      params.RouteRepo,
		receiptStorage: params.ReceiptStorage,
		qrcodeService:  params.QRCodeService,
		logger:         params.Logger,
	}
}

func (s *dispatchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// CreateDispatch registers a new dispatch run
func (s *dispatchService) CreateDispatch(ctx context.Context, input *usecase.CreateDispatchInput) (*entity.Dispatch, error) {
	routeID, err := uuid.Parse(input.RouteID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("route_id is not a valid UUID")
	}
	driverID, err := uuid.Parse(input.DriverID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("driver_id is not a valid UUID")
	}
	helperID, err := uuid.Parse(input.HelperID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("helper_id is not a valid UUID")
	}

	if _, err := s.routeRepo.FindByID(ctx, routeID); err != nil {
		if errors.Is(err, repository.ErrRouteNotFound) {
			return nil, domainerrors.ErrRouteNotFound
		}

		return nil, errors.Wrap(err, "failed to find route by id")
	}

	dispatch := &entity.Dispatch{
		ID:          uuid.New(),
		RouteID:     routeID,
		DriverID:    driverID,
		HelperID:    helperID,
		Date:        truncateToDay(input.Date),
		CashTotal:   decimal.Zero,
		CreditTotal: decimal.Zero,
		GrandTotal:  decimal.Zero,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.dispatchRepo.Create(ctx, dispatch); err != nil {
		return nil, errors.Wrap(err, "failed to create dispatch")
	}

	s.log(ctx).Debug("Dispatch created", slog.Any("dispatchID", dispatch.ID))

	return dispatch, nil
}

// GetDispatch retrieves a dispatch by ID
func (s *dispatchService) GetDispatch(ctx context.Context, id uuid.UUID) (*entity.Dispatch, error) {
	dispatch, err := s.dispatchRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDispatchNotFound) {
			return nil, domainerrors.ErrDispatchNotFound
		}

		return nil, errors.Wrap(err, "failed to find dispatch by id")
	}

	return dispatch, nil
}

// ListDispatches retrieves every dispatch, newest first
func (s *dispatchService) ListDispatches(ctx context.Context) ([]*entity.Dispatch, error) {
	dispatches, err := s.dispatchRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list dispatches")
	}

	return dispatches, nil
}

// UpdateDispatch applies a partial update to a dispatch run
func (s *dispatchService) UpdateDispatch(ctx context.Context, id uuid.UUID, input *usecase.UpdateDispatchInput) (*entity.Dispatch, error) {
	dispatch, err := s.dispatchRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDispatchNotFound) {
			return nil, domainerrors.ErrDispatchNotFound
		}

		return nil, errors.Wrap(err, "failed to find dispatch by id")
	}

	if input.RouteID != nil {
		routeID, err := uuid.Parse(*input.RouteID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("route_id is not a valid UUID")
		}
		if _, err := s.routeRepo.FindByID(ctx, routeID); err != nil {
			if errors.Is(err, repository.ErrRouteNotFound) {
				return nil, domainerrors.ErrRouteNotFound
			}

			return nil, errors.Wrap(err, "failed to find route by id")
		}
		dispatch.RouteID = routeID
	}
	if input.DriverID != nil {
		driverID, err := uuid.Parse(*input.DriverID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("driver_id is not a valid UUID")
		}
		dispatch.DriverID = driverID
	}
	if input.HelperID != nil {
		helperID, err := uuid.Parse(*input.HelperID)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("helper_id is not a valid UUID")
		}
		dispatch.HelperID = helperID
	}
	if input.Date != nil {
		dispatch.Date = truncateToDay(*input.Date)
	}
	dispatch.UpdatedAt = time.Now()

	if err := s.dispatchRepo.Update(ctx, dispatch); err != nil {
		return nil, errors.Wrap(err, "failed to update dispatch")
	}

	return dispatch, nil
}

// DeleteDispatch removes a dispatch and its assignments
func (s *dispatchService) DeleteDispatch(ctx context.Context, id uuid.UUID) error {
	if err := s.dispatchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDispatchNotFound) {
			return domainerrors.ErrDispatchNotFound
		}

		return errors.Wrap(err, "failed to delete dispatch")
	}

	return nil
}

// EligibleInvoices lists the invoices that may be assigned to the dispatch.
// An invoice qualifies when it was issued on the dispatch date, is not
// assigned to another dispatch, and its customer's registered location falls
// inside the effective geofence. The customer's own geofence wins; a customer
// without one inherits the route geofence; no geofence at all means the
// invoice is always eligible.
func (s *dispatchService) EligibleInvoices(ctx context.Context, dispatchID uuid.UUID, editingInvoiceID *uuid.UUID) ([]*entity.Invoice, error) {
	dispatch, err := s.GetDispatch(ctx, dispatchID)
	if err != nil {
		return nil, err
	}

	route, err := s.routeRepo.FindByID(ctx, dispatch.RouteID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find route by id")
	}

	invoices, err := s.invoiceRepo.FindByIssueDate(ctx, dispatch.Date)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices by issue date")
	}

	assignedIDs, err := s.assignmentRepo.ListAssignedInvoiceIDs(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assigned invoice ids")
	}
	assigned := make(map[uuid.UUID]struct{}, len(assignedIDs))
	for _, id := range assignedIDs {
		assigned[id] = struct{}{}
	}

	customers := make(map[uuid.UUID]*entity.Customer)
	eligible := make([]*entity.Invoice, 0, len(invoices))
	for _, invoice := range invoices {
		if _, taken := assigned[invoice.ID]; taken {
			// An invoice being re-edited keeps its own assignment visible.
			if editingInvoiceID == nil || invoice.ID != *editingInvoiceID {
				continue
			}
		}

		customer, ok := customers[invoice.CustomerID]
		if !ok {
			customer, err = s.customerRepo.FindByID(ctx, invoice.CustomerID)
			if err != nil {
				return nil, errors.Wrap(err, "failed to find customer by id")
			}
			customers[invoice.CustomerID] = customer
		}

		if s.insideEffectiveGeofence(ctx, customer, route) {
			eligible = append(eligible, invoice)
		}
	}

	return eligible, nil
}

// insideEffectiveGeofence applies the geofence membership rule for one
// customer. Containment is boundary-inclusive and any polygon suffices.
func (s *dispatchService) insideEffectiveGeofence(ctx context.Context, customer *entity.Customer, route *entity.Route) bool {
	fence := customer.Geofence
	if fence == "" {
		fence = route.Geofence
	}
	if fence == "" {
		return true
	}

	polygons, err := geo.ParsePolygons(fence)
	if err != nil {
		// Stored fences are validated on write; an unparseable one cannot
		// gate anything, so it is treated as absent.
		s.log(ctx).Warn("Unparseable stored geofence", slog.Any("customerID", customer.ID), slog.Any("error", err))

		return true
	}

	if !customer.HasLocation() {
		return false
	}

	return geo.Contains(polygons, orb.Point{*customer.Longitude, *customer.Latitude})
}

// ListAssignments retrieves the assignments of a dispatch with invoice and customer joined
func (s *dispatchService) ListAssignments(ctx context.Context, dispatchID uuid.UUID) ([]*entity.DispatchInvoiceAssignment, error) {
	assignments, err := s.assignmentRepo.FindByDispatch(ctx, dispatchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assignments by dispatch")
	}

	return assignments, nil
}

// AssignInvoice assigns an eligible invoice to the dispatch. The assignment
// insert and the totals recomputation commit or roll back together.
func (s *dispatchService) AssignInvoice(ctx context.Context, dispatchID uuid.UUID, input *usecase.AssignInvoiceInput) (*entity.DispatchInvoiceAssignment, error) {
	invoiceID, err := uuid.Parse(input.InvoiceID)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invoice_id is not a valid UUID")
	}

	paymentMethod := entity.PaymentMethod(input.PaymentMethod)
	if !paymentMethod.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment method: " + input.PaymentMethod)
	}

	eligible, err := s.EligibleInvoices(ctx, dispatchID, nil)
	if err != nil {
		return nil, err
	}
	if !containsInvoice(eligible, invoiceID) {
		return nil, domainerrors.ErrInvoiceNotEligible
	}

	assignment := &entity.DispatchInvoiceAssignment{
		ID:            uuid.New(),
		DispatchID:    dispatchID,
		InvoiceID:     invoiceID,
		PaymentMethod: paymentMethod,
		AmountPaid:    input.AmountPaid,
		Paid:          input.Paid,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	err = s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAssignmentRepository().Create(ctx, assignment); err != nil {
			return errors.Wrap(err, "failed to create assignment")
		}

		return s.recomputeTotals(ctx, repoFactory, dispatchID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute assignment transaction")
	}

	s.log(ctx).Debug("Invoice assigned",
		slog.Any("dispatchID", dispatchID), slog.Any("invoiceID", invoiceID))

	return assignment, nil
}

// UpdateAssignment updates an assignment's payment fields. When a receipt is
// attached it is uploaded first; a failed upload aborts the whole update.
func (s *dispatchService) UpdateAssignment(ctx context.Context, assignmentID uuid.UUID, input *usecase.UpdateAssignmentInput) (*entity.DispatchInvoiceAssignment, error) {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, domainerrors.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment by id")
	}

	if input.Receipt != nil {
		url, err := s.uploadReceipt(ctx, assignment, input.Receipt)
		if err != nil {
			return nil, err
		}
		assignment.ReceiptURL = url
	}

	if input.PaymentMethod != nil {
		paymentMethod := entity.PaymentMethod(*input.PaymentMethod)
		if !paymentMethod.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown payment method: " + *input.PaymentMethod)
		}
		assignment.PaymentMethod = paymentMethod
	}
	if input.AmountPaid != nil {
		assignment.AmountPaid = *input.AmountPaid
	}
	if input.Paid != nil {
		assignment.Paid = *input.Paid
	}
	assignment.UpdatedAt = time.Now()

	err = s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAssignmentRepository().Update(ctx, assignment); err != nil {
			return errors.Wrap(err, "failed to update assignment")
		}

		return s.recomputeTotals(ctx, repoFactory, assignment.DispatchID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute assignment update transaction")
	}

	return assignment, nil
}

// uploadReceipt stores the receipt image and returns its public URL
func (s *dispatchService) uploadReceipt(ctx context.Context, assignment *entity.DispatchInvoiceAssignment, receipt *usecase.ReceiptUpload) (string, error) {
	key := fmt.Sprintf("receipts/%s/%s%s",
		assignment.DispatchID, assignment.ID, path.Ext(receipt.Filename))

	url, err := s.receiptStorage.Upload(ctx, key, receipt.ContentType, receipt.Body)
	if err != nil {
		s.log(ctx).Error("Receipt upload failed",
			slog.Any("assignmentID", assignment.ID), slog.Any("error", err))

		return "", domainerrors.ErrReceiptUploadFailed
	}

	return url, nil
}

// UnassignInvoice removes an assignment from its dispatch
func (s *dispatchService) UnassignInvoice(ctx context.Context, assignmentID uuid.UUID) error {
	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return domainerrors.ErrAssignmentNotFound
		}

		return errors.Wrap(err, "failed to find assignment by id")
	}

	err = s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAssignmentRepository().Delete(ctx, assignmentID); err != nil {
			return errors.Wrap(err, "failed to delete assignment")
		}

		return s.recomputeTotals(ctx, repoFactory, assignment.DispatchID)
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute unassignment transaction")
	}

	return nil
}

// recomputeTotals re-derives the three dispatch totals from the full
// assignment set and persists them through the transaction-bound repositories.
// Cash sums invoices of final-consumer customers, credit sums invoices of
// fiscal-credit customers; other tax classes are excluded from both.
func (s *dispatchService) recomputeTotals(ctx context.Context, repoFactory repository.RepositoryFactory, dispatchID uuid.UUID) error {
	assignments, err := repoFactory.NewAssignmentRepository().FindByDispatch(ctx, dispatchID)
	if err != nil {
		return errors.Wrap(err, "failed to list assignments for totals")
	}

	totals := repository.DispatchTotals{
		Cash:   decimal.Zero,
		Credit: decimal.Zero,
		Grand:  decimal.Zero,
	}
	for _, assignment := range assignments {
		if assignment.Invoice == nil || assignment.Customer == nil {
			continue
		}

		switch assignment.Customer.TaxClass {
		case entity.TaxClassFinalConsumer:
			totals.Cash = totals.Cash.Add(assignment.Invoice.GrandTotal)
		case entity.TaxClassFiscalCredit:
			totals.Credit = totals.Credit.Add(assignment.Invoice.GrandTotal)
		}
	}
	totals.Grand = totals.Cash.Add(totals.Credit)

	if err := repoFactory.NewDispatchRepository().UpdateTotals(ctx, dispatchID, totals); err != nil {
		return errors.Wrap(err, "failed to update dispatch totals")
	}

	return nil
}

// SetStage flips one workflow checkpoint, gated by the caller's roles
func (s *dispatchService) SetStage(ctx context.Context, dispatchID uuid.UUID, stage entity.DispatchStage, done bool, roles entity.Roles) (*entity.Dispatch, error) {
	if !stage.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown dispatch stage: " + string(stage))
	}

	allowed := false
	for _, role := range roles {
		if role.CanSetStage(stage) {
			allowed = true

			break
		}
	}
	if !allowed {
		return nil, domainerrors.ErrStageNotAllowed
	}

	dispatch, err := s.GetDispatch(ctx, dispatchID)
	if err != nil {
		return nil, err
	}

	dispatch.SetStage(stage, done)
	dispatch.UpdatedAt = time.Now()

	if err := s.dispatchRepo.Update(ctx, dispatch); err != nil {
		return nil, errors.Wrap(err, "failed to update dispatch stage")
	}

	s.log(ctx).Debug("Dispatch stage updated",
		slog.Any("dispatchID", dispatchID), slog.String("stage", string(stage)), slog.Bool("done", done))

	return dispatch, nil
}

// GenerateDispatchQR generates the check-in QR code PNG for a dispatch
func (s *dispatchService) GenerateDispatchQR(ctx context.Context, dispatchID uuid.UUID) ([]byte, error) {
	if _, err := s.GetDispatch(ctx, dispatchID); err != nil {
		return nil, err
	}

	qrCode, err := s.qrcodeService.GenerateDispatchQR(dispatchID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate dispatch QR")
	}

	return qrCode, nil
}

func containsInvoice(invoices []*entity.Invoice, id uuid.UUID) bool {
	for _, invoice := range invoices {
		if invoice.ID == id {
			return true
		}
	}

	return false
}
