package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"rutero/internal/delivery/http/response"
	"rutero/internal/domain/entity"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// DispatchHandlerParams holds dependencies for DispatchHandler, injected by Fx.
type DispatchHandlerParams struct {
	fx.In

	DispatchUC usecase.DispatchUsecase
	Logger     *slog.Logger
}

// DispatchHandler holds dependencies for dispatch-related handlers.
type DispatchHandler struct {
	dispatchUC usecase.DispatchUsecase
	logger     *slog.Logger
}

// NewDispatchHandler is the constructor for DispatchHandler.
func NewDispatchHandler(params DispatchHandlerParams) *DispatchHandler {
	return &DispatchHandler{
		dispatchUC: params.DispatchUC,
		logger:     params.Logger,
	}
}

// SetStageRequest represents the request body for flipping a stage checkpoint.
type SetStageRequest struct {
	Done bool `json:"done"`
}

// CreateDispatch handles creating a new dispatch run.
func (h *DispatchHandler) CreateDispatch(c echo.Context) error {
	var input *usecase.CreateDispatchInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dispatch input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	dispatch, err := h.dispatchUC.CreateDispatch(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, dispatch, "Dispatch created successfully")
}

// GetDispatch handles retrieving a single dispatch.
func (h *DispatchHandler) GetDispatch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	dispatch, err := h.dispatchUC.GetDispatch(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dispatch, "Dispatch retrieved successfully")
}

// ListDispatches handles retrieving every dispatch.
func (h *DispatchHandler) ListDispatches(c echo.Context) error {
	dispatches, err := h.dispatchUC.ListDispatches(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dispatches, "Dispatches retrieved successfully")
}

// UpdateDispatch handles a partial update of a dispatch run.
func (h *DispatchHandler) UpdateDispatch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	var input *usecase.UpdateDispatchInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dispatch input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	dispatch, err := h.dispatchUC.UpdateDispatch(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dispatch, "Dispatch updated successfully")
}

// DeleteDispatch handles deleting a dispatch and its assignments.
func (h *DispatchHandler) DeleteDispatch(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	if err := h.dispatchUC.DeleteDispatch(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Dispatch deleted"}, "Dispatch deleted successfully")
}

// ListEligibleInvoices handles listing the invoices assignable to a dispatch.
func (h *DispatchHandler) ListEligibleInvoices(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	var editingInvoiceID *uuid.UUID
	if editingParam := c.QueryParam("editing_invoice_id"); editingParam != "" {
		editingID, err := uuid.Parse(editingParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid editing invoice ID")
		}
		editingInvoiceID = &editingID
	}

	invoices, err := h.dispatchUC.EligibleInvoices(c.Request().Context(), dispatchID, editingInvoiceID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, invoices, "Eligible invoices retrieved successfully")
}

// ListAssignments handles listing the assignments of a dispatch.
func (h *DispatchHandler) ListAssignments(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	assignments, err := h.dispatchUC.ListAssignments(c.Request().Context(), dispatchID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, assignments, "Assignments retrieved successfully")
}

// AssignInvoice handles assigning an eligible invoice to a dispatch.
func (h *DispatchHandler) AssignInvoice(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	var input *usecase.AssignInvoiceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	assignment, err := h.dispatchUC.AssignInvoice(c.Request().Context(), dispatchID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, assignment, "Invoice assigned successfully")
}

// UpdateAssignment handles updating an assignment's payment fields. Clients
// that attach a receipt image send multipart/form-data; JSON otherwise.
func (h *DispatchHandler) UpdateAssignment(c echo.Context) error {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid assignment ID")
	}

	var input *usecase.UpdateAssignmentInput
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		input, err = h.bindMultipartAssignment(c)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", err.Error())
		}
	} else {
		if err := c.Bind(&input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid assignment input")
		}
	}

	assignment, err := h.dispatchUC.UpdateAssignment(c.Request().Context(), assignmentID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, assignment, "Assignment updated successfully")
}

// UnassignInvoice handles removing an assignment from its dispatch.
func (h *DispatchHandler) UnassignInvoice(c echo.Context) error {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid assignment ID")
	}

	if err := h.dispatchUC.UnassignInvoice(c.Request().Context(), assignmentID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Invoice unassigned"}, "Invoice unassigned successfully")
}

// SetStage handles flipping one workflow checkpoint of a dispatch.
func (h *DispatchHandler) SetStage(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	stage := entity.DispatchStage(c.Param("stage"))

	var req SetStageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid stage input")
	}

	rolesVal, _ := c.Get("roles").([]string)
	roles := entity.RolesFromStrings(rolesVal)

	dispatch, err := h.dispatchUC.SetStage(c.Request().Context(), dispatchID, stage, req.Done, roles)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dispatch, "Stage updated successfully")
}

// GetDispatchQR handles generating the printable check-in QR code.
func (h *DispatchHandler) GetDispatchQR(c echo.Context) error {
	dispatchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid dispatch ID")
	}

	pngBytes, err := h.dispatchUC.GenerateDispatchQR(c.Request().Context(), dispatchID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", pngBytes)
}

// bindMultipartAssignment reads the optional payment fields and receipt file
// from a multipart form.
func (h *DispatchHandler) bindMultipartAssignment(c echo.Context) (*usecase.UpdateAssignmentInput, error) {
	input := &usecase.UpdateAssignmentInput{}

	if method := c.FormValue("payment_method"); method != "" {
		input.PaymentMethod = &method
	}
	if amountRaw := c.FormValue("amount_paid"); amountRaw != "" {
		amount, err := decimal.NewFromString(amountRaw)
		if err != nil {
			return nil, errors.New("amount_paid must be a decimal number")
		}
		input.AmountPaid = &amount
	}
	if paidRaw := c.FormValue("paid"); paidRaw != "" {
		paid, err := strconv.ParseBool(paidRaw)
		if err != nil {
			return nil, errors.New("paid must be a boolean")
		}
		input.Paid = &paid
	}

	fileHeader, err := c.FormFile("receipt")
	if err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, errors.New("failed to open uploaded receipt")
		}
		// The usecase consumes the reader before the request ends; echo
		// cleans up the multipart temp files afterwards.
		input.Receipt = &usecase.ReceiptUpload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	return input, nil
}
