package handler

import (
	"log/slog"
	"net/http"
	"time"

	"rutero/internal/delivery/http/response"
	"rutero/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// InvoiceHandlerParams holds dependencies for InvoiceHandler, injected by Fx.
type InvoiceHandlerParams struct {
	fx.In

	InvoiceUC usecase.InvoiceUsecase
	Logger    *slog.Logger
}

// InvoiceHandler holds dependencies for invoice-related handlers.
type InvoiceHandler struct {
	invoiceUC usecase.InvoiceUsecase
	logger    *slog.Logger
}

// NewInvoiceHandler is the constructor for InvoiceHandler.
func NewInvoiceHandler(params InvoiceHandlerParams) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceUC: params.InvoiceUC,
		logger:    params.Logger,
	}
}

// CreateInvoice handles registering a single invoice.
func (h *InvoiceHandler) CreateInvoice(c echo.Context) error {
	var input *usecase.CreateInvoiceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invoice input")
	}
	if err := c.Validate(input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	invoice, err := h.invoiceUC.CreateInvoice(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, invoice, "Invoice created successfully")
}

// GetInvoice handles retrieving a single invoice.
func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid invoice ID")
	}

	invoice, err := h.invoiceUC.GetInvoice(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, invoice, "Invoice retrieved successfully")
}

// ListInvoices handles retrieving invoices by issue date or by customer.
func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	if customerIDParam := c.QueryParam("customer_id"); customerIDParam != "" {
		customerID, err := uuid.Parse(customerIDParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid customer ID")
		}

		invoices, err := h.invoiceUC.ListInvoicesByCustomer(c.Request().Context(), customerID)
		if err != nil {
			return errors.WithStack(err)
		}

		return response.Success(c, http.StatusOK, invoices, "Invoices retrieved successfully")
	}

	issueDateParam := c.QueryParam("issue_date")
	if issueDateParam == "" {
		return response.BadRequest(c, "MISSING_FILTER", "Either issue_date or customer_id is required")
	}

	day, err := time.Parse("2006-01-02", issueDateParam)
	if err != nil {
		return response.BadRequest(c, "INVALID_DATE", "issue_date must be formatted as YYYY-MM-DD")
	}

	invoices, err := h.invoiceUC.ListInvoicesByIssueDate(c.Request().Context(), day)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, invoices, "Invoices retrieved successfully")
}

// UpdateInvoicePayment handles updating the payment fields of an invoice.
func (h *InvoiceHandler) UpdateInvoicePayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid invoice ID")
	}

	var input *usecase.UpdateInvoicePaymentInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}

	invoice, err := h.invoiceUC.UpdateInvoicePayment(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, invoice, "Invoice payment updated successfully")
}

// DeleteInvoice handles deleting an invoice.
func (h *InvoiceHandler) DeleteInvoice(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid invoice ID")
	}

	if err := h.invoiceUC.DeleteInvoice(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Invoice deleted"}, "Invoice deleted successfully")
}

// ImportInvoices handles uploading an Excel billing workbook.
func (h *InvoiceHandler) ImportInvoices(c echo.Context) error {
	fileHeader, err := c.FormFile("workbook")
	if err != nil {
		return response.BadRequest(c, "MISSING_FILE", "A workbook file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_FILE", "Failed to open uploaded workbook")
	}
	defer file.Close()

	summary, err := h.invoiceUC.ImportWorkbook(c.Request().Context(), file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Workbook imported successfully")
}
