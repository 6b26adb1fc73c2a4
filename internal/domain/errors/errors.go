package errors

import (
	"net/http"

	"rutero/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Customer-related errors
	ErrCustomerNotFound = NewBaseError(
		http.StatusNotFound,
		"CUSTOMER_NOT_FOUND",
		"No se encontró el cliente",
		"",
	)

	ErrCustomerInUse = NewBaseError(
		http.StatusConflict,
		"CUSTOMER_IN_USE",
		"El cliente aún está en uso y no puede eliminarse",
		"",
	)

	// Route-related errors
	ErrRouteNotFound = NewBaseError(
		http.StatusNotFound,
		"ROUTE_NOT_FOUND",
		"No se encontró la ruta",
		"",
	)

	ErrRouteInUse = NewBaseError(
		http.StatusConflict,
		"ROUTE_IN_USE",
		"La ruta aún está en uso y no puede eliminarse",
		"",
	)

	// Geofence-related errors
	ErrInvalidGeofence = NewBaseError(
		http.StatusBadRequest,
		"INVALID_GEOFENCE",
		"La geocerca no contiene un polígono válido",
		"",
	)

	// Invoice-related errors
	ErrInvoiceNotFound = NewBaseError(
		http.StatusNotFound,
		"INVOICE_NOT_FOUND",
		"No se encontró la factura",
		"",
	)

	ErrInvoiceInUse = NewBaseError(
		http.StatusConflict,
		"INVOICE_IN_USE",
		"La factura está asignada a un despacho y no puede eliminarse",
		"",
	)

	ErrInvoiceAlreadyAssigned = NewBaseError(
		http.StatusConflict,
		"INVOICE_ALREADY_ASSIGNED",
		"La factura ya está asignada a otro despacho",
		"",
	)

	ErrInvoiceNotEligible = NewBaseError(
		http.StatusUnprocessableEntity,
		"INVOICE_NOT_ELIGIBLE",
		"La factura no es elegible para este despacho",
		"",
	)

	// Dispatch-related errors
	ErrDispatchNotFound = NewBaseError(
		http.StatusNotFound,
		"DISPATCH_NOT_FOUND",
		"No se encontró el despacho",
		"",
	)

	ErrAssignmentNotFound = NewBaseError(
		http.StatusNotFound,
		"ASSIGNMENT_NOT_FOUND",
		"No se encontró la asignación de factura",
		"",
	)

	ErrStageNotAllowed = NewBaseError(
		http.StatusForbidden,
		"STAGE_NOT_ALLOWED",
		"Su rol no permite actualizar esta etapa del despacho",
		"",
	)

	// Tracking-related errors
	ErrTripAlreadyActive = NewBaseError(
		http.StatusConflict,
		"TRIP_ALREADY_ACTIVE",
		"El conductor ya tiene un viaje activo",
		"",
	)

	ErrNoActiveTrip = NewBaseError(
		http.StatusConflict,
		"NO_ACTIVE_TRIP",
		"El conductor no tiene un viaje activo",
		"",
	)

	// Upload-related errors
	ErrReceiptUploadFailed = NewBaseError(
		http.StatusBadGateway,
		"RECEIPT_UPLOAD_FAILED",
		"No se pudo subir el comprobante; la operación fue cancelada",
		"",
	)

	// Directions-related errors
	ErrDirectionsUnavailable = NewBaseError(
		http.StatusBadGateway,
		"DIRECTIONS_UNAVAILABLE",
		"El servicio de rutas no está disponible",
		"",
	)

	// Authentication-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"No se encontró el usuario",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Correo o contraseña incorrectos",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"El token de sesión es inválido o expiró",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Error al procesar la contraseña",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Los datos enviados no son válidos",
		"",
	)

	// Import-related errors
	ErrImportFailed = NewBaseError(
		http.StatusBadRequest,
		"IMPORT_FAILED",
		"No se pudo importar el archivo de facturación",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"La transacción de base de datos falló",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Error interno del sistema",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Acceso denegado",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No se encontró el recurso",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Conflicto de recursos",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "La operación de base de datos falló"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
