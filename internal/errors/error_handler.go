// Package errors provides error handling and HTTP status code mapping for
// the 7wink API.
package errors

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/store"
)

// ErrorCode represents application-specific error codes.
type ErrorCode string

const (
	// General errors
	ErrorCodeUnknown        ErrorCode = "UNKNOWN"
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrorCodeInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrorCodeStorageDown    ErrorCode = "STORAGE_UNAVAILABLE"
	ErrorCodeRateLimited    ErrorCode = "RATE_LIMITED"

	// Tenant errors
	ErrorCodeInvalidName    ErrorCode = "INVALID_NAME"
	ErrorCodeTenantNotFound ErrorCode = "TENANT_NOT_FOUND"
	ErrorCodeTenantExists   ErrorCode = "TENANT_EXISTS"

	// Content errors
	ErrorCodeVersionNotFound ErrorCode = "VERSION_NOT_FOUND"

	// Template errors
	ErrorCodeTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"
)

// ErrorResponse represents the standard error response format.
type ErrorResponse struct {
	Status    string    `json:"status"`
	ErrorCode ErrorCode `json:"error_code"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id,omitempty"`
}

// Handler provides error handling functionality.
type Handler struct {
	logger *zap.Logger
}

// NewHandler creates a new error handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		logger: logger,
	}
}

// HandleError maps a domain error to an HTTP response.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := r.Header.Get("X-Request-ID")
	h.WriteErrorResponse(w, StatusOf(err), CodeOf(err), err.Error(), requestID)
}

// WriteValidationError writes a 400 response for a malformed request.
func (h *Handler) WriteValidationError(w http.ResponseWriter, message, requestID string) {
	h.WriteErrorResponse(w, http.StatusBadRequest, ErrorCodeInvalidRequest, message, requestID)
}

// StatusOf converts a domain error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, store.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrTenantNotFound),
		errors.Is(err, store.ErrVersionNotFound),
		errors.Is(err, store.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrTenantExists):
		return http.StatusConflict
	case errors.Is(err, store.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf converts a domain error to an application error code.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ErrorCodeUnknown
	case errors.Is(err, store.ErrInvalidName):
		return ErrorCodeInvalidName
	case errors.Is(err, store.ErrTenantNotFound):
		return ErrorCodeTenantNotFound
	case errors.Is(err, store.ErrTenantExists):
		return ErrorCodeTenantExists
	case errors.Is(err, store.ErrVersionNotFound):
		return ErrorCodeVersionNotFound
	case errors.Is(err, store.ErrTemplateNotFound):
		return ErrorCodeTemplateNotFound
	case errors.Is(err, store.ErrStorageUnavailable):
		return ErrorCodeStorageDown
	default:
		return ErrorCodeInternalError
	}
}

// WriteErrorResponse writes a formatted error response to the HTTP response writer.
func (h *Handler) WriteErrorResponse(w http.ResponseWriter, statusCode int, errorCode ErrorCode, message string, requestID string) {
	h.logger.Warn("HTTP error response",
		zap.Int("status_code", statusCode),
		zap.String("error_code", string(errorCode)),
		zap.String("message", message),
		zap.String("request_id", requestID),
	)

	resp := ErrorResponse{
		Status:    "error",
		ErrorCode: errorCode,
		Message:   message,
		RequestID: requestID,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
