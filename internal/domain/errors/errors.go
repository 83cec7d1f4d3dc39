package errors

import (
	"net/http"

	"bitelog/internal/errors"
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
	// Authentication-related errors
	ErrIdentityTokenMissing = NewBaseError(
		http.StatusUnauthorized,
		"IDENTITY_TOKEN_MISSING",
		"缺少身分權杖",
		"",
	)

	ErrIdentityTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"IDENTITY_TOKEN_INVALID",
		"無效或已過期的身分權杖",
		"",
	)

	ErrCredentialNotFound = NewBaseError(
		http.StatusUnauthorized,
		"CREDENTIAL_NOT_FOUND",
		"找不到重新整理權杖，請重新授權",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"輸入資料驗證失敗",
		"",
	)

	// Secret-related errors
	ErrSecretAccess = NewBaseError(
		http.StatusInternalServerError,
		"SECRET_ACCESS_FAILED",
		"無法取得服務密鑰",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"系統內部錯誤",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"找不到該資源",
		"",
	)
)

// ExternalAPIError represents a non-2xx response from the fitness provider,
// implementing the AppError interface. The message is taken from the
// provider's error body so callers can surface it.
type ExternalAPIError struct {
	operation string
	upstream  string
}

// NewExternalAPIError creates an error for a failed provider call
func NewExternalAPIError(operation, upstream string) AppError {
	return &ExternalAPIError{
		operation: operation,
		upstream:  upstream,
	}
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return e.operation + ": " + e.upstream
}

// HTTPCode returns the HTTP status code
func (e *ExternalAPIError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *ExternalAPIError) ErrorCode() string {
	return "EXTERNAL_API_ERROR"
}

// Message returns the user-friendly error message
func (e *ExternalAPIError) Message() string {
	return "外部服務回應錯誤"
}

// Details returns the upstream error message
func (e *ExternalAPIError) Details() string {
	return e.upstream
}

// StoreAccessError represents a credential store failure, implementing the
// AppError interface. Store errors pass through unretried.
type StoreAccessError struct {
	err     error
	details string
}

// NewStoreAccessError creates a store-related error
func NewStoreAccessError(err error, details string) AppError {
	return &StoreAccessError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *StoreAccessError) Error() string {
	return errors.Wrap(e.err, "credential store access failed").Error()
}

// Unwrap exposes the underlying store error for errors.Is/As.
func (e *StoreAccessError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *StoreAccessError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *StoreAccessError) ErrorCode() string {
	return "STORE_ACCESS_FAILED"
}

// Message returns the user-friendly error message
func (e *StoreAccessError) Message() string {
	return "憑證儲存區存取失敗"
}

// Details returns detailed error information
func (e *StoreAccessError) Details() string {
	return e.details
}
