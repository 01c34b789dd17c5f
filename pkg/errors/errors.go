package errors

import "fmt"

// Error codes
const (
	CodeAPIError   = "API_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeService    = "SERVICE_ERROR"
)

// TaggerError carries the fields shared by every error kind below.
type TaggerError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *TaggerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TaggerError) Unwrap() error {
	return e.Cause
}

// APIError reports a failed call to a remote HTTP API. StatusCode is the
// upstream status, or 0 when no response was received.
type APIError struct {
	*TaggerError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		TaggerError: &TaggerError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

func (e *APIError) WithCause(cause error) *APIError {
	e.Cause = cause
	return e
}

// AuthError is returned when the analytics login does not yield a token.
type AuthError struct {
	*TaggerError
}

func NewAuthError(message string, statusCode int, cause error) *AuthError {
	return &AuthError{
		TaggerError: &TaggerError{
			Message:    message,
			Code:       CodeAuth,
			StatusCode: statusCode,
			Context: map[string]any{
				"upstream_status": statusCode,
			},
			Cause: cause,
		},
	}
}

type ValidationError struct {
	*TaggerError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		TaggerError: &TaggerError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type ServiceError struct {
	*TaggerError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		TaggerError: &TaggerError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}
