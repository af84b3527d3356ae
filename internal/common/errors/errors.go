package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorCode string

const (
	// Chat
	ErrCodeEmptyMessage ErrorCode = "EMPTY_MESSAGE"

	// Simulator
	ErrCodeSimulationValidationFailed ErrorCode = "SIMULATION_VALIDATION_FAILED"

	// Catalog
	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"
	ErrCodeProductNotFound     ErrorCode = "PRODUCT_NOT_FOUND"

	// Location
	ErrCodeGeolocationDenied      ErrorCode = "GEOLOCATION_DENIED"
	ErrCodeGeolocationUnsupported ErrorCode = "GEOLOCATION_UNSUPPORTED"
	ErrCodeEmptyLocationQuery     ErrorCode = "EMPTY_LOCATION_QUERY"
	ErrCodeInvalidCoordinates     ErrorCode = "INVALID_COORDINATES"

	// Sessions
	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"

	// Search backend
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"

	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeTimeout      ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape returned by every handler and rendered by every transport.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithCause attaches the sentinel or underlying error so errors.Is keeps working.
func (e *StandardError) WithCause(err error) *StandardError {
	e.cause = err
	return e
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewEmptyMessageError() *StandardError {
	return newError(ErrCodeEmptyMessage, "Message must not be empty", "", false)
}

func NewSimulationValidationFailedError(details string) *StandardError {
	return newError(ErrCodeSimulationValidationFailed, "Simulation parameters are invalid", details, false)
}

func NewInvalidFilterFormatError(details string) *StandardError {
	return newError(ErrCodeInvalidFilterFormat, "Invalid filter format", details, false)
}

func NewProductNotFoundError(productID string) *StandardError {
	return newError(ErrCodeProductNotFound, "Product not found in catalog",
		fmt.Sprintf("productId: %s", productID), false)
}

func NewGeolocationDeniedError() *StandardError {
	return newError(ErrCodeGeolocationDenied,
		"No se pudo obtener la ubicación. Verifica los permisos.", "", false)
}

func NewGeolocationUnsupportedError() *StandardError {
	return newError(ErrCodeGeolocationUnsupported,
		"La geolocalización no está soportada en este navegador", "", false)
}

func NewEmptyLocationQueryError() *StandardError {
	return newError(ErrCodeEmptyLocationQuery, "Location query must not be empty", "", false)
}

func NewInvalidCoordinatesError(lat, lng float64) *StandardError {
	return newError(ErrCodeInvalidCoordinates, "Coordinates out of range",
		fmt.Sprintf("lat: %v, lng: %v", lat, lng), false)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Session not found or expired",
		fmt.Sprintf("sessionId: %s", sessionID), false)
}

func NewSessionStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store error", err.Error(), true).WithCause(err)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true).WithCause(err)
}

func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true).WithCause(err)
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", details, false)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true).WithCause(err)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false).WithCause(err)
}

// FromError normalizes any error into a StandardError.
func FromError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// CodeOf returns the normalized code of err, or "" for nil.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return string(FromError(err).Code)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeEmptyMessage:                  "EMPTY_MESSAGE",
	ErrCodeSimulationValidationFailed:    "SIMULATION_VALIDATION_FAILED",
	ErrCodeInvalidFilterFormat:           "INVALID_FILTER_FORMAT",
	ErrCodeProductNotFound:               "PRODUCT_NOT_FOUND",
	ErrCodeGeolocationDenied:             "GEOLOCATION_DENIED",
	ErrCodeGeolocationUnsupported:        "GEOLOCATION_UNSUPPORTED",
	ErrCodeEmptyLocationQuery:            "EMPTY_LOCATION_QUERY",
	ErrCodeInvalidCoordinates:            "INVALID_COORDINATES",
	ErrCodeSessionNotFound:               "SESSION_NOT_FOUND",
	ErrCodeSessionStoreFailed:            "SESSION_STORE_FAILED",
	ErrCodeElasticsearchConnectionFailed: "ELASTICSEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:             "SEARCH_QUERY_FAILED",
	ErrCodeInvalidInput:                  "INVALID_INPUT",
	ErrCodeTimeout:                       "TIMEOUT_ERROR",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSessionStoreFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed:
		return 3 // Retryable technical errors

	case ErrCodeTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case code == ErrCodeTimeout:
		return "TRANSIENT"
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "GEOLOCATION") || strings.Contains(codeStr, "LOCATION") || strings.Contains(codeStr, "COORDINATES"):
		return "LOCATION"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "PRODUCT"):
		return "CATALOG"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "EMPTY"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps an error code onto the status the API answers with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeEmptyMessage, ErrCodeInvalidFilterFormat, ErrCodeEmptyLocationQuery, ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeSimulationValidationFailed, ErrCodeInvalidCoordinates:
		return http.StatusUnprocessableEntity
	case ErrCodeProductNotFound, ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeGeolocationDenied:
		return http.StatusForbidden
	case ErrCodeGeolocationUnsupported:
		return http.StatusNotImplemented
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeElasticsearchConnectionFailed, ErrCodeSearchQueryFailed, ErrCodeSessionStoreFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
