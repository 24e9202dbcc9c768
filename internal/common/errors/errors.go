// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Assistant errors
const (
	ErrCodeInvalidEmail         ErrorCode = "INVALID_EMAIL"
	ErrCodeBookingLookupFailed  ErrorCode = "BOOKING_LOOKUP_FAILED"
	ErrCodeBookingNotFound      ErrorCode = "BOOKING_NOT_FOUND"
	ErrCodeInvalidBookingRecord ErrorCode = "INVALID_BOOKING_RECORD"

	ErrCodeSessionNotFound     ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionBusy         ErrorCode = "SESSION_BUSY"
	ErrCodeSessionStoreFailed  ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeInvalidSessionStage ErrorCode = "INVALID_SESSION_STAGE"

	ErrCodeRefundNotEligible   ErrorCode = "REFUND_NOT_ELIGIBLE"
	ErrCodeRefundPersistFailed ErrorCode = "REFUND_PERSIST_FAILED"
	ErrCodeRefundIDBusy        ErrorCode = "REFUND_ID_BUSY"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
)

// Infrastructure errors
const (
	ErrCodeDatabaseConnectionFailed      ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed          ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout                  ErrorCode = "QUERY_TIMEOUT"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"
)

// Generic errors
const (
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeNotFound        ErrorCode = "RESOURCE_NOT_FOUND"
	ErrCodeAuthentication  ErrorCode = "AUTHENTICATION_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_FAILED"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Is matches any StandardError with the same code, so a bare
// &StandardError{Code: c} works as a sentinel with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// WithMetadata attaches a key to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
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

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
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

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
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

// ==========================
// 3. Error Constructors
// ==========================

func NewInvalidEmailError(email string) *StandardError {
	return newError(ErrCodeInvalidEmail, "Please enter a valid email address.", fmt.Sprintf("email: %q", email), false)
}

// NewBookingLookupFailedError wraps a failure of the booking store.
func NewBookingLookupFailedError(source string, err error) *StandardError {
	return newError(ErrCodeBookingLookupFailed, "Booking lookup failed",
		fmt.Sprintf("source: %s, error: %s", source, err.Error()), true)
}

func NewBookingNotFoundError(bookingID string) *StandardError {
	return newError(ErrCodeBookingNotFound, "Booking not found in session",
		fmt.Sprintf("bookingId: %s", bookingID), false)
}

func NewInvalidBookingRecordError(problems []string) *StandardError {
	return newError(ErrCodeInvalidBookingRecord, "Booking record failed validation",
		strings.Join(problems, "; "), false)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Chat session not found or expired",
		fmt.Sprintf("sessionId: %s", sessionID), false)
}

// NewSessionBusyError is returned when another turn holds the session lock.
func NewSessionBusyError(sessionID string) *StandardError {
	return newError(ErrCodeSessionBusy, "Chat session is handling another message",
		fmt.Sprintf("sessionId: %s", sessionID), true)
}

func NewSessionStoreFailedError(op string, err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session store operation failed",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), true)
}

func NewInvalidSessionStageError(want, got string) *StandardError {
	return newError(ErrCodeInvalidSessionStage, "Session is not at the expected stage",
		fmt.Sprintf("want: %s, got: %s", want, got), false)
}

func NewRefundNotEligibleError(bookingID string) *StandardError {
	return newError(ErrCodeRefundNotEligible, "Booking is not eligible for automatic refund",
		fmt.Sprintf("bookingId: %s", bookingID), false)
}

func NewRefundPersistFailedError(refundID string, err error) *StandardError {
	return newError(ErrCodeRefundPersistFailed, "Failed to save refund",
		fmt.Sprintf("refundId: %s, error: %s", refundID, err.Error()), true)
}

// NewRefundIDBusyError is returned when the refund id lock could not be
// taken before the job deadline.
func NewRefundIDBusyError(err error) *StandardError {
	return newError(ErrCodeRefundIDBusy, "Another refund is being opened",
		fmt.Sprintf("error: %s", err.Error()), true)
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()), true)
}

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout", fmt.Sprintf("queryType: %s", queryType), true)
}

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

func NewSearchQueryFailedError(index string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("index: %s, error: %s", index, err.Error()), true)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Elasticsearch index not found", fmt.Sprintf("indexName: %s", indexName), false)
}

// Generic constructors

func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidation, "Input validation failed", details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newError(ErrCodeNotFound, fmt.Sprintf("Resource not found in %s", service), details, false)
}

func NewAuthenticationError(details string) *StandardError {
	return newError(ErrCodeAuthentication, "Authentication failed", details, false)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by
// boundary events in the chat process. Codes not listed pass through.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidEmail:           "INVALID_EMAIL",
	ErrCodeBookingLookupFailed:    "BOOKING_LOOKUP_FAILED",
	ErrCodeBookingNotFound:        "BOOKING_NOT_FOUND",
	ErrCodeInvalidBookingRecord:   "INVALID_BOOKING_RECORD",
	ErrCodeSessionNotFound:        "SESSION_NOT_FOUND",
	ErrCodeSessionBusy:            "SESSION_BUSY",
	ErrCodeSessionStoreFailed:     "SESSION_STORE_FAILED",
	ErrCodeInvalidSessionStage:    "INVALID_SESSION_STAGE",
	ErrCodeRefundNotEligible:      "REFUND_NOT_ELIGIBLE",
	ErrCodeRefundPersistFailed:    "REFUND_PERSIST_FAILED",
	ErrCodeRefundIDBusy:           "REFUND_ID_BUSY",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",

	ErrCodeDatabaseConnectionFailed:      "BOOKING_LOOKUP_FAILED",
	ErrCodeQueryExecutionFailed:          "BOOKING_LOOKUP_FAILED",
	ErrCodeQueryTimeout:                  "BOOKING_LOOKUP_FAILED",
	ErrCodeElasticsearchConnectionFailed: "BOOKING_LOOKUP_FAILED",
	ErrCodeSearchQueryFailed:             "BOOKING_LOOKUP_FAILED",
	ErrCodeIndexNotFound:                 "BOOKING_LOOKUP_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeBookingLookupFailed,
		ErrCodeSessionStoreFailed,
		ErrCodeRefundPersistFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeSessionBusy,
		ErrCodeRefundIDBusy,
		ErrCodeQueryTimeout,
		ErrCodeTimeout:
		return 2

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandardError unwraps err to a StandardError. Context deadlines become
// timeout errors; anything else becomes a non-retryable internal error.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError("worker", err)
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SESSION"):
		return "SESSION"
	case strings.Contains(codeStr, "BOOKING"):
		return "BOOKING"
	case strings.Contains(codeStr, "REFUND"):
		return "REFUND"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
