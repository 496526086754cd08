package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type returned by streamkit operations.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Sentinels for errors.Is matching. Any AppError with the same code matches.
var (
	ErrNullSource      = &AppError{Code: ErrCodeNullSource, Message: "source sequence is absent"}
	ErrEmptyCollection = &AppError{Code: ErrCodeEmptyCollection, Message: "source sequence is empty"}
	ErrInvalidData     = &AppError{Code: ErrCodeInvalidData, Message: "source sequence contains invalid data"}
)

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// NullSource creates a new AppError for an absent source sequence.
func NullSource(source string) *AppError {
	return &AppError{
		Code: ErrCodeNullSource, Message: fmt.Sprintf("%s collection cannot be null", source),
		Details: map[string]any{"source": source},
	}
}

// EmptyCollection creates a new AppError for a source sequence with no elements.
func EmptyCollection(source string) *AppError {
	return &AppError{
		Code: ErrCodeEmptyCollection, Message: fmt.Sprintf("%s collection cannot be empty", source),
		Details: map[string]any{"source": source},
	}
}

// InvalidData creates a new AppError for elements that break an operation's contract.
func InvalidData(source, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidData, Message: fmt.Sprintf("%s %s", source, reason),
		Details: map[string]any{"source": source, "reason": reason},
	}
}

// InvalidInput creates a new AppError for an invalid argument or setting.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "an unexpected error occurred",
		Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// IsNullSource reports whether err is a NULL_SOURCE error.
func IsNullSource(err error) bool { return stderrors.Is(err, ErrNullSource) }

// IsEmptyCollection reports whether err is an EMPTY_COLLECTION error.
func IsEmptyCollection(err error) bool { return stderrors.Is(err, ErrEmptyCollection) }

// IsInvalidData reports whether err is an INVALID_DATA error.
func IsInvalidData(err error) bool { return stderrors.Is(err, ErrInvalidData) }
