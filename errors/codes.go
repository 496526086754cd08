package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Source sequence errors
const (
	// ErrCodeNullSource indicates the source sequence itself is absent.
	ErrCodeNullSource ErrorCode = "NULL_SOURCE"
	// ErrCodeEmptyCollection indicates the source sequence has no elements.
	ErrCodeEmptyCollection ErrorCode = "EMPTY_COLLECTION"
	// ErrCodeInvalidData indicates elements violate an operation's data-quality contract.
	ErrCodeInvalidData ErrorCode = "INVALID_DATA"
)

// Configuration errors
const (
	// ErrCodeInvalidInput indicates a configuration value or argument is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// None of the codes are retryable: they describe static data problems.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeNullSource:      false,
	ErrCodeEmptyCollection: false,
	ErrCodeInvalidData:     false,
	ErrCodeInvalidInput:    false,
	ErrCodeInternal:        false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
