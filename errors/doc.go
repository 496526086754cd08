// Package errors provides the error taxonomy shared by the streamkit packages.
// Every failure carries a machine-readable ErrorCode so callers can branch on
// the kind of failure with errors.Is or the Is* predicates.
package errors
