// Package domain defines the core domain models for SnipSync.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "SS-SNIP-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Snippet Errors (SNIP)
// ============================================================================

var (
	// ErrSnippetNotFound indicates the requested snippet was not found.
	ErrSnippetNotFound = NewDomainError("SS-SNIP-4040", "snippet not found")

	// ErrVersionNotFound indicates the requested version index does not
	// exist in the retained ledger (out of range or trimmed away).
	ErrVersionNotFound = NewDomainError("SS-SNIP-4041", "version not found")

	// ErrSnippetValidation indicates snippet data validation failed.
	ErrSnippetValidation = NewDomainError("SS-SNIP-4001", "snippet validation failed")
)

// ============================================================================
// Remote Store Errors (REMOTE)
// ============================================================================

var (
	// ErrRemoteUnavailable indicates a remote read failed (network,
	// non-success status, malformed response).
	ErrRemoteUnavailable = NewDomainError("SS-REMOTE-5030", "remote store unavailable")

	// ErrRemoteWriteFailed indicates a remote push did not land.
	ErrRemoteWriteFailed = NewDomainError("SS-REMOTE-5031", "remote write failed")
)

// ============================================================================
// Data Errors (DATA)
// ============================================================================

var (
	// ErrMalformedData indicates stored or imported JSON failed to parse.
	ErrMalformedData = NewDomainError("SS-DATA-4000", "malformed snippet data")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("SS-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("SS-ARG-1002", "missing required argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("SS-SYS-5000", "internal error")

	// ErrStorage indicates a local storage layer error.
	ErrStorage = NewDomainError("SS-SYS-5001", "storage error")
)
