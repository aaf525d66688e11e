// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates recoverable document problems from fatal contract violations

package errors

import (
	"errors"
	"fmt"
)

// Malformed documents never surface as errors from field accessors; these
// types exist for the narrow set of failures that indicate programmer error
// or a broken collaborator, which must not be silently recovered.

// ContractError represents a violated API contract, such as rendering an
// unsupported feed format or configuring an unrecognized option key.
type ContractError struct {
	Contract string
	Message  string
}

// Error implements the error interface
func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation (%s): %s", e.Contract, e.Message)
}

// ValidationError represents a validation error on caller-supplied input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// RetrievalError represents a failure reported by the retrieval collaborator
type RetrievalError struct {
	URL        string
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("retrieval failed for %s: %d - %s", e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("retrieval failed for %s: %s", e.URL, e.Message)
}

// IsContract checks if an error is a ContractError
func IsContract(err error) bool {
	var contractErr *ContractError
	return errors.As(err, &contractErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsRetrieval checks if an error is a RetrievalError
func IsRetrieval(err error) bool {
	var retrievalErr *RetrievalError
	return errors.As(err, &retrievalErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
