package errors

import "fmt"

// ErrorCode represents a contactlens error code.
type ErrorCode string

const (
	ErrSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE" // 503
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrOutputWrite       ErrorCode = "OUTPUT_WRITE"       // 500
	ErrInternal          ErrorCode = "INTERNAL"           // 500
	ErrCancelled         ErrorCode = "CANCELLED"          // 499
)

// PipelineError represents a structured error with code, status, and details.
type PipelineError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewSourceUnavailable creates a 503 error for when the record source
// cannot be reached or queried. Fatal to a pipeline run.
func NewSourceUnavailable(err error) *PipelineError {
	msg := "record source unavailable"
	if err != nil {
		msg = fmt.Sprintf("record source unavailable: %v", err)
	}
	return &PipelineError{
		Code:    ErrSourceUnavailable,
		Status:  503,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *PipelineError {
	return &PipelineError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a contact cannot be found.
func NewNotFound(identifier string) *PipelineError {
	return &PipelineError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("contact not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewOutputWrite creates a 500 error for when a report or export artifact
// cannot be written. Fatal to a pipeline run; prior artifacts are preserved.
func NewOutputWrite(path string, err error) *PipelineError {
	return &PipelineError{
		Code:    ErrOutputWrite,
		Status:  500,
		Message: fmt.Sprintf("failed to write output: %v", err),
		Details: map[string]any{"path": path},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *PipelineError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PipelineError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// NewCancelled creates a 499 error for a cancelled operation.
func NewCancelled(operation string) *PipelineError {
	return &PipelineError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("operation cancelled: %s", operation),
	}
}

// Is checks if an error is a PipelineError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PipelineError); ok {
		return pErr.Code == code
	}
	return false
}
