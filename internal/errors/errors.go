package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrFileNotFound     = errors.New("input file not found")
	ErrInvalidRootShape = errors.New("input must be a JSON array, a single JSON object, or JSON Lines (one JSON object per line)")
	ErrMalformedInput   = errors.New("malformed JSON input")
	ErrSchemaConflict   = errors.New("conflicting column types")
	ErrUnknownFormat    = errors.New("unknown output format")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeShape   ErrorType = "shape"
	ErrorTypeSchema  ErrorType = "schema"
	ErrorTypeWrite   ErrorType = "write"
	ErrorTypeUnknown ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input handling
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewShapeError creates a new error related to the top-level input shape
func NewShapeError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeShape,
		Message: message,
		Err:     err,
	}
}

// NewSchemaError creates a new error related to column type inference
func NewSchemaError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSchema,
		Message: message,
		Err:     err,
	}
}

// NewWriteError creates a new error related to output serialization
func NewWriteError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeWrite,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeShape:
			return fmt.Sprintf("Input shape error: %s", appErr.Message)
		case ErrorTypeSchema:
			return fmt.Sprintf("Schema error: %s", appErr.Message)
		case ErrorTypeWrite:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The input file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrInvalidRootShape) {
		return "Error: The input must be a JSON array, a single JSON object, or JSON Lines."
	}
	if errors.Is(err, ErrMalformedInput) {
		return "Error: The input contains malformed JSON. Re-run without --strict to skip bad lines."
	}
	if errors.Is(err, ErrSchemaConflict) {
		return "Error: A field has conflicting types across records. Drop --typed to stringify values instead."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Unknown output format. Supported formats: arrow, parquet."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
