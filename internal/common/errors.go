package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes
const (
	CodeConfig     = "CONFIG_ERROR"
	CodeInputPath  = "INVALID_INPUT_PATH"
	CodeFormat     = "REFERENCE_DATA_FORMAT"
	CodeIO         = "IO_ERROR"
	CodeExtraction = "EXTRACTION_FAILED"
)

// Common application errors
var (
	ErrConfig       = errors.New("startup configuration error")
	ErrInvalidInput = errors.New("invalid input")
	ErrFormat       = errors.New("malformed reference data")
	ErrIO           = errors.New("i/o error")
	ErrExtraction   = errors.New("text extraction failed")
)

// Is lets errors.Is match the sentinel that belongs to the error code.
func (e *AppError) Is(target error) bool {
	s := sentinelFor(e.Code)
	return s != nil && target == s
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func sentinelFor(code string) error {
	switch code {
	case CodeConfig:
		return ErrConfig
	case CodeInputPath:
		return ErrInvalidInput
	case CodeFormat:
		return ErrFormat
	case CodeIO:
		return ErrIO
	case CodeExtraction:
		return ErrExtraction
	}
	return nil
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsFatal reports whether err must abort the run before or during startup.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfig) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrFormat)
}
