package models

import (
	"context"
	"errors"
	"fmt"
)

// Error codes used in log output and internal error handling.
const (
	ErrCodeTimeout      = "CAPTURE_TIMEOUT"
	ErrCodeNavigation   = "NAVIGATION_FAILED"
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	ErrCodeScreenshot   = "SCREENSHOT_FAILED"
	ErrCodeStorage      = "STORAGE_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
)

// CaptureError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type CaptureError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}

// NewCaptureError creates a new CaptureError.
func NewCaptureError(code, message string, err error) *CaptureError {
	return &CaptureError{Code: code, Message: message, Err: err}
}

// CategorizeError wraps raw errors into typed CaptureErrors so callers can
// distinguish timeouts from navigation failures.
func CategorizeError(err error, msg string) *CaptureError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewCaptureError(ErrCodeTimeout, msg, err)
	case errors.Is(err, context.Canceled):
		return NewCaptureError(ErrCodeTimeout, "attempt canceled", err)
	default:
		return NewCaptureError(ErrCodeNavigation, msg, err)
	}
}
