package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category in a way tests can match on.
type ErrorCode string

const (
	ErrUnknown ErrorCode = "UNKNOWN"

	// Malformed markup: unmatched brackets, missing App, missing or mismatched closers.
	ErrSyntax ErrorCode = "SYNTAX"
	// Absent required arguments: zero values, nil parents, nodes from another tree.
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// Structural integrity: removing what is not there, stale traversals.
	ErrReference ErrorCode = "REFERENCE"
	// Positional insertion outside the child list.
	ErrRange ErrorCode = "RANGE"

	ErrNotFound ErrorCode = "NOT_FOUND"
	ErrConfig   ErrorCode = "CONFIG"
	ErrTemplate ErrorCode = "TEMPLATE"
	ErrWrite    ErrorCode = "WRITE"
	ErrHistory  ErrorCode = "HISTORY"
)

// GenError is a coded error with optional details and a wrapped cause.
type GenError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *GenError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *GenError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a GenError with the same code.
func (e *GenError) Is(target error) bool {
	var targetErr *GenError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a GenError with the given code and message.
func New(code ErrorCode, message string) *GenError {
	return &GenError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a GenError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *GenError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err in a GenError. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *GenError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *GenError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

func (e *GenError) WithDetail(key string, value interface{}) *GenError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if any error in err's chain carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.Code == code
	}
	return false
}

// GetErrorCode returns the code of the first GenError in err's chain, or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the first GenError in err's chain.
func GetErrorDetails(err error) map[string]interface{} {
	var genErr *GenError
	if errors.As(err, &genErr) {
		return genErr.Details
	}
	return nil
}
