// Package errors defines the typed failures returned while loading and
// editing captured requests.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorType represents the kind of failure
type ErrorType int

const (
	// ErrorTypeMalformedRequestLine means the first line is not "METHOD PATH VERSION"
	ErrorTypeMalformedRequestLine ErrorType = iota
	// ErrorTypeMalformedHeaderLine means a header line has no colon or no name
	ErrorTypeMalformedHeaderLine
	// ErrorTypeSourceUnavailable means the source could not be opened or read
	ErrorTypeSourceUnavailable
	// ErrorTypeBodyEncoding means a structured body could not be encoded
	ErrorTypeBodyEncoding
	// ErrorTypeCompressionError means a body codec failed
	ErrorTypeCompressionError
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeMalformedRequestLine: "malformed request line",
	ErrorTypeMalformedHeaderLine:  "malformed header line",
	ErrorTypeSourceUnavailable:    "source unavailable",
	ErrorTypeBodyEncoding:         "body encoding",
	ErrorTypeCompressionError:     "compression",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// Error represents a structured burparse error
type Error struct {
	Type    ErrorType
	Message string
	Context string
	Raw     []byte
	Err     error // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("burparse: %s: %s (context: %s): %v", e.Type, e.Message, e.Context, e.Err)
	}
	return fmt.Sprintf("burparse: %s: %s (context: %s)", e.Type, e.Message, e.Context)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error
func NewError(errType ErrorType, message, context string, raw []byte) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: context,
		Raw:     raw,
	}
}

// Wrap creates a new Error carrying cause
func Wrap(cause error, errType ErrorType, message, context string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: context,
		Err:     cause,
	}
}

// IsParseError checks if err is, or wraps, an *Error
func IsParseError(err error) bool {
	var e *Error
	return pkgerrors.As(err, &e)
}

// IsType reports whether err is, or wraps, an *Error of type t
func IsType(err error, t ErrorType) bool {
	var e *Error
	if !pkgerrors.As(err, &e) {
		return false
	}
	return e.Type == t
}
