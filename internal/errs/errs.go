package errs

import (
	"fmt"
	"net/http"
)

// Type is the coarse error class reported in the envelope.
type Type string

const (
	TypeValidation = Type("VALIDATION_ERROR")
	TypeSyntax     = Type("SYNTAX_ERROR")
	TypeNotFound   = Type("NOT_FOUND")
	TypeForeignKey = Type("FOREIGN_KEY_VIOLATION")
	TypeConstraint = Type("CONSTRAINT_VIOLATION")
	TypeRateLimit  = Type("RATE_LIMITED")
	TypeInternal   = Type("INTERNAL_ERROR")
)

// Detail is a single {code, message} pair, the unit the validators accumulate.
type Detail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error is returned by services for every failure the client should see.
// Code and Message mirror Details[0] when details exist.
type Error struct {
	Status  int
	Type    Type
	Code    string
	Message string
	Details []Detail
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Type, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s %s: %s", e.Type, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Validation wraps the accumulated validator errors. details must not be empty.
func Validation(details []Detail) *Error {
	first := Detail{Code: "VALIDATION_FAILED", Message: "validation failed"}
	if len(details) > 0 {
		first = details[0]
	}
	return &Error{
		Status:  http.StatusBadRequest,
		Type:    TypeValidation,
		Code:    first.Code,
		Message: first.Message,
		Details: details,
	}
}

// Syntax reports an unparseable request body.
func Syntax(cause error) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Type:    TypeSyntax,
		Code:    "SYNTAX_ERROR",
		Message: "request body is not valid JSON",
		cause:   cause,
	}
}

// NotFound reports a missing primary or parent resource.
func NotFound(resource string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Type:    TypeNotFound,
		Code:    "NOT_FOUND",
		Message: resource + " not found",
	}
}

// ForeignKey reports a referenced entity that is absent or violates a
// cross-entity rule. code names the offending relation.
func ForeignKey(code, message string) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Type:    TypeForeignKey,
		Code:    code,
		Message: message,
	}
}

// Constraint reports a constraint raised by the store itself.
func Constraint(code, message string, cause error) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Type:    TypeConstraint,
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// TooManyRequests reports an operation refused until its cooldown passes.
func TooManyRequests(code, message string, cause error) *Error {
	return &Error{
		Status:  http.StatusTooManyRequests,
		Type:    TypeRateLimit,
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Internal hides the cause from the client; it is only logged.
func Internal(cause error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Type:    TypeInternal,
		Code:    "INTERNAL_ERROR",
		Message: "internal server error",
		cause:   cause,
	}
}
