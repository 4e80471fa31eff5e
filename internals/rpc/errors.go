package rpc

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type Code string

const (
	CodeBadRequest         Code = "BAD_REQUEST"
	CodeValidation         Code = "VALIDATION_ERROR"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeMethodNotSupported Code = "METHOD_NOT_SUPPORTED"
	CodeConflict           Code = "CONFLICT"
	CodeInternal           Code = "INTERNAL_SERVER_ERROR"
)

func (c Code) Status() int {
	switch c {
	case CodeBadRequest:
		return fiber.StatusBadRequest
	case CodeValidation:
		return fiber.StatusUnprocessableEntity
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeMethodNotSupported:
		return fiber.StatusMethodNotAllowed
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// Error is the classified failure returned by procedures. Cause is logged
// and never shown to the caller.
type Error struct {
	Code    Code
	Message string
	Fields  map[string][]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func NotFound(msg string) *Error   { return &Error{Code: CodeNotFound, Message: msg} }
func BadRequest(msg string) *Error { return &Error{Code: CodeBadRequest, Message: msg} }
func Conflict(msg string) *Error   { return &Error{Code: CodeConflict, Message: msg} }
func Forbidden(msg string) *Error  { return &Error{Code: CodeForbidden, Message: msg} }

func Unauthorized(msg string) *Error { return &Error{Code: CodeUnauthorized, Message: msg} }

func Validation(fields map[string][]string) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// FieldError is a single-field validation failure.
func FieldError(field, msg string) *Error {
	return Validation(map[string][]string{field: {msg}})
}

func Internal(msg string, cause error) *Error {
	return &Error{Code: CodeInternal, Message: msg, Cause: cause}
}

// AsError classifies any error; unknown ones become a generic internal error.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("Internal server error", err)
}

// CodeOf returns the code of err, or "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	return AsError(err).Code
}
