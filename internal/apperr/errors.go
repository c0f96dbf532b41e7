// Package apperr defines the error taxonomy shared by every layer.
// Domain errors travel unmodified up to the HTTP boundary, which maps them
// to a status code; anything unclassified is wrapped before leaving.
package apperr

import (
	"errors"
	"fmt"
)

const (
	CodeValidation = "validation_error"
	CodeAuth       = "auth_error"
	CodeNotFound   = "not_found"
	CodeDataAccess = "data_access_error"
	CodeService    = "service_error"
)

type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]interface{}
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetails attaches diagnostic fields and returns the same error.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	e.Details = details
	return e
}

func Validation(message string) *Error {
	return &Error{Code: CodeValidation, Message: message, Status: 400}
}

func Auth(message string) *Error {
	return &Error{Code: CodeAuth, Message: message, Status: 401}
}

// Forbidden is an auth error for callers that are authenticated but not
// allowed to touch the resource.
func Forbidden(message string) *Error {
	return &Error{Code: CodeAuth, Message: message, Status: 403}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message, Status: 404}
}

func DataAccess(message string, cause error) *Error {
	return &Error{Code: CodeDataAccess, Message: message, Status: 500, cause: cause}
}

func Service(message string, cause error) *Error {
	return &Error{Code: CodeService, Message: message, Status: 500, cause: cause}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func isCode(err error, code string) bool {
	if appErr, ok := As(err); ok {
		return appErr.Code == code
	}
	return false
}

func IsValidation(err error) bool { return isCode(err, CodeValidation) }
func IsAuth(err error) bool       { return isCode(err, CodeAuth) }
func IsNotFound(err error) bool   { return isCode(err, CodeNotFound) }
func IsDataAccess(err error) bool { return isCode(err, CodeDataAccess) }

// IsApp reports whether err already belongs to the taxonomy.
func IsApp(err error) bool {
	_, ok := As(err)
	return ok
}

// From returns the taxonomy error for err, wrapping unclassified errors as a
// generic service error so internals never leak to the boundary.
func From(err error) *Error {
	if appErr, ok := As(err); ok {
		return appErr
	}
	return Service("internal service error", err)
}
