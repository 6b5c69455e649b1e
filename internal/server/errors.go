package server

import (
	"errors"
	"fmt"
	"net/http"

	goerrors "github.com/go-errors/errors"
	"github.com/go-playground/validator/v10"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a collaborator the request needs is not configured
type ErrUnavailable struct {
	Component string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available", e.Component)
}

// ErrInternal wraps an unexpected failure together with the stack where it
// was observed.
type ErrInternal struct {
	Err   error
	Stack []byte
}

func (e *ErrInternal) Error() string {
	return fmt.Sprintf("internal error: %v", e.Err)
}

func (e *ErrInternal) Unwrap() error {
	return e.Err
}

// internal wraps err with a stack trace, reusing the trace when err already
// carries one.
func internal(err error) *ErrInternal {
	var traced *goerrors.Error
	if errors.As(err, &traced) {
		return &ErrInternal{Err: err, Stack: traced.Stack()}
	}
	return &ErrInternal{Err: err, Stack: goerrors.Wrap(err, 2).Stack()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts a validator failure into an *ErrValidation for
// its first failing field.
func validationError(err error) *ErrValidation {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		fe := fields[0]
		return &ErrValidation{Field: fe.Field(), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
