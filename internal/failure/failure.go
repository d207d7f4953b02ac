package failure

import (
	"errors"
	"net/http"
)

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Failure is an error carrying the HTTP status it should be reported with.
type Failure struct {
	Code    int
	Message string
	Errors  []FieldError
}

func (e *Failure) Error() string {
	return e.Message
}

// Validation reports every rejected field at once.
func Validation(fields []FieldError) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: "Validation error",
		Errors:  fields,
	}
}

func BadRequest(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) error {
	return &Failure{Code: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Failure{Code: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &Failure{Code: http.StatusNotFound, Message: msg}
}

// Conflict is reported as 400 to match the public API contract.
func Conflict(msg string) error {
	return &Failure{Code: http.StatusBadRequest, Message: msg}
}

// Internal hides the cause from the caller; log err before calling.
func Internal(msg string) error {
	if msg == "" {
		msg = "Internal server error"
	}
	return &Failure{Code: http.StatusInternalServerError, Message: msg}
}

// GetCode returns the status of err, 500 for anything that is not a Failure.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}
	return http.StatusInternalServerError
}

// FieldErrors returns the per-field details attached to err, if any.
func FieldErrors(err error) []FieldError {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Errors
	}
	return nil
}
