package errors

import stderrors "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the user-defined error message.
	// E.g. "price must be positive".
	Message string

	// Code (required) is the error code string, one of the ErrorCode constants.
	Code string

	// Field (optional) is the related field the error occurred on, if any.
	Field string

	// Object (optional) is the related object the error occured on, if any.
	Object interface{}
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// NewErrorDetailsWithObject creates a new ErrorDetails struct with an associated object.
func NewErrorDetailsWithObject(message, code, field string, object interface{}) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
		Object:  object,
	}
}

// New is a shorthand for NewErrorDetails with a typed code.
func New(code ErrorCode, field, message string) *ErrorDetails {
	return NewErrorDetails(message, string(code), field)
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so package sentinels match
// with errors.Is regardless of message or field.
func (e *ErrorDetails) Is(target error) bool {
	t, ok := target.(*ErrorDetails)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// ErrorCodeEquals checks whether a given `error` has a specific code anywhere in its chain.
func ErrorCodeEquals(err error, code string) bool {
	var details *ErrorDetails
	if !stderrors.As(err, &details) {
		return false
	}

	return details.Code == code
}

// CodeOf returns the code of the first ErrorDetails found in err's chain, or
// the code of a tracer when the chain holds no ErrorDetails.
func CodeOf(err error) ErrorCode {
	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return ErrorCode(details.Code)
	}
	var tracer *ErrorTracer
	if stderrors.As(err, &tracer) {
		return tracer.ErrorCode()
	}
	return GeneralInternalServerError
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
