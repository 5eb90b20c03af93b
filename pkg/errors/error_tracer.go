package errors

import "github.com/pkg/errors"

// ErrorTracer names the operation that failed and carries the cause with a
// stack trace. Code classifies causes that are not ErrorDetails themselves,
// such as driver or storage failures.
type ErrorTracer struct {
	Message string
	Code    ErrorCode
	Err     error
}

// NewTracer creates a tracer for the operation described by message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError traces err under its own message, keeping an existing stack.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// StackTracer is implemented by errors that carry a stack trace.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// WithCode sets the code reported when the cause carries none.
func (e *ErrorTracer) WithCode(code ErrorCode) *ErrorTracer {
	e.Code = code
	return e
}

func (e *ErrorTracer) Error() string {
	if e.Err != nil && e.Message != e.Err.Error() {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the traced ErrorDetails, then the tracer's own
// code, then GeneralInternalServerError.
func (e *ErrorTracer) ErrorCode() ErrorCode {
	var details *ErrorDetails
	if As(e.Err, &details) {
		return ErrorCode(details.Code)
	}
	if e.Code != "" {
		return e.Code
	}
	return GeneralInternalServerError
}

// Wrap sets err as the cause, attaching a stack unless err already has one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	var st StackTracer
	if As(err, &st) {
		e.Err = err
		return e
	}
	e.Err = errors.WithStack(err)
	return e
}

// StackTrace returns the stack of the first cause that has one.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	var st StackTracer
	if As(e.Err, &st) {
		return st.StackTrace()
	}
	return nil
}
