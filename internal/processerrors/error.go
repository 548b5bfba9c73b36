package processerrors

import "errors"

// Error is the failure of a task, as recorded against a process instance.
type Error struct {
	Message string

	// Permanent errors fail the instance without retrying the task.
	Permanent bool

	Stacktrace string

	cause error
}

func (pe *Error) Error() string {
	return pe.Message
}

// Unwrap returns the error the failure was created from.
func (pe *Error) Unwrap() error {
	return pe.cause
}

var _ error = (*Error)(nil)

// FromError wraps the given error into an Error. A stack trace is captured at
// the call site unless the error already carries one.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	e := &Error{
		Message: err.Error(),
		cause:   err,
	}

	if st, ok := err.(interface{ Stacktrace() string }); ok {
		e.Stacktrace = st.Stacktrace()
	} else {
		e.Stacktrace = stack(err)
	}

	return e
}

func NewPermanentError(err error) *Error {
	e := FromError(err)
	e.Permanent = true
	return e
}

// CanRetry returns true if the given error is retryable. Errors are retryable
// unless they are marked permanent or are panics.
func CanRetry(err error) bool {
	var pe *PanicError
	if errors.As(err, &pe) {
		return false
	}

	var e *Error
	if errors.As(err, &e) {
		return !e.Permanent
	}

	return true
}
