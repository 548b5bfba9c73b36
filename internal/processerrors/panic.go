package processerrors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type PanicError struct {
	message    string
	stacktrace string
}

func (pe *PanicError) Error() string {
	return pe.message
}

func (pe *PanicError) Stacktrace() string {
	return pe.stacktrace
}

// NewPanicError converts a recovered value into an error carrying the stack of
// the panicking goroutine.
func NewPanicError(r any) *PanicError {
	goerr := goerrors.Wrap(r, 2)

	return &PanicError{
		message:    fmt.Sprintf("panic: %v", r),
		stacktrace: string(goerr.Stack()),
	}
}
