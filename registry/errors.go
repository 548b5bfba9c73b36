package registry

import "fmt"

type ErrInvalidTask struct {
	msg string
}

func (e *ErrInvalidTask) Error() string {
	return e.msg
}

type ErrTaskAlreadyRegistered struct {
	msg string
}

func (e *ErrTaskAlreadyRegistered) Error() string {
	return e.msg
}

// ErrUnknownTaskType is returned when a process definition references a task
// type that is not registered.
type ErrUnknownTaskType struct {
	Type string
}

func (e *ErrUnknownTaskType) Error() string {
	return fmt.Sprintf("unknown task type %q", e.Type)
}
