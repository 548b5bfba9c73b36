package task

import (
	"context"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/object"
)

// Task is a node of a process diagram. The process engine drives a task by
// calling InitState and Do, and NextTasks once Do reports completion.
type Task interface {
	ID() string
	Name() string
	Label() string

	// Type is the registered type tag, e.g. "process.task.user.approval".
	Type() string

	Definition() Definition

	// FromValues hydrates the task from a serialized attribute bag. Absent
	// settings take the defaults declared by the task's schema.
	FromValues(attrs Attributes) error

	// ToObj serializes the task into the shape accepted by FromValues.
	ToObj() Attributes

	// InitState establishes the task's runtime state in the instance the first
	// time the task is reached. It is a no-op when state already exists.
	InitState(inst *core.Instance, overrides core.State)

	// Do performs the task. It returns true when the task is complete, false
	// when it is waiting for an external event.
	Do(ctx context.Context, inst *core.Instance) (bool, error)

	// NextTasks returns the ids of the tasks to run once this one is complete.
	NextTasks(inst *core.Instance) []string

	// ProcessDataFields lists the values this task makes available to other
	// tasks. nil means the list cannot be determined.
	ProcessDataFields() []DataField

	// ProcessData returns the current value for key, or nil if the key does not
	// address this task or no value is available.
	ProcessData(inst *core.Instance, key string) any
}

// ObjectProvider is implemented by tasks that make whole data objects
// available to other tasks.
type ObjectProvider interface {
	ProcessDataObjects() []*object.Object
}
