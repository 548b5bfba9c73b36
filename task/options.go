package task

import (
	"log/slog"

	"github.com/appbuilder/abcore/diag"
	"github.com/appbuilder/abcore/object"
)

// Graph provides the connections between the tasks of a process.
type Graph interface {
	// Outgoing returns the ids of the tasks directly connected after the given task.
	Outgoing(taskID string) []string
}

// Env holds the collaborators a task needs. It is shared by all tasks of a
// process definition.
type Env struct {
	Logger *slog.Logger

	// Objects resolves data objects referenced by tasks.
	Objects object.Registry

	// Reporter receives errors that are handled out of band.
	Reporter diag.Reporter

	// Graph is set by the owning process.
	Graph Graph
}

var DefaultEnv = Env{
	Logger:   slog.Default(),
	Reporter: diag.NopReporter,
}

type Option func(*Env)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Env) {
		e.Logger = logger
	}
}

func WithObjects(objects object.Registry) Option {
	return func(e *Env) {
		e.Objects = objects
	}
}

func WithReporter(reporter diag.Reporter) Option {
	return func(e *Env) {
		e.Reporter = reporter
	}
}

func WithGraph(graph Graph) Option {
	return func(e *Env) {
		e.Graph = graph
	}
}

func ApplyOptions(opts ...Option) *Env {
	env := DefaultEnv

	for _, opt := range opts {
		opt(&env)
	}

	env.setDefaults()

	return &env
}

// setDefaults fills collaborators left nil. Graph stays optional.
func (e *Env) setDefaults() {
	if e.Logger == nil {
		e.Logger = slog.Default()
	}

	if e.Objects == nil {
		e.Objects = object.NewMemoryRegistry()
	}

	if e.Reporter == nil {
		e.Reporter = diag.NopReporter
	}
}
