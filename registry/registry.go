package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/appbuilder/abcore/task"
	"github.com/appbuilder/abcore/tasks"
)

// Constructor creates an empty task of a registered type.
type Constructor func(env *task.Env) task.Task

type entry struct {
	typ  string
	def  task.Definition
	ctor Constructor
}

// Registry maps task type tags to task constructors. Process definitions are
// resolved against it when they are loaded.
type Registry struct {
	sync.Mutex

	taskMap map[string]*entry
	keyMap  map[string]*entry
}

// New creates a new, empty registry instance.
func New() *Registry {
	return &Registry{
		taskMap: make(map[string]*entry),
		keyMap:  make(map[string]*entry),
	}
}

// Default returns a registry with the built-in task types.
func Default() *Registry {
	r := New()

	for _, ctor := range []Constructor{tasks.NewEnd, tasks.NewApproval, tasks.NewLifecycle} {
		if err := r.Register(ctor); err != nil {
			panic(err)
		}
	}

	return r
}

type registerConfig struct {
	Type    string
	Aliases []string
}

// Register adds a task type. The type tag and definition are taken from a
// task created by ctor unless overridden by options.
func (r *Registry) Register(ctor Constructor, opts ...RegisterOption) error {
	if ctor == nil {
		return &ErrInvalidTask{"task constructor is nil"}
	}

	probe := ctor(nil)
	if probe == nil {
		return &ErrInvalidTask{"task constructor returned nil"}
	}

	cfg := registerOptions(opts).applyRegisterOptions(registerConfig{})
	typ := cfg.Type
	if typ == "" {
		typ = probe.Type()
	}

	if typ == "" {
		return &ErrInvalidTask{"task type is empty"}
	}

	def := probe.Definition()
	if def.Key == "" {
		return &ErrInvalidTask{fmt.Sprintf("task type %q has no key", typ)}
	}

	r.Lock()
	defer r.Unlock()

	for _, t := range append([]string{typ}, cfg.Aliases...) {
		if _, ok := r.taskMap[t]; ok {
			return &ErrTaskAlreadyRegistered{fmt.Sprintf("task type %q already registered", t)}
		}
	}

	if _, ok := r.keyMap[def.Key]; ok {
		return &ErrTaskAlreadyRegistered{fmt.Sprintf("task key %q already registered", def.Key)}
	}

	e := &entry{typ: typ, def: def, ctor: ctor}
	r.taskMap[typ] = e
	for _, alias := range cfg.Aliases {
		r.taskMap[alias] = e
	}
	r.keyMap[def.Key] = e

	return nil
}

// New creates a task of the type named by attrs["type"] and hydrates it from
// attrs.
func (r *Registry) New(attrs task.Attributes, env *task.Env) (task.Task, error) {
	typ := attrs.String("type")

	r.Lock()
	e, ok := r.taskMap[typ]
	r.Unlock()

	if !ok {
		return nil, &ErrUnknownTaskType{Type: typ}
	}

	t := e.ctor(env)
	if err := t.FromValues(attrs); err != nil {
		return nil, fmt.Errorf("hydrating %s task %q: %w", typ, attrs.String("id"), err)
	}

	return t, nil
}

// NewByKey creates an empty task for a definition key, e.g. "Approval".
func (r *Registry) NewByKey(key string, env *task.Env) (task.Task, error) {
	r.Lock()
	e, ok := r.keyMap[key]
	r.Unlock()

	if !ok {
		return nil, &ErrUnknownTaskType{Type: key}
	}

	t := e.ctor(env)
	if err := t.FromValues(task.Attributes{"type": e.typ}); err != nil {
		return nil, err
	}

	return t, nil
}

// GetDefinition returns the definition registered for a type tag.
func (r *Registry) GetDefinition(typ string) (task.Definition, error) {
	r.Lock()
	defer r.Unlock()

	if e, ok := r.taskMap[typ]; ok {
		return e.def, nil
	}

	return task.Definition{}, &ErrUnknownTaskType{Type: typ}
}

// Types returns the registered type tags, excluding aliases, sorted.
func (r *Registry) Types() []string {
	r.Lock()
	defer r.Unlock()

	types := make([]string, 0, len(r.keyMap))
	for _, e := range r.keyMap {
		types = append(types, e.typ)
	}

	slices.Sort(types)
	return types
}
