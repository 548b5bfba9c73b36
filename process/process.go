package process

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/registry"
	"github.com/appbuilder/abcore/task"
	"github.com/appbuilder/abcore/tasks"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrDuplicateTask   = errors.New("duplicate task id")
	ErrInvalidFlow     = errors.New("connection references unknown task")
	ErrTaskNotFound    = errors.New("task not found")
	ErrMissingProperty = errors.New("missing property")
)

// Connection is a sequence flow between two tasks.
type Connection struct {
	From string `mapstructure:"from" json:"from"`
	To   string `mapstructure:"to" json:"to"`
}

// Process is a process definition. It owns its tasks; the successors of a task
// are computed from the connections.
type Process struct {
	ID    string
	Name  string
	Label string

	tasks       []task.Task
	byID        map[string]task.Task
	connections []Connection

	registry *registry.Registry
	env      *task.Env
}

var _ task.Graph = (*Process)(nil)

type options struct {
	registry *registry.Registry
	taskOpts []task.Option
}

type Option func(*options)

// WithRegistry resolves task types against r instead of registry.Default().
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithTaskOptions configures the environment shared by all tasks.
func WithTaskOptions(opts ...task.Option) Option {
	return func(o *options) {
		o.taskOpts = append(o.taskOpts, opts...)
	}
}

type processValues struct {
	ID          string           `mapstructure:"id"`
	Name        string           `mapstructure:"name"`
	Label       string           `mapstructure:"label"`
	Elements    []map[string]any `mapstructure:"elements"`
	Connections []Connection     `mapstructure:"connections"`
}

// New builds a process definition from its serialized values. Unknown task
// types, duplicate task ids and dangling connections are rejected.
func New(values map[string]any, opts ...Option) (*Process, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.registry == nil {
		o.registry = registry.Default()
	}

	var pv processValues
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &pv,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := d.Decode(values); err != nil {
		return nil, fmt.Errorf("decoding process: %w", err)
	}

	if pv.ID == "" {
		return nil, fmt.Errorf("process %q: id: %w", pv.Name, ErrMissingProperty)
	}

	p := &Process{
		ID:       pv.ID,
		Name:     pv.Name,
		Label:    pv.Label,
		byID:     make(map[string]task.Task, len(pv.Elements)),
		registry: o.registry,
	}
	if p.Label == "" {
		p.Label = p.Name
	}

	p.env = task.ApplyOptions(append(o.taskOpts, task.WithGraph(p))...)

	for _, attrs := range pv.Elements {
		if _, err := p.AddTask(attrs); err != nil {
			return nil, fmt.Errorf("process %q: %w", p.ID, err)
		}
	}

	for _, c := range pv.Connections {
		if err := p.Connect(c.From, c.To); err != nil {
			return nil, fmt.Errorf("process %q: %w", p.ID, err)
		}
	}

	return p, nil
}

// Load parses a JSON process definition.
func Load(data []byte, opts ...Option) (*Process, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing process definition: %w", err)
	}

	return New(values, opts...)
}

// LoadYAML parses a YAML process definition.
func LoadYAML(data []byte, opts ...Option) (*Process, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing process definition: %w", err)
	}

	return New(values, opts...)
}

// Env returns the environment shared by the tasks of this process.
func (p *Process) Env() *task.Env {
	return p.env
}

// AddTask creates a task from its serialized attributes and adds it to the
// process.
func (p *Process) AddTask(attrs map[string]any) (task.Task, error) {
	t, err := p.registry.New(task.Attributes(attrs), p.env)
	if err != nil {
		return nil, err
	}

	if _, ok := p.byID[t.ID()]; ok {
		return nil, fmt.Errorf("task %q: %w", t.ID(), ErrDuplicateTask)
	}

	p.tasks = append(p.tasks, t)
	p.byID[t.ID()] = t

	return t, nil
}

// RemoveTask removes a task and every connection touching it.
func (p *Process) RemoveTask(id string) error {
	if _, ok := p.byID[id]; !ok {
		return fmt.Errorf("task %q: %w", id, ErrTaskNotFound)
	}

	delete(p.byID, id)
	p.tasks = slices.DeleteFunc(p.tasks, func(t task.Task) bool {
		return t.ID() == id
	})
	p.connections = slices.DeleteFunc(p.connections, func(c Connection) bool {
		return c.From == id || c.To == id
	})

	return nil
}

// Connect adds a sequence flow between two existing tasks.
func (p *Process) Connect(from, to string) error {
	if _, ok := p.byID[from]; !ok {
		return fmt.Errorf("connection %s->%s: %q: %w", from, to, from, ErrInvalidFlow)
	}

	if _, ok := p.byID[to]; !ok {
		return fmt.Errorf("connection %s->%s: %q: %w", from, to, to, ErrInvalidFlow)
	}

	p.connections = append(p.connections, Connection{From: from, To: to})
	return nil
}

// Task returns the task with the given id, or nil.
func (p *Process) Task(id string) task.Task {
	return p.byID[id]
}

// Tasks returns the tasks in definition order.
func (p *Process) Tasks() []task.Task {
	return slices.Clone(p.tasks)
}

func (p *Process) Connections() []Connection {
	return slices.Clone(p.connections)
}

// Outgoing returns the ids of the tasks connected after taskID.
func (p *Process) Outgoing(taskID string) []string {
	next := []string{}
	for _, c := range p.connections {
		if c.From == taskID {
			next = append(next, c.To)
		}
	}

	return next
}

// Incoming returns the ids of the tasks connected before taskID.
func (p *Process) Incoming(taskID string) []string {
	prev := []string{}
	for _, c := range p.connections {
		if c.To == taskID {
			prev = append(prev, c.From)
		}
	}

	return prev
}

// StartTasks returns the tasks of the start category.
func (p *Process) StartTasks() []task.Task {
	var start []task.Task
	for _, t := range p.tasks {
		if t.Definition().Category == core.CategoryStart {
			start = append(start, t)
		}
	}

	return start
}

// Triggers returns the lifecycle triggers fired by the given object event.
func (p *Process) Triggers(objectID, lifecycleKey string) []*tasks.Lifecycle {
	var triggers []*tasks.Lifecycle
	for _, t := range p.tasks {
		if l, ok := t.(*tasks.Lifecycle); ok && l.Matches(objectID, lifecycleKey) {
			triggers = append(triggers, l)
		}
	}

	return triggers
}

// ToObj serializes the process into the shape accepted by New.
func (p *Process) ToObj() map[string]any {
	elements := make([]map[string]any, 0, len(p.tasks))
	for _, t := range p.tasks {
		elements = append(elements, map[string]any(t.ToObj()))
	}

	connections := make([]map[string]any, 0, len(p.connections))
	for _, c := range p.connections {
		connections = append(connections, map[string]any{"from": c.From, "to": c.To})
	}

	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"label":       p.Label,
		"elements":    elements,
		"connections": connections,
	}
}

func (p *Process) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToObj())
}
