package tasks

import (
	"context"
	"fmt"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/log"
	"github.com/appbuilder/abcore/object"
	"github.com/appbuilder/abcore/task"
)

const LifecycleType = "trigger"

var LifecycleDefinition = task.Definition{
	Key:      "TriggerLifecycle",
	Icon:     "key",
	Category: core.CategoryStart,
	Fields: task.Schema{
		{Name: "objectID", Default: ""},
		{Name: "lifecycleKey", Default: ""},
		{Name: "triggerKey", Default: ""},
	},
}

type LifecycleConfig struct {
	ObjectID     string `mapstructure:"objectID"`
	LifecycleKey string `mapstructure:"lifecycleKey"`

	// TriggerKey is the key external events are published under.
	TriggerKey string `mapstructure:"triggerKey"`
}

// Lifecycle starts a process when a record of an object goes through a
// lifecycle event, e.g. it is created. The captured record is available to
// the other tasks of the process.
type Lifecycle struct {
	*task.Base

	config LifecycleConfig
}

var (
	_ task.Task           = (*Lifecycle)(nil)
	_ task.ObjectProvider = (*Lifecycle)(nil)
)

func NewLifecycle(env *task.Env) task.Task {
	return &Lifecycle{Base: task.NewBase(LifecycleDefinition, LifecycleType, env)}
}

func (l *Lifecycle) FromValues(attrs task.Attributes) error {
	if err := l.Base.FromValues(attrs); err != nil {
		return err
	}

	var cfg LifecycleConfig
	if err := l.Decode(&cfg); err != nil {
		return err
	}

	l.config = cfg
	return nil
}

func (l *Lifecycle) Config() LifecycleConfig {
	return l.config
}

// Matches reports whether an event for the given object and lifecycle key
// fires this trigger.
func (l *Lifecycle) Matches(objectID, lifecycleKey string) bool {
	return l.config.ObjectID != "" &&
		l.config.ObjectID == objectID &&
		l.config.LifecycleKey == lifecycleKey
}

func (l *Lifecycle) InitState(inst *core.Instance, overrides core.State) {
	l.InitStateWith(inst, core.State{"data": nil}, overrides)
}

// Capture stores a copy of the record of the event that fired this trigger.
func (l *Lifecycle) Capture(inst *core.Instance, record object.Record) {
	data := map[string]any(core.State(record).Clone())

	l.InitState(inst, nil)
	l.UpdateMyState(inst, func(s core.State) {
		s["data"] = data
	})
}

// Do completes once an event record has been captured.
func (l *Lifecycle) Do(ctx context.Context, inst *core.Instance) (bool, error) {
	l.InitState(inst, nil)

	return l.data(inst) != nil, nil
}

func (l *Lifecycle) data(inst *core.Instance) object.Record {
	switch d := l.MyState(inst)["data"].(type) {
	case object.Record:
		return d
	case map[string]any:
		return object.Record(d)
	default:
		return nil
	}
}

func (l *Lifecycle) resolveObject() *object.Object {
	if l.config.ObjectID == "" {
		return nil
	}

	o := l.Env.Objects.ObjectByID(l.config.ObjectID)
	if o == nil {
		l.Env.Reporter.Report(fmt.Errorf("lifecycle trigger %q: could not find object %q: %w",
			l.ID(), l.config.ObjectID, ErrObjectNotFound))
	}

	return o
}

// ProcessDataFields lists one entry per field of the trigger's object plus an
// entry for the record's uuid. It returns nil if the object is not set or
// cannot be found.
func (l *Lifecycle) ProcessDataFields() []task.DataField {
	o := l.resolveObject()
	if o == nil {
		return nil
	}

	fields := make([]task.DataField, 0, len(o.Fields)+1)
	for _, f := range o.Fields {
		fields = append(fields, task.DataField{
			Key:    task.Key(l.ID(), f.ID()),
			Label:  fmt.Sprintf("%s->%s->%s", l.Label(), o.Label, f.Label()),
			Field:  f,
			Object: o,
		})
	}

	fields = append(fields, task.DataField{
		Key:    task.Key(l.ID(), "uuid"),
		Label:  fmt.Sprintf("%s->%s", l.Label(), o.Label),
		Object: o,
	})

	return fields
}

// ProcessData resolves "<id>.uuid", "<id>.<field id>" and
// "<id>.<field id>.<accessor>" against the captured record.
func (l *Lifecycle) ProcessData(inst *core.Instance, key string) any {
	dk := task.ParseKey(key)
	if dk.TaskID != l.ID() {
		return nil
	}

	record := l.data(inst)
	if record == nil {
		return nil
	}

	if dk.FieldRef == "uuid" {
		return record.UUID()
	}

	o := l.resolveObject()
	if o == nil {
		return nil
	}

	f := o.FieldByID(dk.FieldRef)
	if f == nil {
		l.Env.Reporter.Report(fmt.Errorf("lifecycle trigger %q: object %q has no field %q: %w",
			l.ID(), o.ID, dk.FieldRef, ErrFieldNotFound))
		return nil
	}

	if dk.Accessor == "" {
		return f.Value(record)
	}

	v, err := f.Derive(record, dk.Accessor)
	if err != nil {
		l.Env.Reporter.Report(fmt.Errorf("lifecycle trigger %q: %w", l.ID(), err))
		l.Env.Logger.Debug("Could not derive value",
			log.TaskIDKey, l.ID(),
			log.DataKeyKey, key)
		return nil
	}

	return v
}

// ProcessDataObjects returns the trigger's object, or nil if it is not set or
// cannot be found.
func (l *Lifecycle) ProcessDataObjects() []*object.Object {
	o := l.resolveObject()
	if o == nil {
		return nil
	}

	return []*object.Object{o}
}
