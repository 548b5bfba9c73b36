package task

import (
	"context"
	"fmt"
	"maps"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
)

// Base implements the parts of Task shared by all task types. Task types
// embed it and override what they need.
type Base struct {
	Env *Env

	def Definition
	typ string

	id    string
	name  string
	label string

	settings Attributes
}

func NewBase(def Definition, typ string, env *Env) *Base {
	if env == nil {
		env = ApplyOptions()
	} else {
		env.setDefaults()
	}

	return &Base{
		Env:      env,
		def:      def,
		typ:      typ,
		settings: def.Fields.hydrate(nil),
	}
}

func (b *Base) ID() string             { return b.id }
func (b *Base) Name() string           { return b.name }
func (b *Base) Label() string          { return b.label }
func (b *Base) Type() string           { return b.typ }
func (b *Base) Definition() Definition { return b.def }

// FromValues sets the common attributes and the settings declared by the
// task's schema. A missing id is replaced by a new uuid.
func (b *Base) FromValues(attrs Attributes) error {
	b.id = attrs.String("id")
	if b.id == "" {
		b.id = uuid.NewString()
	}

	b.name = attrs.String("name")
	b.label = attrs.String("label")
	if b.label == "" {
		b.label = b.name
	}

	if t := attrs.String("type"); t != "" {
		b.typ = t
	}

	b.settings = b.def.Fields.hydrate(attrs)

	return nil
}

// ToObj returns {id, name, type, label} plus every declared setting.
func (b *Base) ToObj() Attributes {
	data := Attributes{
		"id":    b.id,
		"name":  b.name,
		"type":  b.typ,
		"label": b.label,
	}

	for _, name := range b.def.Fields.Names() {
		data[name] = cloneDefault(b.settings[name])
	}

	return data
}

// Setting returns the value of a declared setting.
func (b *Base) Setting(name string) any {
	return b.settings[name]
}

// Settings returns a copy of all declared settings.
func (b *Base) Settings() Attributes {
	return maps.Clone(b.settings)
}

// Decode decodes the declared settings into out, a pointer to a struct using
// mapstructure tags.
func (b *Base) Decode(out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}

	if err := d.Decode(map[string]any(b.settings)); err != nil {
		return fmt.Errorf("task %q (%s): decoding settings: %w", b.id, b.typ, err)
	}

	return nil
}

// InitState initializes the state with no task specific defaults.
func (b *Base) InitState(inst *core.Instance, overrides core.State) {
	b.InitStateWith(inst, nil, overrides)
}

// InitStateWith writes overrides merged over defaults into this task's state
// slot, unless the slot already exists.
func (b *Base) InitStateWith(inst *core.Instance, defaults, overrides core.State) {
	if inst.InitState(b.id, defaults, overrides) {
		b.Env.Logger.Debug("Initialized task state",
			log.InstanceIDKey, inst.InstanceID,
			log.TaskIDKey, b.id)
	}
}

// MyState returns a copy of this task's state slot. It is empty if the task
// has not been reached yet.
func (b *Base) MyState(inst *core.Instance) core.State {
	s, ok := inst.State(b.id)
	if !ok {
		return core.State{}
	}

	return s
}

// UpdateMyState mutates this task's state slot.
func (b *Base) UpdateMyState(inst *core.Instance, fn func(core.State)) {
	inst.UpdateState(b.id, fn)
}

// Do completes immediately.
func (b *Base) Do(ctx context.Context, inst *core.Instance) (bool, error) {
	return true, nil
}

// NextTasks returns the tasks connected after this one.
func (b *Base) NextTasks(inst *core.Instance) []string {
	if b.Env.Graph == nil {
		return []string{}
	}

	return b.Env.Graph.Outgoing(b.id)
}

func (b *Base) ProcessDataFields() []DataField {
	return nil
}

func (b *Base) ProcessData(inst *core.Instance, key string) any {
	return nil
}
