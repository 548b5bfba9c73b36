package tasks

import (
	"context"
	"fmt"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/log"
	"github.com/appbuilder/abcore/task"
)

const ApprovalType = "process.task.user.approval"

var ApprovalDefinition = task.Definition{
	Key:      "Approval",
	Icon:     "check-circle",
	Category: core.CategoryNone,
	Fields: task.Schema{
		{Name: "who", Default: ""},
		{Name: "toUsers", Default: []string{}},
		{Name: "userFormID", Default: ""},
		{Name: "userFormResponse", Default: nil},
	},
}

// ApprovalConfig is the typed view of an approval task's settings.
type ApprovalConfig struct {
	// Who designates the approver, e.g. a role id.
	Who string `mapstructure:"who"`

	ToUsers []string `mapstructure:"toUsers"`

	UserFormID string `mapstructure:"userFormID"`

	UserFormResponse any `mapstructure:"userFormResponse"`
}

// Approval suspends the process until a person responds to a form.
type Approval struct {
	*task.Base

	config ApprovalConfig
}

var _ task.Task = (*Approval)(nil)

func NewApproval(env *task.Env) task.Task {
	return &Approval{Base: task.NewBase(ApprovalDefinition, ApprovalType, env)}
}

func (a *Approval) FromValues(attrs task.Attributes) error {
	if err := a.Base.FromValues(attrs); err != nil {
		return err
	}

	var cfg ApprovalConfig
	if err := a.Decode(&cfg); err != nil {
		return err
	}

	a.config = cfg
	return nil
}

func (a *Approval) Config() ApprovalConfig {
	return a.config
}

func (a *Approval) InitState(inst *core.Instance, overrides core.State) {
	a.InitStateWith(inst, core.State{
		"userFormID":       nil,
		"userFormResponse": nil,
	}, overrides)
}

// Do completes once a response has been submitted.
func (a *Approval) Do(ctx context.Context, inst *core.Instance) (bool, error) {
	a.InitState(inst, nil)

	if a.MyState(inst)["userFormResponse"] == nil {
		a.Env.Logger.DebugContext(ctx, "Waiting for approval",
			log.InstanceIDKey, inst.InstanceID,
			log.TaskIDKey, a.ID())
		return false, nil
	}

	return true, nil
}

// Submit records a person's response to the approval form. The engine is
// expected to call Do again afterwards.
func (a *Approval) Submit(inst *core.Instance, formID string, response any) error {
	if response == nil {
		return fmt.Errorf("approval %q: %w", a.ID(), ErrEmptyResponse)
	}

	a.InitState(inst, nil)
	a.UpdateMyState(inst, func(s core.State) {
		s["userFormID"] = formID
		s["userFormResponse"] = response
	})

	return nil
}

func (a *Approval) ProcessDataFields() []task.DataField {
	return []task.DataField{
		{
			Key:   task.Key(a.ID(), "userFormResponse"),
			Label: a.Label() + "->Response",
		},
	}
}

// ProcessData returns the value of a state key of this task, e.g.
// "<id>.userFormResponse". It returns nil for keys of other tasks.
func (a *Approval) ProcessData(inst *core.Instance, key string) any {
	dk := task.ParseKey(key)
	if dk.TaskID != a.ID() {
		return nil
	}

	return a.MyState(inst)[dk.FieldRef]
}
