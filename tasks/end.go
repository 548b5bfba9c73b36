package tasks

import (
	"context"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/log"
	"github.com/appbuilder/abcore/task"
)

const EndType = "process.end"

var EndDefinition = task.Definition{
	Key:      "End",
	Icon:     "stop",
	Category: core.CategoryEnd,
}

// End terminates a process. It never has successors.
type End struct {
	*task.Base
}

var _ task.Task = (*End)(nil)

func NewEnd(env *task.Env) task.Task {
	return &End{Base: task.NewBase(EndDefinition, EndType, env)}
}

func (e *End) InitState(inst *core.Instance, overrides core.State) {
	e.InitStateWith(inst, core.State{"triggered": false}, overrides)
}

// Do records that the end event was reached and completes the instance.
func (e *End) Do(ctx context.Context, inst *core.Instance) (bool, error) {
	e.InitState(inst, nil)
	e.UpdateMyState(inst, func(s core.State) {
		s["triggered"] = true
	})

	inst.Complete()

	e.Env.Logger.InfoContext(ctx, "End event reached",
		log.InstanceIDKey, inst.InstanceID,
		log.TaskIDKey, e.ID(),
		log.TaskLabelKey, e.Label())

	return true, nil
}

func (e *End) NextTasks(inst *core.Instance) []string {
	return []string{}
}
