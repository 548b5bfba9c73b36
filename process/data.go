package process

import (
	"slices"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/object"
	"github.com/appbuilder/abcore/task"
)

// ProcessData resolves a data key against the task it addresses. It returns
// nil if no task provides a value for the key.
func (p *Process) ProcessData(inst *core.Instance, key string) any {
	dk := task.ParseKey(key)

	t, ok := p.byID[dk.TaskID]
	if !ok {
		return nil
	}

	return t.ProcessData(inst, key)
}

// upstream returns the tasks that can run before taskID, in definition order.
// An empty taskID selects every task.
func (p *Process) upstream(taskID string) []task.Task {
	if taskID == "" {
		return slices.Clone(p.tasks)
	}

	seen := map[string]bool{taskID: true}
	queue := p.Incoming(taskID)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if seen[id] {
			continue
		}
		seen[id] = true

		queue = append(queue, p.Incoming(id)...)
	}

	var upstream []task.Task
	for _, t := range p.tasks {
		if t.ID() != taskID && seen[t.ID()] {
			upstream = append(upstream, t)
		}
	}

	return upstream
}

// DataFields lists the values available to taskID from the tasks that run
// before it. Tasks that cannot enumerate their fields are skipped.
func (p *Process) DataFields(taskID string) []task.DataField {
	var fields []task.DataField
	for _, t := range p.upstream(taskID) {
		fields = append(fields, t.ProcessDataFields()...)
	}

	return fields
}

// DataObjects lists the data objects available to taskID from the tasks that
// run before it.
func (p *Process) DataObjects(taskID string) []*object.Object {
	var objects []*object.Object
	for _, t := range p.upstream(taskID) {
		if op, ok := t.(task.ObjectProvider); ok {
			objects = append(objects, op.ProcessDataObjects()...)
		}
	}

	return objects
}
