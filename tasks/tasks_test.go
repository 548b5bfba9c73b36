package tasks

import (
	"testing"

	"github.com/appbuilder/abcore/object"
	"github.com/appbuilder/abcore/task"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) Report(err error) {
	m.Called(err)
}

func newEnv(objects object.Registry, reporter *mockReporter) *task.Env {
	return task.ApplyOptions(
		task.WithObjects(objects),
		task.WithReporter(reporter),
	)
}

func TestTasks_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		new   func(env *task.Env) task.Task
		attrs task.Attributes
	}{
		{
			name: "end",
			new:  NewEnd,
			attrs: task.Attributes{
				"id": "e1", "name": "end", "label": "Done", "type": EndType,
			},
		},
		{
			name: "approval",
			new:  NewApproval,
			attrs: task.Attributes{
				"id": "a1", "name": "approve", "label": "Manager approval", "type": ApprovalType,
				"who": "role.manager", "toUsers": []string{"u1", "u2"}, "userFormID": "form-1",
			},
		},
		{
			name: "lifecycle",
			new:  NewLifecycle,
			attrs: task.Attributes{
				"id": "l1", "name": "created", "label": "Person created", "type": LifecycleType,
				"objectID": "o1", "lifecycleKey": "added", "triggerKey": "o1.added",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(object.NewMemoryRegistry(), &mockReporter{})

			first := tt.new(env)
			require.NoError(t, first.FromValues(tt.attrs))

			obj := first.ToObj()
			for _, k := range []string{"id", "name", "type", "label"} {
				require.Contains(t, obj, k)
			}
			for _, k := range first.Definition().Fields.Names() {
				require.Contains(t, obj, k)
			}

			second := tt.new(env)
			require.NoError(t, second.FromValues(obj))
			require.Equal(t, obj, second.ToObj())
			require.Equal(t, first.ID(), second.ID())
			require.Equal(t, first.Label(), second.Label())
		})
	}
}
