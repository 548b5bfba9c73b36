package tasks

import (
	"context"
	"testing"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/object"
	"github.com/appbuilder/abcore/task"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func personObject() *object.Object {
	return &object.Object{
		ID:    "o1",
		Label: "Person",
		Fields: []object.Field{
			object.NewStringField("f1", "Name", "name"),
			object.NewEmailField("f2", "Email", "email"),
		},
	}
}

func newLifecycleTask(t *testing.T, objects object.Registry, reporter *mockReporter, objectID string) *Lifecycle {
	l := NewLifecycle(newEnv(objects, reporter)).(*Lifecycle)
	require.NoError(t, l.FromValues(task.Attributes{
		"id":           "l1",
		"label":        "Created",
		"objectID":     objectID,
		"lifecycleKey": "added",
	}))
	return l
}

func TestLifecycle_Matches(t *testing.T) {
	l := newLifecycleTask(t, object.NewMemoryRegistry(), &mockReporter{}, "o1")

	require.True(t, l.Matches("o1", "added"))
	require.False(t, l.Matches("o1", "deleted"))
	require.False(t, l.Matches("o2", "added"))
}

func TestLifecycle_Do(t *testing.T) {
	ctx := context.Background()
	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), &mockReporter{}, "o1")
	inst := core.NewInstance("p1")

	done, err := l.Do(ctx, inst)
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, core.State{"data": nil}, l.MyState(inst))

	l.Capture(inst, object.Record{"uuid": "r1", "name": "Alice"})

	done, err = l.Do(ctx, inst)
	require.NoError(t, err)
	require.True(t, done)
}

func TestLifecycle_ProcessData(t *testing.T) {
	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), &mockReporter{}, "o1")
	inst := core.NewInstance("p1")

	// No captured data yet
	require.Nil(t, l.ProcessData(inst, "l1.uuid"))

	l.Capture(inst, object.Record{"uuid": "r1", "name": "Alice", "email": "alice@example.com"})

	tests := []struct {
		key  string
		want any
	}{
		{"l1.uuid", "r1"},
		{"l1.f1", "Alice"},
		{"l1.f1.upper", "ALICE"},
		{"l1.f2.domain", "example.com"},
		{"other.f1", nil},
		{"other.uuid", nil},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			require.Equal(t, tt.want, l.ProcessData(inst, tt.key))
		})
	}
}

func TestLifecycle_CapturedDataIsIsolated(t *testing.T) {
	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), &mockReporter{}, "o1")
	inst := core.NewInstance("p1")

	record := object.Record{"uuid": "r1", "name": "Alice"}
	l.Capture(inst, record)

	record["name"] = "Mallory"
	require.Equal(t, "Alice", l.ProcessData(inst, "l1.f1"))

	s, ok := inst.State("l1")
	require.True(t, ok)
	s["data"].(map[string]any)["name"] = "Eve"
	require.Equal(t, "Alice", l.ProcessData(inst, "l1.f1"))

	l.MyState(inst)["data"].(map[string]any)["uuid"] = "r2"
	require.Equal(t, "r1", l.ProcessData(inst, "l1.uuid"))
}

func TestLifecycle_ProcessDataAfterSnapshot(t *testing.T) {
	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), &mockReporter{}, "o1")
	inst := core.NewInstance("p1")

	// State restored from a snapshot holds plain maps
	inst.UpdateState("l1", func(s core.State) {
		s["data"] = map[string]any{"uuid": "r1", "name": "Alice"}
	})

	require.Equal(t, "r1", l.ProcessData(inst, "l1.uuid"))
	require.Equal(t, "Alice", l.ProcessData(inst, "l1.f1"))
}

func TestLifecycle_ProcessDataUnknownField(t *testing.T) {
	reporter := &mockReporter{}
	reporter.On("Report", mock.MatchedBy(func(err error) bool {
		return err != nil
	})).Once()

	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), reporter, "o1")
	inst := core.NewInstance("p1")
	l.Capture(inst, object.Record{"uuid": "r1", "name": "Alice"})

	require.Nil(t, l.ProcessData(inst, "l1.f9"))
	reporter.AssertExpectations(t)
}

func TestLifecycle_ProcessDataUnknownAccessor(t *testing.T) {
	reporter := &mockReporter{}
	reporter.On("Report", mock.MatchedBy(func(err error) bool {
		return err != nil
	})).Once()

	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), reporter, "o1")
	inst := core.NewInstance("p1")
	l.Capture(inst, object.Record{"uuid": "r1", "name": "Alice"})

	require.Nil(t, l.ProcessData(inst, "l1.f1.reverse"))
	reporter.AssertExpectations(t)
}

func TestLifecycle_ProcessDataFields(t *testing.T) {
	l := newLifecycleTask(t, object.NewMemoryRegistry(personObject()), &mockReporter{}, "o1")

	fields := l.ProcessDataFields()
	require.Len(t, fields, 3)

	require.Equal(t, "l1.f1", fields[0].Key)
	require.Equal(t, "Created->Person->Name", fields[0].Label)
	require.Equal(t, "f1", fields[0].Field.ID())

	require.Equal(t, "l1.f2", fields[1].Key)

	require.Equal(t, "l1.uuid", fields[2].Key)
	require.Equal(t, "Created->Person", fields[2].Label)
	require.Nil(t, fields[2].Field)
	require.Equal(t, "o1", fields[2].Object.ID)
}

func TestLifecycle_ProcessDataFieldsUnknownObject(t *testing.T) {
	reporter := &mockReporter{}
	reporter.On("Report", mock.MatchedBy(func(err error) bool {
		return err != nil
	})).Once()

	l := newLifecycleTask(t, object.NewMemoryRegistry(), reporter, "missing")

	require.Nil(t, l.ProcessDataFields())
	reporter.AssertExpectations(t)
	reporter.AssertNumberOfCalls(t, "Report", 1)
}

func TestLifecycle_ProcessDataFieldsNoObject(t *testing.T) {
	l := newLifecycleTask(t, object.NewMemoryRegistry(), &mockReporter{}, "")

	require.Nil(t, l.ProcessDataFields())
	require.Nil(t, l.ProcessDataObjects())
}

func TestLifecycle_ProcessDataObjects(t *testing.T) {
	o := personObject()
	l := newLifecycleTask(t, object.NewMemoryRegistry(o), &mockReporter{}, "o1")

	objects := l.ProcessDataObjects()
	require.Len(t, objects, 1)
	require.Same(t, o, objects[0])
}

func TestLifecycle_EmptyEnv(t *testing.T) {
	l := NewLifecycle(&task.Env{}).(*Lifecycle)
	require.NoError(t, l.FromValues(task.Attributes{"id": "l1", "objectID": "o1", "lifecycleKey": "added"}))

	require.NotPanics(t, func() {
		require.Nil(t, l.ProcessDataFields())
		require.Nil(t, l.ProcessDataObjects())
	})

	inst := core.NewInstance("p1")
	l.Capture(inst, object.Record{"uuid": "r1"})
	require.Nil(t, l.ProcessData(inst, "l1.f1"))
}
