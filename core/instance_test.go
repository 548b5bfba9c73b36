package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstance_InitState(t *testing.T) {
	tests := []struct {
		name      string
		existing  State
		defaults  State
		overrides State
		want      State
		written   bool
	}{
		{
			name:     "defaults only",
			defaults: State{"triggered": false},
			want:     State{"triggered": false},
			written:  true,
		},
		{
			name:      "overrides replace defaults",
			defaults:  State{"userFormID": nil, "userFormResponse": nil},
			overrides: State{"userFormID": "form-1"},
			want:      State{"userFormID": "form-1", "userFormResponse": nil},
			written:   true,
		},
		{
			name:     "existing state is kept",
			existing: State{"userFormResponse": "X"},
			defaults: State{"userFormResponse": nil},
			want:     State{"userFormResponse": "X"},
		},
		{
			name:      "existing state ignores overrides",
			existing:  State{"triggered": true},
			defaults:  State{"triggered": false},
			overrides: State{"triggered": false},
			want:      State{"triggered": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewInstance("p1")
			if tt.existing != nil {
				i.UpdateState("t1", func(s State) {
					for k, v := range tt.existing {
						s[k] = v
					}
				})
			}

			written := i.InitState("t1", tt.defaults, tt.overrides)
			require.Equal(t, tt.written, written)

			s, ok := i.State("t1")
			require.True(t, ok)
			require.Equal(t, tt.want, s)
		})
	}
}

func TestInstance_InitStateIdempotent(t *testing.T) {
	once := NewInstance("p1")
	once.InitState("t1", State{"a": 1, "b": nil}, State{"b": 2})

	twice := NewInstance("p1")
	twice.InitState("t1", State{"a": 1, "b": nil}, State{"b": 2})
	twice.InitState("t1", State{"a": 1, "b": nil}, State{"b": 2})

	s1, _ := once.State("t1")
	s2, _ := twice.State("t1")
	require.Equal(t, s1, s2)
}

func TestInstance_StateReturnsCopy(t *testing.T) {
	i := NewInstance("p1")
	i.InitState("t1", State{"a": 1}, nil)

	s, _ := i.State("t1")
	s["a"] = 2

	s, _ = i.State("t1")
	require.Equal(t, 1, s["a"])
}

func TestInstance_MissingState(t *testing.T) {
	i := NewInstance("p1")

	s, ok := i.State("unknown")
	require.False(t, ok)
	require.Nil(t, s)
}

func TestInstance_Status(t *testing.T) {
	i := NewInstance("p1")
	require.Equal(t, InstanceStatusRunning, i.Status())

	i.Complete()
	require.Equal(t, InstanceStatusCompleted, i.Status())

	i.Fail(errors.New("boom"))
	require.Equal(t, InstanceStatusFailed, i.Status())
	require.Equal(t, "boom", i.Failure())

	// A failed instance is not completed later
	i.Complete()
	require.Equal(t, InstanceStatusFailed, i.Status())
}

func TestInstance_JSON(t *testing.T) {
	i := NewInstance("p1")
	i.InitState("t1", State{"triggered": false}, nil)
	i.Complete()

	b, err := json.Marshal(i)
	require.NoError(t, err)

	var restored Instance
	require.NoError(t, json.Unmarshal(b, &restored))

	require.Equal(t, i.InstanceID, restored.InstanceID)
	require.Equal(t, "p1", restored.ProcessID)
	require.Equal(t, InstanceStatusCompleted, restored.Status())

	s, ok := restored.State("t1")
	require.True(t, ok)
	require.Equal(t, State{"triggered": false}, s)
}
