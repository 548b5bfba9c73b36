package task

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want DataKey
	}{
		{"t1", DataKey{TaskID: "t1"}},
		{"t1.uuid", DataKey{TaskID: "t1", FieldRef: "uuid"}},
		{"t1.f1.upper", DataKey{TaskID: "t1", FieldRef: "f1", Accessor: "upper"}},
		{"t1.f1.a.b", DataKey{TaskID: "t1", FieldRef: "f1", Accessor: "a.b"}},
		{"", DataKey{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := ParseKey(tt.key)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.key, got.String())
		})
	}
}

func TestKey(t *testing.T) {
	require.Equal(t, "t1.userFormResponse", Key("t1", "userFormResponse"))
	require.Equal(t, "t1.f1.upper", Key("t1", "f1", "upper"))
	require.Equal(t, "t1.f1", Key("t1", "f1", ""))
}
