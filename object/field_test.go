package object

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestField_Value(t *testing.T) {
	f := NewStringField("f1", "Name", "name")

	require.Equal(t, "Alice", f.Value(Record{"name": "Alice"}))
	require.Nil(t, f.Value(Record{}))
	require.Nil(t, f.Value(nil))
}

func TestField_Derive(t *testing.T) {
	born := time.Date(1990, time.March, 4, 10, 0, 0, 0, time.UTC)
	record := Record{
		"uuid":  "r1",
		"name":  "Alice",
		"email": "Alice@Example.com",
		"born":  born,
		"iso":   "2001-02-03T04:05:06Z",
	}

	tests := []struct {
		name     string
		field    Field
		accessor string
		want     any
		wantErr  bool
	}{
		{"string upper", NewStringField("f1", "Name", "name"), "upper", "ALICE", false},
		{"string lower", NewStringField("f1", "Name", "name"), "lower", "alice", false},
		{"string length", NewStringField("f1", "Name", "name"), "length", 5, false},
		{"string unknown", NewStringField("f1", "Name", "name"), "reverse", nil, true},
		{"email local", NewEmailField("f2", "Email", "email"), "local", "alice", false},
		{"email domain", NewEmailField("f2", "Email", "email"), "domain", "example.com", false},
		{"email not an address", NewEmailField("f2", "Name", "name"), "domain", "", false},
		{"date from time", NewDateField("f3", "Born", "born"), "date", "1990-03-04", false},
		{"date year", NewDateField("f3", "Born", "born"), "year", 1990, false},
		{"date from string", NewDateField("f4", "Iso", "iso"), "date", "2001-02-03", false},
		{"date invalid", NewDateField("f5", "Name", "name"), "date", nil, true},
		{"date missing", NewDateField("f6", "Missing", "missing"), "year", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.Derive(record, tt.accessor)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestField_UnknownAccessor(t *testing.T) {
	_, err := NewEmailField("f2", "Email", "email").Derive(Record{}, "host")
	require.ErrorIs(t, err, ErrUnknownAccessor)
}
