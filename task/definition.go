package task

import (
	"slices"

	"github.com/appbuilder/abcore/core"
)

// Definition is the static descriptor of a task type.
type Definition struct {
	// Key uniquely identifies the task type, e.g. "Approval".
	Key string

	// Icon is a display hint only.
	Icon string

	Category core.Category

	// Fields are the settings a task of this type persists on itself.
	Fields Schema
}

// FieldSpec declares a single setting and the value it takes when absent.
type FieldSpec struct {
	Name    string
	Default any
}

// Schema is the ordered list of settings a task type declares.
type Schema []FieldSpec

// Names returns the declared field names in order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}

	return names
}

func (s Schema) Has(name string) bool {
	return slices.ContainsFunc(s, func(f FieldSpec) bool {
		return f.Name == name
	})
}

// Default returns a copy of the declared default for name, or nil if the
// field is not declared.
func (s Schema) Default(name string) any {
	for _, f := range s {
		if f.Name == name {
			return cloneDefault(f.Default)
		}
	}

	return nil
}

// hydrate returns the declared settings from attrs, falling back to the
// declared defaults for absent keys.
func (s Schema) hydrate(attrs Attributes) Attributes {
	values := make(Attributes, len(s))
	for _, f := range s {
		if v, ok := attrs[f.Name]; ok && v != nil {
			values[f.Name] = v
		} else {
			values[f.Name] = cloneDefault(f.Default)
		}
	}

	return values
}

// cloneDefault copies slice and map defaults so tasks never share them.
func cloneDefault(v any) any {
	switch d := v.(type) {
	case []string:
		return slices.Clone(d)
	case []any:
		return slices.Clone(d)
	case map[string]any:
		m := make(map[string]any, len(d))
		for k, v := range d {
			m[k] = v
		}
		return m
	default:
		return v
	}
}
