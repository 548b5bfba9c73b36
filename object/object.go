package object

import (
	"fmt"
	"slices"
)

// Object is a data object definition: a label and an ordered list of fields.
type Object struct {
	ID     string
	Label  string
	Fields []Field
}

type objectValues struct {
	ID     string           `mapstructure:"id"`
	Label  string           `mapstructure:"label"`
	Fields []map[string]any `mapstructure:"fields"`
}

// NewObject builds an object from its serialized values.
func NewObject(values map[string]any) (*Object, error) {
	var ov objectValues
	if err := decode(values, &ov); err != nil {
		return nil, fmt.Errorf("decoding object: %w", err)
	}

	if ov.ID == "" {
		return nil, fmt.Errorf("object %q has no id", ov.Label)
	}

	o := &Object{
		ID:    ov.ID,
		Label: ov.Label,
	}

	for _, fv := range ov.Fields {
		f, err := NewField(fv)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", ov.ID, err)
		}

		o.Fields = append(o.Fields, f)
	}

	return o, nil
}

// FieldByID returns the field with the given id, or nil.
func (o *Object) FieldByID(id string) Field {
	i := slices.IndexFunc(o.Fields, func(f Field) bool {
		return f.ID() == id
	})
	if i < 0 {
		return nil
	}

	return o.Fields[i]
}
