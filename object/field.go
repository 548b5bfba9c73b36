package object

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// ErrUnknownAccessor is returned by Derive when a field kind does not provide
// the requested accessor.
var ErrUnknownAccessor = errors.New("unknown field accessor")

// Record is a single row of object data, keyed by column name. The "uuid" key
// identifies the record.
type Record map[string]any

// UUID returns the unique identifier of the record, or nil if it has none.
func (r Record) UUID() any {
	return r["uuid"]
}

// Field describes one column of an object.
type Field interface {
	ID() string

	// Key is the field kind, e.g. "string" or "email".
	Key() string

	Label() string

	ColumnName() string

	// Value returns the raw value stored for this field in the record.
	Value(record Record) any

	// Derive computes a virtual value from the record using the named accessor.
	Derive(record Record, accessor string) (any, error)
}

// FieldValues is the serialized form of a field.
type FieldValues struct {
	ID         string         `mapstructure:"id"`
	Key        string         `mapstructure:"key"`
	Label      string         `mapstructure:"label"`
	ColumnName string         `mapstructure:"columnName"`
	Settings   map[string]any `mapstructure:"settings"`
}

type fieldConstructor func(values FieldValues) Field

var fieldKinds = map[string]fieldConstructor{
	StringFieldKey: func(v FieldValues) Field { return &StringField{baseField: newBaseField(v)} },
	EmailFieldKey:  func(v FieldValues) Field { return &EmailField{baseField: newBaseField(v)} },
	DateFieldKey:   func(v FieldValues) Field { return &DateField{baseField: newBaseField(v)} },
}

// NewField builds a field from its serialized values. The "key" value selects
// the field kind.
func NewField(values map[string]any) (Field, error) {
	var fv FieldValues
	if err := decode(values, &fv); err != nil {
		return nil, fmt.Errorf("decoding field: %w", err)
	}

	ctor, ok := fieldKinds[fv.Key]
	if !ok {
		return nil, fmt.Errorf("field %q: unknown field key %q", fv.ID, fv.Key)
	}

	if fv.ID == "" {
		return nil, fmt.Errorf("field of kind %q has no id", fv.Key)
	}

	return ctor(fv), nil
}

func decode(input any, out any) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}

	return d.Decode(input)
}

type baseField struct {
	id         string
	key        string
	label      string
	columnName string
	settings   map[string]any
}

func newBaseField(v FieldValues) baseField {
	label := v.Label
	if label == "" {
		if l, ok := v.Settings["label"].(string); ok {
			label = l
		}
	}

	return baseField{
		id:         v.ID,
		key:        v.Key,
		label:      label,
		columnName: v.ColumnName,
		settings:   v.Settings,
	}
}

func (f *baseField) ID() string         { return f.id }
func (f *baseField) Key() string        { return f.key }
func (f *baseField) Label() string      { return f.label }
func (f *baseField) ColumnName() string { return f.columnName }

func (f *baseField) Value(record Record) any {
	if record == nil {
		return nil
	}

	return record[f.columnName]
}

func unknownAccessor(f Field, accessor string) error {
	return fmt.Errorf("field %q (%s): %w %q", f.ID(), f.Key(), ErrUnknownAccessor, accessor)
}
