package object

import (
	"fmt"
	"time"
)

const DateFieldKey = "date"

// DateField stores a point in time. Values are either time.Time or RFC 3339
// strings.
type DateField struct {
	baseField
}

func NewDateField(id, label, columnName string) *DateField {
	return &DateField{baseField{id: id, key: DateFieldKey, label: label, columnName: columnName}}
}

// Derive supports the accessors "date" (YYYY-MM-DD), "year" and "iso".
func (f *DateField) Derive(record Record, accessor string) (any, error) {
	t, err := f.time(record)
	if err != nil {
		return nil, err
	}

	switch accessor {
	case "date":
		return t.Format(time.DateOnly), nil
	case "year":
		return t.Year(), nil
	case "iso":
		return t.Format(time.RFC3339), nil
	}

	return nil, unknownAccessor(f, accessor)
}

func (f *DateField) time(record Record) (time.Time, error) {
	switch v := f.Value(record).(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("field %q: parsing date: %w", f.id, err)
		}
		return t, nil
	case nil:
		return time.Time{}, fmt.Errorf("field %q: no value", f.id)
	default:
		return time.Time{}, fmt.Errorf("field %q: unsupported date value %T", f.id, v)
	}
}
