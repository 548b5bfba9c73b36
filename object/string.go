package object

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const StringFieldKey = "string"

// StringField is a short, single line text value.
type StringField struct {
	baseField
}

func NewStringField(id, label, columnName string) *StringField {
	return &StringField{baseField{id: id, key: StringFieldKey, label: label, columnName: columnName}}
}

// Derive supports the accessors "upper", "lower" and "length".
func (f *StringField) Derive(record Record, accessor string) (any, error) {
	v := f.Value(record)

	var s string
	if v != nil {
		s = fmt.Sprint(v)
	}

	switch accessor {
	case "upper":
		return strings.ToUpper(s), nil
	case "lower":
		return strings.ToLower(s), nil
	case "length":
		return utf8.RuneCountInString(s), nil
	}

	return nil, unknownAccessor(f, accessor)
}
