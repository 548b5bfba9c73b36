package core

import (
	"encoding/json"
	"fmt"
)

// Category controls where a task may be placed in a process diagram. It is
// advisory only and never enforced while a process runs.
type Category int

const (
	CategoryNone Category = iota
	CategoryStart
	CategoryGateway
	CategoryTask
	CategoryEnd
)

func (c Category) String() string {
	switch c {
	case CategoryStart:
		return "start"
	case CategoryGateway:
		return "gateway"
	case CategoryTask:
		return "task"
	case CategoryEnd:
		return "end"
	default:
		return ""
	}
}

// ParseCategory parses the serialized form of a category. The empty string and
// "null" map to CategoryNone.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "", "null":
		return CategoryNone, nil
	case "start":
		return CategoryStart, nil
	case "gateway":
		return CategoryGateway, nil
	case "task":
		return CategoryTask, nil
	case "end":
		return CategoryEnd, nil
	}

	return CategoryNone, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c == CategoryNone {
		return []byte("null"), nil
	}

	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == nil {
		*c = CategoryNone
		return nil
	}

	parsed, err := ParseCategory(*s)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}
