package task

import "fmt"

// Attributes is the flat attribute bag a task is serialized to and hydrated
// from.
type Attributes map[string]any

// String returns the attribute as a string, or "" if it is absent.
func (a Attributes) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
