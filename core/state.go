package core

// State is the runtime state of a single task within a process instance.
type State map[string]any

// Clone returns a deep copy of the state. Nested maps and slices are copied so
// the clone never shares them with the instance. A nil state clones to nil.
func (s State) Clone() State {
	if s == nil {
		return nil
	}

	return State(cloneMap(s))
}

// Merge returns a new state with overrides applied on top of defaults.
func Merge(defaults, overrides State) State {
	merged := make(State, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = cloneValue(v)
	}
	for k, v := range overrides {
		merged[k] = cloneValue(v)
	}

	return merged
}

func cloneMap(m map[string]any) map[string]any {
	c := make(map[string]any, len(m))
	for k, v := range m {
		c[k] = cloneValue(v)
	}

	return c
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case State:
		if v == nil {
			return v
		}
		return State(cloneMap(v))
	case map[string]any:
		if v == nil {
			return v
		}
		return cloneMap(v)
	case []any:
		if v == nil {
			return v
		}
		c := make([]any, len(v))
		for i, e := range v {
			c[i] = cloneValue(e)
		}
		return c
	case []string:
		if v == nil {
			return v
		}
		return append([]string(nil), v...)
	default:
		return v
	}
}
