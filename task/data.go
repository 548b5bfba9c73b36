package task

import (
	"strings"

	"github.com/appbuilder/abcore/object"
)

// DataField is a value a task makes available to other tasks of the process.
type DataField struct {
	// Key addresses the value, "<task id>.<field>[.<accessor>]".
	Key string

	// Label is a human readable path, e.g. "Trigger->Person->Name".
	Label string

	// Field and Object are set when the value originates from object data.
	Field  object.Field
	Object *object.Object
}

// DataKey is a parsed data key.
type DataKey struct {
	TaskID   string
	FieldRef string
	Accessor string
}

// ParseKey splits a data key on its first two dots. Any remaining dots belong
// to the accessor.
func ParseKey(key string) DataKey {
	parts := strings.SplitN(key, ".", 3)

	var dk DataKey
	dk.TaskID = parts[0]
	if len(parts) > 1 {
		dk.FieldRef = parts[1]
	}
	if len(parts) > 2 {
		dk.Accessor = parts[2]
	}

	return dk
}

func (k DataKey) String() string {
	return Key(k.TaskID, k.FieldRef, k.Accessor)
}

// Key joins the non-empty parts of a data key.
func Key(taskID string, parts ...string) string {
	key := taskID
	for _, p := range parts {
		if p == "" {
			continue
		}
		key += "." + p
	}

	return key
}
