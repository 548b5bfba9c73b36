package tester

import "time"

type EventKind int

const (
	EventTriggered EventKind = iota
	EventCompleted
	EventSuspended
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventTriggered:
		return "triggered"
	case EventCompleted:
		return "completed"
	case EventSuspended:
		return "suspended"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event records one step of a process instance run by the tester.
type Event struct {
	TaskID string
	Type   string
	Kind   EventKind
	At     time.Time

	// Attempts is the number of times Do was called for this step.
	Attempts int

	Error string
}
