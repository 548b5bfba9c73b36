package core

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

type InstanceStatus int

const (
	InstanceStatusRunning InstanceStatus = iota
	InstanceStatusCompleted
	InstanceStatusFailed
)

func (s InstanceStatus) String() string {
	switch s {
	case InstanceStatusRunning:
		return "running"
	case InstanceStatusCompleted:
		return "completed"
	case InstanceStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Instance is one running execution of a process definition. It carries a
// state slot per task, addressed by the task's id.
type Instance struct {
	// InstanceID is the ID of the process instance.
	InstanceID string

	// ProcessID is the ID of the process definition this instance executes.
	ProcessID string

	mu      sync.RWMutex
	status  InstanceStatus
	failure string
	states  map[string]State
}

func NewInstance(processID string) *Instance {
	return &Instance{
		InstanceID: uuid.NewString(),
		ProcessID:  processID,
		states:     make(map[string]State),
	}
}

// State returns a copy of the state slot for the given task.
func (i *Instance) State(taskID string) (State, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	s, ok := i.states[taskID]
	if !ok {
		return nil, false
	}

	return s.Clone(), true
}

// InitState writes overrides merged over defaults into the slot for taskID, but
// only when the slot does not exist yet. It returns true if the slot was written.
func (i *Instance) InitState(taskID string, defaults, overrides State) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.states[taskID]; ok {
		return false
	}

	i.states[taskID] = Merge(defaults, overrides)
	return true
}

// UpdateState runs fn against the slot of taskID, creating an empty slot if
// none exists. Only the task owning the slot should call this.
func (i *Instance) UpdateState(taskID string, fn func(State)) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s, ok := i.states[taskID]
	if !ok {
		s = State{}
		i.states[taskID] = s
	}

	fn(s)
}

func (i *Instance) Status() InstanceStatus {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.status
}

// Failure returns the message recorded when the instance failed.
func (i *Instance) Failure() string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.failure
}

func (i *Instance) Complete() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status == InstanceStatusRunning {
		i.status = InstanceStatusCompleted
	}
}

func (i *Instance) Fail(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = InstanceStatusFailed
	if err != nil {
		i.failure = err.Error()
	}
}

type instanceSnapshot struct {
	InstanceID string           `json:"instance_id,omitempty"`
	ProcessID  string           `json:"process_id,omitempty"`
	Status     InstanceStatus   `json:"status"`
	Failure    string           `json:"failure,omitempty"`
	States     map[string]State `json:"states"`
}

func (i *Instance) MarshalJSON() ([]byte, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return json.Marshal(&instanceSnapshot{
		InstanceID: i.InstanceID,
		ProcessID:  i.ProcessID,
		Status:     i.status,
		Failure:    i.failure,
		States:     i.states,
	})
}

func (i *Instance) UnmarshalJSON(b []byte) error {
	var s instanceSnapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	i.InstanceID = s.InstanceID
	i.ProcessID = s.ProcessID
	i.status = s.Status
	i.failure = s.Failure
	i.states = s.States
	if i.states == nil {
		i.states = make(map[string]State)
	}

	return nil
}
