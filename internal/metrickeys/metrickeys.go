package metrickeys

const (
	Prefix = "process."

	InstanceStarted  = Prefix + "instance.started"
	InstanceFinished = Prefix + "instance.finished"

	TaskExecuted  = Prefix + "task.executed"
	TaskSuspended = Prefix + "task.suspended"
	TaskRetried   = Prefix + "task.retried"
	TaskDuration  = Prefix + "task.duration"
)

// Tag names
const (
	TaskType = "task_type"

	// Outcome of a task execution: completed, suspended or failed
	Outcome = "outcome"

	// Status of a finished instance
	Status = "status"
)
