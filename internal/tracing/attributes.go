package tracing

const (
	ProcessID         = "process.id"
	ProcessInstanceID = "process.instance_id"

	TaskID   = "process_task.id"
	TaskType = "process_task.type"
	TaskKey  = "process_task.key"

	Attempts  = "process_task.attempts"
	Completed = "process_task.completed"
)
