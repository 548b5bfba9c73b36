package log

const (
	NamespaceKey = "process"

	ProcessIDKey      = NamespaceKey + ".id"
	InstanceIDKey     = NamespaceKey + ".instance.id"
	InstanceStatusKey = NamespaceKey + ".instance.status"

	TaskIDKey    = NamespaceKey + ".task.id"
	TaskTypeKey  = NamespaceKey + ".task.type"
	TaskLabelKey = NamespaceKey + ".task.label"
	NextTasksKey = NamespaceKey + ".task.next"

	DataKeyKey   = NamespaceKey + ".data.key"
	ObjectIDKey  = NamespaceKey + ".object.id"
	LifecycleKey = NamespaceKey + ".lifecycle.key"

	AttemptKey = NamespaceKey + ".attempt"

	ErrorKey      = "error"
	StacktraceKey = "stacktrace"
)
