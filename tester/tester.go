package tester

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/appbuilder/abcore/core"
	"github.com/appbuilder/abcore/internal/metrickeys"
	"github.com/appbuilder/abcore/internal/processerrors"
	"github.com/appbuilder/abcore/internal/tracing"
	"github.com/appbuilder/abcore/log"
	"github.com/appbuilder/abcore/metrics"
	"github.com/appbuilder/abcore/object"
	"github.com/appbuilder/abcore/process"
	"github.com/appbuilder/abcore/task"
	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "abcore-process"

var ErrInstanceNotRunning = errors.New("process instance is not running")

// ProcessTester drives a single process instance in memory. Tasks run one at
// a time; a task whose Do returns false stays suspended until Resume is called.
type ProcessTester struct {
	p       *process.Process
	inst    *core.Instance
	options options
	logger  *slog.Logger
	tracer  trace.Tracer

	mu        sync.Mutex
	queue     []string
	suspended []string
	history   []Event
}

func NewProcessTester(p *process.Process, opts ...ProcessTesterOption) *ProcessTester {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.MaxAttempts < 1 {
		o.MaxAttempts = 1
	}

	inst := core.NewInstance(p.ID)

	pt := &ProcessTester{
		p:       p,
		inst:    inst,
		options: o,
		logger:  o.Logger.With(log.ProcessIDKey, p.ID, log.InstanceIDKey, inst.InstanceID),
		tracer:  o.TracerProvider.Tracer(TracerName),
	}

	o.Metrics.Counter(metrickeys.InstanceStarted, metrics.Tags{}, 1)

	return pt
}

func (pt *ProcessTester) Instance() *core.Instance {
	return pt.inst
}

// Finished returns true once the instance completed or failed.
func (pt *ProcessTester) Finished() bool {
	return pt.inst.Status() != core.InstanceStatusRunning
}

// Suspended returns the ids of tasks waiting for an external event.
func (pt *ProcessTester) Suspended() []string {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return slices.Clone(pt.suspended)
}

// History returns the recorded steps in order.
func (pt *ProcessTester) History() []Event {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	return slices.Clone(pt.history)
}

// Start schedules the given task and runs the instance.
func (pt *ProcessTester) Start(ctx context.Context, taskID string) error {
	if pt.p.Task(taskID) == nil {
		return fmt.Errorf("task %q: %w", taskID, process.ErrTaskNotFound)
	}

	pt.enqueue(taskID)

	return pt.Run(ctx)
}

// Trigger delivers an object lifecycle event. Every matching trigger captures
// the record and the instance runs. It returns false if no trigger matched and
// ErrInstanceNotRunning once the instance has finished.
func (pt *ProcessTester) Trigger(ctx context.Context, objectID, lifecycleKey string, record object.Record) (bool, error) {
	if pt.Finished() {
		return false, ErrInstanceNotRunning
	}

	triggers := pt.p.Triggers(objectID, lifecycleKey)
	if len(triggers) == 0 {
		return false, nil
	}

	for _, t := range triggers {
		t.Capture(pt.inst, record)
		pt.record(t, EventTriggered, 0, nil)
		pt.enqueue(t.ID())
	}

	pt.logger.DebugContext(ctx, "Lifecycle event delivered",
		log.ObjectIDKey, objectID,
		log.LifecycleKey, lifecycleKey)

	return true, pt.Run(ctx)
}

// Resume runs every suspended task again.
func (pt *ProcessTester) Resume(ctx context.Context) error {
	pt.mu.Lock()
	suspended := pt.suspended
	pt.suspended = nil
	pt.mu.Unlock()

	for _, id := range suspended {
		pt.enqueue(id)
	}

	return pt.Run(ctx)
}

// Run executes queued tasks until the queue is empty, the instance finishes or
// a task fails.
func (pt *ProcessTester) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if pt.Finished() {
			pt.mu.Lock()
			pt.queue = nil
			pt.mu.Unlock()

			if pt.inst.Status() == core.InstanceStatusFailed {
				return ErrInstanceNotRunning
			}

			return nil
		}

		id, ok := pt.dequeue()
		if !ok {
			return nil
		}

		t := pt.p.Task(id)
		if t == nil {
			return fmt.Errorf("task %q: %w", id, process.ErrTaskNotFound)
		}

		done, attempts, err := pt.execute(ctx, t)
		if err != nil {
			pt.record(t, EventFailed, attempts, err)
			pt.inst.Fail(err)
			pt.finished()

			return fmt.Errorf("task %q: %w", id, err)
		}

		if !done {
			pt.suspend(id)
			pt.record(t, EventSuspended, attempts, nil)
			continue
		}

		pt.record(t, EventCompleted, attempts, nil)

		next := t.NextTasks(pt.inst)
		pt.logger.DebugContext(ctx, "Task completed",
			log.TaskIDKey, id,
			log.TaskTypeKey, t.Type(),
			log.NextTasksKey, next)

		for _, n := range next {
			pt.enqueue(n)
		}

		if pt.Finished() {
			pt.finished()
		}
	}
}

// execute runs a task's Do, retrying retryable errors with backoff.
func (pt *ProcessTester) execute(ctx context.Context, t task.Task) (bool, int, error) {
	t.InitState(pt.inst, nil)

	ctx, span := pt.tracer.Start(ctx, fmt.Sprintf("Task: %s", t.Definition().Key), trace.WithAttributes(
		attribute.String(tracing.ProcessID, pt.p.ID),
		attribute.String(tracing.ProcessInstanceID, pt.inst.InstanceID),
		attribute.String(tracing.TaskID, t.ID()),
		attribute.String(tracing.TaskType, t.Type()),
		attribute.String(tracing.TaskKey, t.Definition().Key),
	))
	defer span.End()

	timer := metrics.Timer(pt.options.Metrics, pt.options.Clock, metrickeys.TaskDuration, metrics.Tags{metrickeys.TaskType: t.Type()})
	defer timer.Stop()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = pt.options.RetryInterval
	b.MaxElapsedTime = 0
	b.Clock = pt.options.Clock
	b.Reset()

	var done bool
	attempts := 0

	err := backoff.RetryNotify(func() error {
		attempts++

		d, err := pt.do(ctx, t)
		if err != nil {
			if !processerrors.CanRetry(err) {
				return backoff.Permanent(err)
			}

			return err
		}

		done = d
		return nil
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(pt.options.MaxAttempts-1)), ctx),
		func(err error, d time.Duration) {
			pt.options.Metrics.Counter(metrickeys.TaskRetried, metrics.Tags{metrickeys.TaskType: t.Type()}, 1)
			pt.logger.WarnContext(ctx, "Task failed, retrying",
				log.TaskIDKey, t.ID(),
				log.AttemptKey, attempts,
				log.ErrorKey, err)
		})

	span.SetAttributes(
		attribute.Int(tracing.Attempts, attempts),
		attribute.Bool(tracing.Completed, done && err == nil),
	)

	outcome := "completed"
	switch {
	case err != nil:
		outcome = "failed"
	case !done:
		outcome = "suspended"
		pt.options.Metrics.Counter(metrickeys.TaskSuspended, metrics.Tags{metrickeys.TaskType: t.Type()}, 1)
	}
	pt.options.Metrics.Counter(metrickeys.TaskExecuted, metrics.Tags{
		metrickeys.TaskType: t.Type(),
		metrickeys.Outcome:  outcome,
	}, 1)

	if err != nil {
		return false, attempts, tracing.WithSpanError(span, processerrors.FromError(err))
	}

	return done, attempts, nil
}

// do calls the task, converting a panic into a permanent error.
func (pt *ProcessTester) do(ctx context.Context, t task.Task) (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = processerrors.NewPanicError(r)
		}
	}()

	return t.Do(ctx, pt.inst)
}

func (pt *ProcessTester) finished() {
	status := pt.inst.Status()

	pt.options.Metrics.Counter(metrickeys.InstanceFinished, metrics.Tags{metrickeys.Status: status.String()}, 1)
	pt.logger.Info("Process instance finished", log.InstanceStatusKey, status.String())
}

func (pt *ProcessTester) enqueue(id string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if slices.Contains(pt.queue, id) {
		return
	}

	pt.queue = append(pt.queue, id)
}

func (pt *ProcessTester) dequeue() (string, bool) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if len(pt.queue) == 0 {
		return "", false
	}

	id := pt.queue[0]
	pt.queue = pt.queue[1:]

	return id, true
}

func (pt *ProcessTester) suspend(id string) {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !slices.Contains(pt.suspended, id) {
		pt.suspended = append(pt.suspended, id)
	}
}

func (pt *ProcessTester) record(t task.Task, kind EventKind, attempts int, err error) {
	e := Event{
		TaskID:   t.ID(),
		Type:     t.Type(),
		Kind:     kind,
		At:       pt.options.Clock.Now(),
		Attempts: attempts,
	}
	if err != nil {
		e.Error = err.Error()
	}

	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.history = append(pt.history, e)
}
