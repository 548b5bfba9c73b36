package diag

import (
	"log/slog"
	"sync"

	"github.com/appbuilder/abcore/log"
	goerrors "github.com/go-errors/errors"
)

// Reporter receives errors that are handled out of band, e.g. a task that
// references an object which no longer exists. Implementations must not panic.
type Reporter interface {
	Report(err error)
}

// LogReporter writes reported errors to a structured logger, including the
// stack of the reporting call site.
type LogReporter struct {
	logger *slog.Logger
}

var _ Reporter = (*LogReporter)(nil)

func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(err error) {
	if err == nil {
		return
	}

	goerr := goerrors.Wrap(err, 1)
	r.logger.Error(err.Error(),
		log.ErrorKey, err,
		log.StacktraceKey, string(goerr.Stack()))
}

// MemoryReporter keeps reported errors in memory.
type MemoryReporter struct {
	mu     sync.Mutex
	errors []error
}

var _ Reporter = (*MemoryReporter)(nil)

func (r *MemoryReporter) Report(err error) {
	if err == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, err)
}

// Errors returns the errors reported so far.
func (r *MemoryReporter) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

type nopReporter struct{}

func (nopReporter) Report(error) {}

// NopReporter discards all reports.
var NopReporter Reporter = nopReporter{}
