package tester

import (
	"log/slog"
	"time"

	"github.com/appbuilder/abcore/internal/metrics"
	m "github.com/appbuilder/abcore/metrics"
	"github.com/benbjohnson/clock"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type options struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	Metrics        m.Client
	Clock          clock.Clock

	// MaxAttempts bounds how often a failing task is run before the instance fails.
	MaxAttempts int

	// RetryInterval is the delay before the first retry.
	RetryInterval time.Duration
}

func defaultOptions() options {
	return options{
		Logger:         slog.Default(),
		TracerProvider: noop.NewTracerProvider(),
		Metrics:        metrics.NewNoopMetricsClient(),
		Clock:          clock.New(),
		MaxAttempts:    3,
		RetryInterval:  10 * time.Millisecond,
	}
}

type ProcessTesterOption func(*options)

func WithLogger(logger *slog.Logger) ProcessTesterOption {
	return func(o *options) {
		o.Logger = logger
	}
}

func WithTracerProvider(tp trace.TracerProvider) ProcessTesterOption {
	return func(o *options) {
		o.TracerProvider = tp
	}
}

func WithMetrics(client m.Client) ProcessTesterOption {
	return func(o *options) {
		o.Metrics = client
	}
}

func WithClock(clock clock.Clock) ProcessTesterOption {
	return func(o *options) {
		o.Clock = clock
	}
}

func WithRetries(maxAttempts int, interval time.Duration) ProcessTesterOption {
	return func(o *options) {
		o.MaxAttempts = maxAttempts
		o.RetryInterval = interval
	}
}
