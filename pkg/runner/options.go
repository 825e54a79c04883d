package runner

import (
	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

// DefaultRetriableStatuses is the set of attempt outcomes the retry loop
// re-executes. Failed invocations are flaky candidates; ambiguous matches
// follow the same policy. Undefined, pending and skipped outcomes are
// never retried since re-running cannot change a missing or intentionally
// skipped result.
var DefaultRetriableStatuses = []messages.TestStepResultStatus{
	results.Failed,
	results.Ambiguous,
}

// Options is the per-invocation context of a runner: everything that
// varies between runs but not between attempts.
type Options struct {
	// WorkerId is attached verbatim to every case-started record of every
	// attempt. Empty means the field is absent on the wire.
	WorkerId string

	// MaxRetries is the retry budget: the number of additional attempts
	// allowed after the first one.
	MaxRetries int

	// RetriableStatuses is the named retry policy set.
	RetriableStatuses []messages.TestStepResultStatus

	// DryRun records every step as skipped without invoking user code.
	DryRun bool

	// WorldParameters are forwarded opaquely to every World constructed
	// for this run.
	WorldParameters map[string]any

	// Logger is handed to each fresh World.
	Logger tursu.Logger

	// NewWorld overrides World construction, e.g. to seed custom state.
	NewWorld func(params map[string]any) *tursu.World
}

// Option configures a TestCaseRunner.
type Option func(*Options)

// WithWorkerId attaches a worker identity to every case-started record.
func WithWorkerId(workerId string) Option {
	return func(o *Options) {
		o.WorkerId = workerId
	}
}

// WithMaxRetries sets the retry budget.
func WithMaxRetries(maxRetries int) Option {
	return func(o *Options) {
		o.MaxRetries = maxRetries
	}
}

// WithRetriableStatuses overrides the retry policy set.
func WithRetriableStatuses(statuses ...messages.TestStepResultStatus) Option {
	return func(o *Options) {
		o.RetriableStatuses = statuses
	}
}

// WithDryRun skips every step without running user code.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) {
		o.DryRun = dryRun
	}
}

// WithWorldParameters forwards an opaque parameter bag to every World.
func WithWorldParameters(params map[string]any) Option {
	return func(o *Options) {
		o.WorldParameters = params
	}
}

// WithLogger sets the logger handed to step functions.
func WithLogger(logger tursu.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithWorldFactory overrides how the per-attempt World is built.
func WithWorldFactory(factory func(params map[string]any) *tursu.World) Option {
	return func(o *Options) {
		o.NewWorld = factory
	}
}

func buildOptions(opts []Option) Options {
	options := Options{
		RetriableStatuses: DefaultRetriableStatuses,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.NewWorld == nil {
		options.NewWorld = func(params map[string]any) *tursu.World {
			worldOpts := []tursu.WorldOption{tursu.WithParameters(params)}
			if options.Logger != nil {
				worldOpts = append(worldOpts, tursu.WithLogger(options.Logger))
			}
			return tursu.NewWorld(worldOpts...)
		}
	}

	return options
}
