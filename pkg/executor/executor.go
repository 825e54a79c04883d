// Package executor invokes one resolved step or hook with the per-attempt
// world and classifies the outcome. It is a pure compute stage: it never
// emits envelopes, and every user-code failure (returned error, panic or
// timeout) becomes a classified result instead of propagating.
package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/denizgursoy/tursu/pkg/clock"
	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/testcase"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

// ErrTimedOut marks an invocation cut off by its declared timeout. The
// classification is a local FAILED result, never a runner fault.
var ErrTimedOut = errors.New("step timed out")

// StepExecutor runs resolved steps and hooks.
type StepExecutor struct {
	clock             clock.Clock
	defaultTimeout    time.Duration
	filterStackTraces bool
}

// Option configures a StepExecutor.
type Option func(*StepExecutor)

// WithDefaultTimeout caps every invocation that does not declare its own
// timeout. Zero means no cap.
func WithDefaultTimeout(timeout time.Duration) Option {
	return func(e *StepExecutor) {
		e.defaultTimeout = timeout
	}
}

// WithFilteredStackTraces drops panic stack traces from failure results.
func WithFilteredStackTraces(filter bool) Option {
	return func(e *StepExecutor) {
		e.filterStackTraces = filter
	}
}

func New(c clock.Clock, opts ...Option) *StepExecutor {
	e := &StepExecutor{clock: c}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RunStep executes one pickle step. Steps bound to no definition are
// classified UNDEFINED, steps bound to several are AMBIGUOUS; neither
// invokes user code, and both carry zero duration.
func (e *StepExecutor) RunStep(ctx context.Context, step *testcase.TestStep, w *tursu.World) results.Result {
	switch len(step.Definitions) {
	case 0:
		return results.NewUndefined()
	case 1:
	default:
		return results.NewAmbiguous(ambiguousMessage(step))
	}

	bound := step.Definitions[0]
	timeout := bound.Definition.Timeout
	if timeout == 0 {
		timeout = e.defaultTimeout
	}

	return e.invoke(ctx, timeout, func() error {
		return bound.Call(w)
	})
}

// RunHook executes a Before or After hook.
func (e *StepExecutor) RunHook(ctx context.Context, hook *tursu.HookDefinition, w *tursu.World, hc tursu.HookContext) results.Result {
	return e.invoke(ctx, e.defaultTimeout, func() error {
		return hook.Fn(w, hc)
	})
}

// RunStepHook executes a BeforeStep or AfterStep hook.
func (e *StepExecutor) RunStepHook(ctx context.Context, hook *tursu.HookDefinition, w *tursu.World, hc tursu.StepHookContext) results.Result {
	return e.invoke(ctx, e.defaultTimeout, func() error {
		return hook.StepFn(w, hc)
	})
}

// invoke measures the call between two clock reads and classifies its
// outcome. Duration is never negative even if the clock is manipulated
// mid-step.
func (e *StepExecutor) invoke(ctx context.Context, timeout time.Duration, call func() error) results.Result {
	start := e.clock.Now()
	err, stackTrace := e.await(ctx, timeout, call)
	elapsed := e.clock.Now().Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	switch {
	case err == nil:
		return results.NewPassed(elapsed)
	case errors.Is(err, tursu.ErrPending):
		return results.NewPending(elapsed)
	default:
		return results.NewFailed(elapsed, err, stackTrace)
	}
}

// await runs call on its own goroutine so a declared timeout or context
// cancellation can cut it off. A timed-out invocation leaks its goroutine
// until the user code returns; the runner's own loop is never blocked.
func (e *StepExecutor) await(ctx context.Context, timeout time.Duration, call func() error) (error, string) {
	type outcome struct {
		err        error
		stackTrace string
	}

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var stackTrace string
				if !e.filterStackTraces {
					stackTrace = string(debug.Stack())
				}
				done <- outcome{err: panicError(r), stackTrace: stackTrace}
			}
		}()
		done <- outcome{err: call()}
	}()

	var timedOut <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		timedOut = timer.C
	}

	select {
	case o := <-done:
		return o.err, o.stackTrace
	case <-timedOut:
		return fmt.Errorf("%w after %s", ErrTimedOut, timeout), ""
	case <-ctx.Done():
		return ctx.Err(), ""
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}

	return fmt.Errorf("%v", r)
}

// ambiguousMessage lists every matching definition with its registration
// site, one per line, so the user can disambiguate.
func ambiguousMessage(step *testcase.TestStep) string {
	lines := make([]string, 0, len(step.Definitions)+1)
	lines = append(lines, fmt.Sprintf("step %q matches more than one definition:", step.PickleStep.Text))
	for _, bound := range step.Definitions {
		lines = append(lines, fmt.Sprintf("  %s - %s", bound.Definition.Expression, bound.Definition.Location))
	}

	return strings.Join(lines, "\n")
}
