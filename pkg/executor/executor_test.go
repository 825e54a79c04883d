package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	"github.com/stretchr/testify/require"

	"github.com/denizgursoy/tursu/pkg/clock"
	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/testcase"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

func pickleStepOf(text string, calls ...func(*tursu.World) error) *testcase.TestStep {
	step := &testcase.TestStep{
		Id:         "step-1",
		PickleStep: &messages.PickleStep{Id: "ps-1", Text: text},
	}
	for _, call := range calls {
		step.Definitions = append(step.Definitions, &testcase.BoundDefinition{
			Definition: &tursu.StepDefinition{
				Expression: "^" + text + "$",
				Location:   "steps_test.go:1",
			},
			Call: call,
		})
	}

	return step
}

func TestStepExecutor_RunStep(t *testing.T) {
	ctx := context.Background()

	t.Run("successful call is PASSED with measured duration", func(t *testing.T) {
		fake := clock.NewFake(time.Unix(100, 0))
		exec := New(fake)

		step := pickleStepOf("it works", func(*tursu.World) error {
			fake.Advance(250 * time.Millisecond)
			return nil
		})

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Passed, res.Status)
		require.Equal(t, 250*time.Millisecond, res.Duration)
	})

	t.Run("returned error is FAILED with wrapped exception", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		boom := errors.New("boom")
		step := pickleStepOf("it fails", func(*tursu.World) error { return boom })

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Failed, res.Status)
		require.Equal(t, "boom", res.Message)
		require.Equal(t, "Error", res.Exception.Type)
		require.Equal(t, boom, res.Err)
	})

	t.Run("panicking call is FAILED with the panic text and stack", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		step := pickleStepOf("it panics", func(*tursu.World) error {
			panic("assertion failed: expected 1, got 2")
		})

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Failed, res.Status)
		require.Equal(t, "assertion failed: expected 1, got 2", res.Message)
		require.Contains(t, res.Exception.StackTrace, "goroutine")
	})

	t.Run("stack trace filtering omits the stack", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)), WithFilteredStackTraces(true))

		step := pickleStepOf("it panics", func(*tursu.World) error {
			panic("boom")
		})

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Failed, res.Status)
		require.Empty(t, res.Exception.StackTrace)
	})

	t.Run("ErrPending is PENDING, not FAILED", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		step := pickleStepOf("not done yet", func(*tursu.World) error {
			return tursu.ErrPending
		})

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Pending, res.Status)
	})

	t.Run("no definitions is UNDEFINED with zero duration", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		res := exec.RunStep(ctx, pickleStepOf("unknown step"), tursu.NewWorld())
		require.Equal(t, results.Undefined, res.Status)
		require.Zero(t, res.Duration)
	})

	t.Run("several definitions is AMBIGUOUS listing each candidate", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		executed := false
		call := func(*tursu.World) error {
			executed = true
			return nil
		}
		step := pickleStepOf("step text", call, call)
		step.Definitions[0].Definition.Expression = "^step (.*)$"
		step.Definitions[1].Definition.Expression = "^step text$"

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Ambiguous, res.Status)
		require.Zero(t, res.Duration)
		require.False(t, executed)

		lines := []string{
			`step "step text" matches more than one definition:`,
			"  ^step (.*)$ - steps_test.go:1",
			"  ^step text$ - steps_test.go:1",
		}
		for _, line := range lines {
			require.Contains(t, res.Message, line)
		}
	})

	t.Run("declared timeout cuts off a hanging step", func(t *testing.T) {
		exec := New(clock.NewSystem())

		release := make(chan struct{})
		defer close(release)

		step := pickleStepOf("it hangs", func(*tursu.World) error {
			<-release
			return nil
		})
		step.Definitions[0].Definition.Timeout = 20 * time.Millisecond

		res := exec.RunStep(ctx, step, tursu.NewWorld())
		require.Equal(t, results.Failed, res.Status)
		require.ErrorIs(t, res.Err, ErrTimedOut)
		require.Contains(t, res.Message, "timed out after 20ms")
	})

	t.Run("context cancellation fails only the invocation", func(t *testing.T) {
		exec := New(clock.NewSystem())

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		release := make(chan struct{})
		defer close(release)

		step := pickleStepOf("it hangs", func(*tursu.World) error {
			<-release
			return nil
		})

		res := exec.RunStep(cancelled, step, tursu.NewWorld())
		require.Equal(t, results.Failed, res.Status)
		require.ErrorIs(t, res.Err, context.Canceled)
	})
}

func TestStepExecutor_RunHook(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the hook context through", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		var got tursu.HookContext
		hook := &tursu.HookDefinition{
			Type: tursu.AfterHook,
			Fn: func(w *tursu.World, hc tursu.HookContext) error {
				got = hc
				return nil
			},
		}

		hc := tursu.HookContext{TestCaseStartedId: "tcs-1", WillBeRetried: true}
		res := exec.RunHook(ctx, hook, tursu.NewWorld(), hc)
		require.Equal(t, results.Passed, res.Status)
		require.Equal(t, "tcs-1", got.TestCaseStartedId)
		require.True(t, got.WillBeRetried)
	})

	t.Run("hook panic is classified like a step failure", func(t *testing.T) {
		exec := New(clock.NewFake(time.Unix(100, 0)))

		hook := &tursu.HookDefinition{
			Type: tursu.BeforeHook,
			Fn: func(*tursu.World, tursu.HookContext) error {
				panic(errors.New("hook broke"))
			},
		}

		res := exec.RunHook(ctx, hook, tursu.NewWorld(), tursu.HookContext{})
		require.Equal(t, results.Failed, res.Status)
		require.Equal(t, "hook broke", res.Message)
	})
}

func TestStepExecutor_RunStepHook(t *testing.T) {
	exec := New(clock.NewFake(time.Unix(100, 0)))

	var got tursu.StepHookContext
	hook := &tursu.HookDefinition{
		Type: tursu.AfterStepHook,
		StepFn: func(w *tursu.World, hc tursu.StepHookContext) error {
			got = hc
			return nil
		},
	}

	failed := results.NewFailed(0, errors.New("boom"), "")
	hc := tursu.StepHookContext{TestStepId: "ts-1", Result: &failed, Error: failed.Err}

	res := exec.RunStepHook(context.Background(), hook, tursu.NewWorld(), hc)
	require.Equal(t, results.Passed, res.Status)
	require.Equal(t, "ts-1", got.TestStepId)
	require.Equal(t, results.Failed, got.Result.Status)
}
