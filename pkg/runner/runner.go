// Package runner executes assembled test cases. TestCaseRunner is the
// per-scenario state machine: it sequences hooks and steps, propagates the
// blocking-skip condition after a failure, aggregates the worst status,
// drives the retry loop across attempts and publishes the ordered
// lifecycle envelope stream. SuiteRunner ties the parsing, assembly and
// execution stages together for whole feature directories.
package runner

import (
	"context"
	"slices"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/clock"
	"github.com/denizgursoy/tursu/pkg/ids"
	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/testcase"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

// TestCaseRunner executes one scenario at a time. Instances may run fully
// concurrently as long as they share thread-safe clock and id generator
// collaborators; nothing else is shared between them.
type TestCaseRunner struct {
	steps StepRunner
	sink  Sink
	clock clock.Clock
	ids   ids.Generator
	opts  Options
}

func NewTestCaseRunner(steps StepRunner, sink Sink, c clock.Clock, generator ids.Generator, opts ...Option) *TestCaseRunner {
	if sink == nil {
		sink = discardSink{}
	}

	return &TestCaseRunner{
		steps: steps,
		sink:  sink,
		clock: c,
		ids:   generator,
		opts:  buildOptions(opts),
	}
}

// Run executes every attempt of the test case and returns the terminal
// status of the last attempt. The test-case identity is stable across
// attempts; each attempt gets fresh case-started and World instances.
func (r *TestCaseRunner) Run(ctx context.Context, tc *testcase.TestCase) messages.TestStepResultStatus {
	em := newEmitter(r.sink, r.clock)

	for attempt := int64(0); ; attempt++ {
		status, willBeRetried := r.runAttempt(ctx, em, tc, attempt)
		if !willBeRetried {
			return status
		}
	}
}

// attemptState is the accumulator folded over the ordered steps of one
// attempt: the blocking-skip flag, the worst pickle-step and hook
// statuses, and the first failure. The per-attempt algorithm stays a pure
// function of (test case, world, clock).
type attemptState struct {
	blocked     bool
	anyExecuted bool
	stepWorst   messages.TestStepResultStatus
	hookWorst   messages.TestStepResultStatus
	firstErr    error
	recorded    map[string]results.Result
}

func newAttemptState() *attemptState {
	return &attemptState{
		stepWorst: results.Unknown,
		hookWorst: results.Unknown,
		recorded:  make(map[string]results.Result),
	}
}

func (s *attemptState) record(step *testcase.TestStep, res results.Result) {
	if step.IsPickleStep() {
		s.stepWorst = results.Worst(s.stepWorst, res.Status)
		s.recorded[step.Id] = res
		if res.Status != results.Passed {
			s.blocked = true
		}
		if res.Status != results.Skipped {
			s.anyExecuted = true
		}
	} else {
		s.hookWorst = results.Worst(s.hookWorst, res.Status)
		hookType := step.Hook.Type
		if (hookType == tursu.BeforeHook || hookType == tursu.BeforeStepHook) && res.Status != results.Passed {
			s.blocked = true
		}
	}

	if s.firstErr == nil && res.Err != nil {
		s.firstErr = res.Err
	}
}

// executedResult returns the recorded result of a pickle step and whether
// the step actually ran (a skipped step never ran).
func (s *attemptState) executedResult(stepId string) (results.Result, bool) {
	res, ok := s.recorded[stepId]
	if !ok || res.Status == results.Skipped {
		return results.Result{}, false
	}

	return res, true
}

// terminalStatus is the aggregate of the attempt: the worst pickle-step
// status. Hook statuses take part only when no pickle step actually ran
// (a Before hook failed before any step, dry-run, or a case without
// steps), so a failing After hook never overrides a passed scenario.
func (s *attemptState) terminalStatus() messages.TestStepResultStatus {
	if s.anyExecuted {
		return s.stepWorst
	}

	worst := results.Worst(s.hookWorst, s.stepWorst)
	if worst == results.Unknown {
		return results.Passed
	}

	return worst
}

// snapshot is the accumulated result hooks observe, nil before anything
// has run.
func (s *attemptState) snapshot() *results.Result {
	if s.stepWorst == results.Unknown && s.hookWorst == results.Unknown {
		return nil
	}

	res := results.Result{Status: s.terminalStatus(), Err: s.firstErr}
	if s.firstErr != nil {
		res.Message = s.firstErr.Error()
	}

	return &res
}

// runAttempt drives one full pass over the test case. After hooks run
// once the retry decision is known, so they observe the final
// willBeRetried value; they are never skipped by the blocking flag.
func (r *TestCaseRunner) runAttempt(ctx context.Context, em *emitter, tc *testcase.TestCase, attempt int64) (messages.TestStepResultStatus, bool) {
	testCaseStartedId := r.ids.NewId()
	em.caseStarted(testCaseStartedId, tc.Id, attempt, r.opts.WorkerId)

	w := r.opts.NewWorld(r.opts.WorldParameters)
	state := newAttemptState()

	for _, step := range tc.Steps {
		if step.HookOfType(tursu.AfterHook) {
			continue
		}
		em.stepStarted(testCaseStartedId, step.Id)
		res := r.executeEarlyStep(ctx, tc, testCaseStartedId, step, w, state)
		em.stepFinished(testCaseStartedId, step.Id, res)
		state.record(step, res)
	}

	willBeRetried := r.willRetry(state.terminalStatus(), attempt)

	for _, step := range tc.Steps {
		if !step.HookOfType(tursu.AfterHook) {
			continue
		}
		em.stepStarted(testCaseStartedId, step.Id)
		res := r.executeAfterHook(ctx, tc, testCaseStartedId, step, w, state, willBeRetried)
		em.stepFinished(testCaseStartedId, step.Id, res)
		state.record(step, res)
	}

	em.caseFinished(testCaseStartedId, willBeRetried)

	return state.terminalStatus(), willBeRetried
}

// executeEarlyStep classifies one Before hook, BeforeStep hook, pickle
// step or AfterStep hook. In dry-run mode nothing is invoked and every
// step is recorded as skipped with zero duration.
func (r *TestCaseRunner) executeEarlyStep(ctx context.Context, tc *testcase.TestCase, testCaseStartedId string, step *testcase.TestStep, w *tursu.World, state *attemptState) results.Result {
	if r.opts.DryRun {
		return results.NewSkipped()
	}

	switch {
	case step.HookOfType(tursu.BeforeHook):
		return r.steps.RunHook(ctx, step.Hook, w, tursu.HookContext{
			GherkinDocument:   tc.GherkinDocument,
			Pickle:            tc.Pickle,
			TestCaseStartedId: testCaseStartedId,
			Error:             state.firstErr,
			Result:            state.snapshot(),
		})

	case step.HookOfType(tursu.BeforeStepHook):
		if state.blocked {
			return results.NewSkipped()
		}
		return r.steps.RunStepHook(ctx, step.Hook, w, tursu.StepHookContext{
			GherkinDocument:   tc.GherkinDocument,
			Pickle:            tc.Pickle,
			PickleStep:        step.PickleStep,
			TestCaseStartedId: testCaseStartedId,
			TestStepId:        step.WrappedStepId,
		})

	case step.HookOfType(tursu.AfterStepHook):
		wrapped, executed := state.executedResult(step.WrappedStepId)
		if !executed {
			return results.NewSkipped()
		}
		return r.steps.RunStepHook(ctx, step.Hook, w, tursu.StepHookContext{
			GherkinDocument:   tc.GherkinDocument,
			Pickle:            tc.Pickle,
			PickleStep:        step.PickleStep,
			TestCaseStartedId: testCaseStartedId,
			TestStepId:        step.WrappedStepId,
			Result:            &wrapped,
			Error:             wrapped.Err,
		})

	default:
		if state.blocked {
			return results.NewSkipped()
		}
		return r.steps.RunStep(ctx, step, w)
	}
}

func (r *TestCaseRunner) executeAfterHook(ctx context.Context, tc *testcase.TestCase, testCaseStartedId string, step *testcase.TestStep, w *tursu.World, state *attemptState, willBeRetried bool) results.Result {
	if r.opts.DryRun {
		return results.NewSkipped()
	}

	return r.steps.RunHook(ctx, step.Hook, w, tursu.HookContext{
		GherkinDocument:   tc.GherkinDocument,
		Pickle:            tc.Pickle,
		TestCaseStartedId: testCaseStartedId,
		Error:             state.firstErr,
		Result:            state.snapshot(),
		WillBeRetried:     willBeRetried,
	})
}

func (r *TestCaseRunner) willRetry(status messages.TestStepResultStatus, attempt int64) bool {
	if attempt >= int64(r.opts.MaxRetries) {
		return false
	}

	return slices.Contains(r.opts.RetriableStatuses, status)
}
