//go:generate mockgen -source=interfaces.go -destination=interfaces_mock.go -package=runner
package runner

import (
	"context"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/results"
	"github.com/denizgursoy/tursu/pkg/testcase"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

type (
	// Sink receives every envelope the runner publishes. Publish is
	// fire-and-forget; the sink must preserve the order of calls.
	Sink interface {
		Publish(envelope *messages.Envelope)
	}

	// StepRunner is the compute stage the test-case runner drives. It
	// classifies one invocation and never emits envelopes itself.
	StepRunner interface {
		RunStep(ctx context.Context, step *testcase.TestStep, w *tursu.World) results.Result
		RunHook(ctx context.Context, hook *tursu.HookDefinition, w *tursu.World, hc tursu.HookContext) results.Result
		RunStepHook(ctx context.Context, hook *tursu.HookDefinition, w *tursu.World, hc tursu.StepHookContext) results.Result
	}
)
