// Package testcase holds the resolved execution plan the runner consumes:
// an ordered list of executable test steps, each bound to zero, one or
// many step definitions, or to a hook. The plan is produced by the
// assembly stage and is immutable; retries of one scenario share the same
// TestCase and the same step identifiers.
package testcase

import (
	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/tursu"
)

// BoundDefinition is one step definition matched against a pickle step,
// with the capture groups extracted from the step text. Call adapts the
// user function to the normalized invocation contract: it converts the
// captured arguments, injects the world and the step argument, and
// returns the invocation error, if any.
type BoundDefinition struct {
	Definition *tursu.StepDefinition
	Args       []string
	Call       func(*tursu.World) error
}

// TestStep is one executable unit of a TestCase: a hook invocation or a
// pickle step. Its identifier is stable across all attempts of the case.
type TestStep struct {
	Id string

	// Hook is set for hook steps, nil for pickle steps.
	Hook *tursu.HookDefinition

	// PickleStep is the source scenario step. For BeforeStep/AfterStep
	// hook steps it is the wrapped pickle step.
	PickleStep *messages.PickleStep

	// WrappedStepId is the identifier of the wrapped pickle TestStep, set
	// only on BeforeStep/AfterStep hook steps.
	WrappedStepId string

	// Definitions holds the resolved matches for a pickle step: none
	// means undefined, one is a normal binding, several are ambiguous.
	Definitions []*BoundDefinition
}

// IsHook reports whether the step is a hook invocation.
func (s *TestStep) IsHook() bool {
	return s.Hook != nil
}

// IsPickleStep reports whether the step is a scenario step.
func (s *TestStep) IsPickleStep() bool {
	return s.Hook == nil
}

// HookOfType reports whether the step is a hook of the given type.
func (s *TestStep) HookOfType(t tursu.HookType) bool {
	return s.Hook != nil && s.Hook.Type == t
}

// TestCase is the resolved, ordered plan for one scenario. It is shared
// read-only across all attempts of the scenario.
type TestCase struct {
	Id              string
	GherkinDocument *messages.GherkinDocument
	Pickle          *messages.Pickle
	Steps           []*TestStep
}
