// Package assembly resolves a pickle against the support-code library and
// produces the ordered test-step plan the runner executes. It binds every
// pickle step to its matching step definitions (zero, one or many) and
// selects the hooks whose tag expression matches the pickle's tags. The
// runner itself never matches step text or evaluates tag expressions.
package assembly

import (
	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/ids"
	"github.com/denizgursoy/tursu/pkg/testcase"
	"github.com/denizgursoy/tursu/pkg/tursu"
)

// Assembler builds TestCases from pickles and a support-code library.
type Assembler struct {
	library *tursu.Library
	ids     ids.Generator
}

func New(library *tursu.Library, generator ids.Generator) *Assembler {
	return &Assembler{
		library: library,
		ids:     generator,
	}
}

// Assemble produces the execution plan for one pickle. Step order is:
// Before hooks, then per pickle step its BeforeStep hooks, the step
// itself and its AfterStep hooks, and finally the After hooks. Hooks not
// matching the pickle's tags are left out entirely.
func (a *Assembler) Assemble(document *messages.GherkinDocument, pickle *messages.Pickle) *testcase.TestCase {
	tags := pickleTagNames(pickle)

	steps := make([]*testcase.TestStep, 0, len(pickle.Steps))
	for _, hook := range a.matchingHooks(tursu.BeforeHook, tags) {
		steps = append(steps, &testcase.TestStep{Id: a.ids.NewId(), Hook: hook})
	}

	beforeStepHooks := a.matchingHooks(tursu.BeforeStepHook, tags)
	afterStepHooks := a.matchingHooks(tursu.AfterStepHook, tags)

	for _, pickleStep := range pickle.Steps {
		stepId := a.ids.NewId()

		for _, hook := range beforeStepHooks {
			steps = append(steps, &testcase.TestStep{
				Id:            a.ids.NewId(),
				Hook:          hook,
				PickleStep:    pickleStep,
				WrappedStepId: stepId,
			})
		}

		steps = append(steps, &testcase.TestStep{
			Id:          stepId,
			PickleStep:  pickleStep,
			Definitions: a.bind(pickleStep),
		})

		for _, hook := range afterStepHooks {
			steps = append(steps, &testcase.TestStep{
				Id:            a.ids.NewId(),
				Hook:          hook,
				PickleStep:    pickleStep,
				WrappedStepId: stepId,
			})
		}
	}

	for _, hook := range a.matchingHooks(tursu.AfterHook, tags) {
		steps = append(steps, &testcase.TestStep{Id: a.ids.NewId(), Hook: hook})
	}

	return &testcase.TestCase{
		Id:              a.ids.NewId(),
		GherkinDocument: document,
		Pickle:          pickle,
		Steps:           steps,
	}
}

// bind matches one pickle step against every registered definition.
func (a *Assembler) bind(pickleStep *messages.PickleStep) []*testcase.BoundDefinition {
	bound := make([]*testcase.BoundDefinition, 0, 1)

	for _, definition := range a.library.StepDefinitions() {
		definition := definition
		matches := definition.Regexp.FindStringSubmatch(pickleStep.Text)
		if matches == nil {
			continue
		}

		args := matches[1:]
		bound = append(bound, &testcase.BoundDefinition{
			Definition: definition,
			Args:       args,
			Call: func(w *tursu.World) error {
				return invoke(definition.Fn, w, args, pickleStep.Argument)
			},
		})
	}

	return bound
}

func (a *Assembler) matchingHooks(hookType tursu.HookType, tags []string) []*tursu.HookDefinition {
	matching := make([]*tursu.HookDefinition, 0)
	for _, hook := range a.library.HooksOf(hookType) {
		if hook.Matches(tags) {
			matching = append(matching, hook)
		}
	}

	return matching
}

func pickleTagNames(pickle *messages.Pickle) []string {
	names := make([]string, len(pickle.Tags))
	for i, tag := range pickle.Tags {
		names[i] = tag.Name
	}

	return names
}
