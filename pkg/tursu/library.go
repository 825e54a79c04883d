package tursu

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"time"

	messages "github.com/cucumber/messages/go/v21"
	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/denizgursoy/tursu/pkg/results"
)

// ErrPending marks a step definition as intentionally incomplete. Return
// it (or an error wrapping it) from a step function to classify the step
// as PENDING instead of FAILED.
var ErrPending = errors.New("step implementation is pending")

// HookType identifies where in the attempt lifecycle a hook runs.
type HookType int

const (
	BeforeHook HookType = iota
	AfterHook
	BeforeStepHook
	AfterStepHook
)

func (t HookType) String() string {
	switch t {
	case BeforeHook:
		return "Before"
	case AfterHook:
		return "After"
	case BeforeStepHook:
		return "BeforeStep"
	case AfterStepHook:
		return "AfterStep"
	default:
		return "unknown"
	}
}

// HookContext is passed to Before and After hooks. Error holds the first
// failure of the attempt so far, Result the accumulated worst result.
// WillBeRetried reflects the final retry decision of the attempt, so After
// hooks observe the correct value before the case-finished record is built.
type HookContext struct {
	GherkinDocument   *messages.GherkinDocument
	Pickle            *messages.Pickle
	TestCaseStartedId string
	Error             error
	Result            *results.Result
	WillBeRetried     bool
}

// StepHookContext is passed to BeforeStep and AfterStep hooks, scoped to
// the single pickle step they wrap. BeforeStep hooks never carry a result
// or error since the step has not executed yet.
type StepHookContext struct {
	GherkinDocument   *messages.GherkinDocument
	Pickle            *messages.Pickle
	PickleStep        *messages.PickleStep
	TestCaseStartedId string
	TestStepId        string
	Result            *results.Result
	Error             error
}

// HookFunc is a Before or After hook implementation.
type HookFunc func(*World, HookContext) error

// StepHookFunc is a BeforeStep or AfterStep hook implementation.
type StepHookFunc func(*World, StepHookContext) error

// StepDefinition holds a compiled step pattern and its handler function.
type StepDefinition struct {
	// Expression is the pattern text as registered.
	Expression string
	Regexp     *regexp.Regexp
	// Fn is the user function. Its signature is validated at registration
	// and adapted at assembly time: an optional leading *World parameter,
	// then one parameter per capture group (string, integer, float or bool
	// kinds), an optional Table or doc-string parameter, and an optional
	// trailing error result.
	Fn any
	// Location is the file:line of the registration call, reported in
	// ambiguous-step messages.
	Location string
	// Timeout caps a single invocation. Zero means the executor default.
	Timeout time.Duration
}

// HookDefinition is a registered hook with its resolved tag filter.
// Fn is set for Before/After hooks, StepFn for BeforeStep/AfterStep hooks.
type HookDefinition struct {
	Type          HookType
	TagExpression string
	Fn            HookFunc
	StepFn        StepHookFunc

	evaluator tagexpressions.Evaluatable
}

// Matches reports whether the hook applies to a scenario with the given
// tag names. Hooks registered without a tag expression match everything.
func (h *HookDefinition) Matches(tags []string) bool {
	if h.evaluator == nil {
		return true
	}

	return h.evaluator.Evaluate(tags)
}

// Library is the registry of user step definitions and hooks consumed by
// the assembly stage. Registration is fluent and panics on programmer
// errors (duplicate or invalid patterns, invalid handler shapes), since a
// broken registry cannot produce a meaningful run.
type Library struct {
	steps    []*StepDefinition
	patterns map[string]bool
	hooks    []*HookDefinition
}

func NewLibrary() *Library {
	return &Library{
		steps:    make([]*StepDefinition, 0),
		patterns: make(map[string]bool),
	}
}

// RegisterStep registers a step definition with its regex pattern.
func (l *Library) RegisterStep(pattern string, fn any) *Library {
	return l.RegisterStepWithTimeout(pattern, 0, fn)
}

// RegisterStepWithTimeout registers a step definition with a per-step
// invocation timeout.
func (l *Library) RegisterStepWithTimeout(pattern string, timeout time.Duration, fn any) *Library {
	if l.patterns[pattern] {
		panic(fmt.Sprintf("duplicate step pattern: %s", pattern))
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("invalid step pattern %q: %v", pattern, err))
	}
	validateStepFunc(pattern, fn)

	l.steps = append(l.steps, &StepDefinition{
		Expression: pattern,
		Regexp:     compiled,
		Fn:         fn,
		Location:   callerLocation(),
		Timeout:    timeout,
	})
	l.patterns[pattern] = true

	return l
}

// Before registers a hook that runs before every matching scenario attempt.
// An empty tag expression matches every scenario.
func (l *Library) Before(tagExpression string, fn HookFunc) *Library {
	l.addHook(&HookDefinition{Type: BeforeHook, TagExpression: tagExpression, Fn: fn})
	return l
}

// After registers a hook that runs after every matching scenario attempt.
// After hooks always run, even when earlier steps failed.
func (l *Library) After(tagExpression string, fn HookFunc) *Library {
	l.addHook(&HookDefinition{Type: AfterHook, TagExpression: tagExpression, Fn: fn})
	return l
}

// BeforeStep registers a hook that runs before every pickle step of a
// matching scenario.
func (l *Library) BeforeStep(tagExpression string, fn StepHookFunc) *Library {
	l.addHook(&HookDefinition{Type: BeforeStepHook, TagExpression: tagExpression, StepFn: fn})
	return l
}

// AfterStep registers a hook that runs after every executed pickle step of
// a matching scenario.
func (l *Library) AfterStep(tagExpression string, fn StepHookFunc) *Library {
	l.addHook(&HookDefinition{Type: AfterStepHook, TagExpression: tagExpression, StepFn: fn})
	return l
}

func (l *Library) addHook(hook *HookDefinition) {
	if hook.TagExpression != "" {
		evaluator, err := tagexpressions.Parse(hook.TagExpression)
		if err != nil {
			panic(fmt.Sprintf("invalid tag expression %q: %v", hook.TagExpression, err))
		}
		hook.evaluator = evaluator
	}
	l.hooks = append(l.hooks, hook)
}

// StepDefinitions returns all registered step definitions in registration
// order.
func (l *Library) StepDefinitions() []*StepDefinition {
	return l.steps
}

// HooksOf returns the hooks of the given type in registration order.
func (l *Library) HooksOf(hookType HookType) []*HookDefinition {
	selected := make([]*HookDefinition, 0)
	for _, h := range l.hooks {
		if h.Type == hookType {
			selected = append(selected, h)
		}
	}

	return selected
}

func validateStepFunc(pattern string, fn any) {
	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		panic(fmt.Sprintf("step handler for %q must be a function, got %T", pattern, fn))
	}
	if fnType.NumOut() > 1 {
		panic(fmt.Sprintf("step handler for %q may return at most an error", pattern))
	}
	if fnType.NumOut() == 1 && !fnType.Out(0).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
		panic(fmt.Sprintf("step handler for %q must return error or nothing", pattern))
	}
}

func callerLocation() string {
	// Two frames up: past RegisterStepWithTimeout and RegisterStep.
	for skip := 2; skip < 5; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		if file != "" && !isLibraryFile(file) {
			return fmt.Sprintf("%s:%d", file, line)
		}
	}

	return "unknown"
}

func isLibraryFile(file string) bool {
	return len(file) >= len("library.go") && file[len(file)-len("library.go"):] == "library.go"
}
