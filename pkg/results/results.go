// Package results holds the step-result status model: the status values of
// the cucumber messages protocol, their precedence ordering, and the domain
// result record the executor produces for every step and hook invocation.
package results

import (
	"fmt"
	"time"

	messages "github.com/cucumber/messages/go/v21"
)

// Status values, declared in precedence order. Worst-wins aggregation and
// the skip decision both use this ordering: any status above Passed marks
// the step as not passed.
const (
	Unknown   = messages.TestStepResultStatus("UNKNOWN")
	Passed    = messages.TestStepResultStatus("PASSED")
	Skipped   = messages.TestStepResultStatus("SKIPPED")
	Pending   = messages.TestStepResultStatus("PENDING")
	Undefined = messages.TestStepResultStatus("UNDEFINED")
	Ambiguous = messages.TestStepResultStatus("AMBIGUOUS")
	Failed    = messages.TestStepResultStatus("FAILED")
)

var precedence = map[messages.TestStepResultStatus]int{
	Unknown:   0,
	Passed:    1,
	Skipped:   2,
	Pending:   3,
	Undefined: 4,
	Ambiguous: 5,
	Failed:    6,
}

// Rank returns the precedence of a status. Higher is worse.
func Rank(status messages.TestStepResultStatus) int {
	return precedence[status]
}

// Worst returns the highest-precedence status among the given ones,
// or Unknown when none are given.
func Worst(statuses ...messages.TestStepResultStatus) messages.TestStepResultStatus {
	worst := Unknown
	for _, s := range statuses {
		if precedence[s] > precedence[worst] {
			worst = s
		}
	}

	return worst
}

// Exception describes a failure payload. Go errors and recovered panics
// are uniformly reported with Type "Error", matching the cross-language
// convention for unstructured thrown values.
type Exception struct {
	Type       string
	Message    string
	StackTrace string
}

// Result is the outcome of one step or hook invocation.
type Result struct {
	Status   messages.TestStepResultStatus
	Duration time.Duration
	Message  string
	// Exception is set for failed invocations only.
	Exception *Exception
	// Err is the causing error, kept so hooks can observe the original
	// value. It never travels on the wire.
	Err error
}

func NewPassed(duration time.Duration) Result {
	return Result{Status: Passed, Duration: duration}
}

func NewSkipped() Result {
	return Result{Status: Skipped}
}

func NewPending(duration time.Duration) Result {
	return Result{Status: Pending, Duration: duration, Message: "step implementation is pending"}
}

func NewUndefined() Result {
	return Result{Status: Undefined, Message: "no matching step definition found"}
}

func NewAmbiguous(message string) Result {
	return Result{Status: Ambiguous, Message: message}
}

// NewFailed classifies an invocation error. stackTrace may be empty, either
// because the failure was a plain returned error or because stack-trace
// filtering is on.
func NewFailed(duration time.Duration, err error, stackTrace string) Result {
	return Result{
		Status:   Failed,
		Duration: duration,
		Message:  err.Error(),
		Exception: &Exception{
			Type:       "Error",
			Message:    err.Error(),
			StackTrace: stackTrace,
		},
		Err: err,
	}
}

// ToMessage converts the result to its wire representation. The messages
// v21 schema has no exception field yet, so the stack trace rides along in
// the message text.
func (r Result) ToMessage() *messages.TestStepResult {
	duration := messages.GoDurationToDuration(r.Duration)

	message := r.Message
	if r.Exception != nil && r.Exception.StackTrace != "" {
		message = fmt.Sprintf("%s\n%s", message, r.Exception.StackTrace)
	}

	return &messages.TestStepResult{
		Status:   r.Status,
		Duration: &duration,
		Message:  message,
	}
}
