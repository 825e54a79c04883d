// Package report holds downstream consumers of the runner's envelope
// stream: a statistics collector, a console summary writer and an NDJSON
// stream sink. None of them feed back into execution; they only observe.
package report

import (
	"sync"

	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/results"
)

// Summary holds the aggregate statistics of one run. Retried attempts do
// not count; only the final attempt of each test case contributes.
type Summary struct {
	CasesTotal    int
	CasesByStatus map[messages.TestStepResultStatus]int
	StepsTotal    int
	StepsByStatus map[messages.TestStepResultStatus]int
	RetriedCases  int
}

// Passed reports whether every test case finished with a passing status.
func (s Summary) Passed() bool {
	for status, count := range s.CasesByStatus {
		if count > 0 && results.Rank(status) > results.Rank(results.Passed) {
			return false
		}
	}

	return true
}

// attempt accumulates the step results of one test-case attempt until its
// TestCaseFinished record decides whether the attempt is final.
type attempt struct {
	testCaseId  string
	worst       messages.TestStepResultStatus
	stepsTotal  int
	stepsByStat map[messages.TestStepResultStatus]int
}

// Collector folds the envelope stream into a Summary. It relies on the
// stream ordering guarantees of the runner: every step record arrives
// between its attempt's case-started and case-finished records. Safe for
// concurrent publishers.
type Collector struct {
	mu       sync.Mutex
	attempts map[string]*attempt
	retried  map[string]bool
	summary  Summary
}

func NewCollector() *Collector {
	return &Collector{
		attempts: make(map[string]*attempt),
		retried:  make(map[string]bool),
		summary: Summary{
			CasesByStatus: make(map[messages.TestStepResultStatus]int),
			StepsByStatus: make(map[messages.TestStepResultStatus]int),
		},
	}
}

func (c *Collector) Publish(envelope *messages.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case envelope.TestCaseStarted != nil:
		started := envelope.TestCaseStarted
		c.attempts[started.Id] = &attempt{
			testCaseId:  started.TestCaseId,
			worst:       results.Unknown,
			stepsByStat: make(map[messages.TestStepResultStatus]int),
		}

	case envelope.TestStepFinished != nil:
		finished := envelope.TestStepFinished
		a, ok := c.attempts[finished.TestCaseStartedId]
		if !ok {
			return
		}
		status := finished.TestStepResult.Status
		a.worst = results.Worst(a.worst, status)
		a.stepsTotal++
		a.stepsByStat[status]++

	case envelope.TestCaseFinished != nil:
		finished := envelope.TestCaseFinished
		a, ok := c.attempts[finished.TestCaseStartedId]
		if !ok {
			return
		}
		delete(c.attempts, finished.TestCaseStartedId)

		if finished.WillBeRetried {
			c.retried[a.testCaseId] = true
			return
		}
		c.commit(a)
	}
}

// commit folds a final attempt into the summary. A case with no recorded
// steps counts as passed, consistent with the runner's terminal status.
func (c *Collector) commit(a *attempt) {
	status := a.worst
	if status == results.Unknown {
		status = results.Passed
	}

	c.summary.CasesTotal++
	c.summary.CasesByStatus[status]++
	c.summary.StepsTotal += a.stepsTotal
	for s, n := range a.stepsByStat {
		c.summary.StepsByStatus[s] += n
	}
	if c.retried[a.testCaseId] {
		c.summary.RetriedCases++
	}
}

// Summary returns a copy of the statistics collected so far.
func (c *Collector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		CasesTotal:    c.summary.CasesTotal,
		CasesByStatus: make(map[messages.TestStepResultStatus]int, len(c.summary.CasesByStatus)),
		StepsTotal:    c.summary.StepsTotal,
		StepsByStatus: make(map[messages.TestStepResultStatus]int, len(c.summary.StepsByStatus)),
		RetriedCases:  c.summary.RetriedCases,
	}
	for k, v := range c.summary.CasesByStatus {
		s.CasesByStatus[k] = v
	}
	for k, v := range c.summary.StepsByStatus {
		s.StepsByStatus[k] = v
	}

	return s
}

// Sink mirrors the runner's sink contract so reporters can be composed
// without importing the runner.
type Sink interface {
	Publish(envelope *messages.Envelope)
}

// MultiSink fans every envelope out to all given sinks in order.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Publish(envelope *messages.Envelope) {
	for _, sink := range m.sinks {
		sink.Publish(envelope)
	}
}
