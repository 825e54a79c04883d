package runner

import (
	messages "github.com/cucumber/messages/go/v21"

	"github.com/denizgursoy/tursu/pkg/clock"
	"github.com/denizgursoy/tursu/pkg/results"
)

// emitter formats the four lifecycle records and publishes them to the
// sink. Every timestamp is read from the clock at the moment of emission,
// never pre-computed, so clock manipulation during a step is reflected in
// subsequent records. Identifiers are supplied by the caller; the emitter
// never invents or reuses them.
type emitter struct {
	sink  Sink
	clock clock.Clock
}

func newEmitter(sink Sink, c clock.Clock) *emitter {
	return &emitter{sink: sink, clock: c}
}

func (e *emitter) timestamp() *messages.Timestamp {
	ts := messages.GoTimeToTimestamp(e.clock.Now())
	return &ts
}

func (e *emitter) caseStarted(id, testCaseId string, attempt int64, workerId string) {
	e.sink.Publish(&messages.Envelope{
		TestCaseStarted: &messages.TestCaseStarted{
			Id:         id,
			TestCaseId: testCaseId,
			Attempt:    attempt,
			WorkerId:   workerId,
			Timestamp:  e.timestamp(),
		},
	})
}

func (e *emitter) stepStarted(testCaseStartedId, testStepId string) {
	e.sink.Publish(&messages.Envelope{
		TestStepStarted: &messages.TestStepStarted{
			TestCaseStartedId: testCaseStartedId,
			TestStepId:        testStepId,
			Timestamp:         e.timestamp(),
		},
	})
}

func (e *emitter) stepFinished(testCaseStartedId, testStepId string, result results.Result) {
	e.sink.Publish(&messages.Envelope{
		TestStepFinished: &messages.TestStepFinished{
			TestCaseStartedId: testCaseStartedId,
			TestStepId:        testStepId,
			TestStepResult:    result.ToMessage(),
			Timestamp:         e.timestamp(),
		},
	})
}

func (e *emitter) caseFinished(testCaseStartedId string, willBeRetried bool) {
	e.sink.Publish(&messages.Envelope{
		TestCaseFinished: &messages.TestCaseFinished{
			TestCaseStartedId: testCaseStartedId,
			WillBeRetried:     willBeRetried,
			Timestamp:         e.timestamp(),
		},
	})
}
