package report

import (
	"encoding/json"
	"io"
	"sync"

	messages "github.com/cucumber/messages/go/v21"
)

// NDJSONSink streams every envelope as one JSON object per line, the
// interchange format the wider cucumber tooling consumes. Publish cannot
// return an error, so the first write failure is kept and later envelopes
// are dropped; check Err after the run.
type NDJSONSink struct {
	mu      sync.Mutex
	encoder *json.Encoder
	err     error
}

func NewNDJSONSink(w io.Writer) *NDJSONSink {
	return &NDJSONSink{encoder: json.NewEncoder(w)}
}

func (s *NDJSONSink) Publish(envelope *messages.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	s.err = s.encoder.Encode(envelope)
}

// Err returns the first write error, if any.
func (s *NDJSONSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}
