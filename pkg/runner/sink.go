package runner

import (
	"sync"

	messages "github.com/cucumber/messages/go/v21"
)

// MemorySink collects envelopes in publish order. Reporters and tests can
// read them back after the run. Safe for concurrent publishers, though a
// single runner always publishes sequentially.
type MemorySink struct {
	mu        sync.Mutex
	envelopes []*messages.Envelope
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(envelope *messages.Envelope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.envelopes = append(s.envelopes, envelope)
}

// Envelopes returns the collected envelopes in publish order.
func (s *MemorySink) Envelopes() []*messages.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]*messages.Envelope, len(s.envelopes))
	copy(cp, s.envelopes)

	return cp
}

// discardSink drops every envelope. Used when no sink is configured.
type discardSink struct{}

func (discardSink) Publish(*messages.Envelope) {}
