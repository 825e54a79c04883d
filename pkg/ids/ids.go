// Package ids issues the opaque identifiers attached to test-case-started
// and test-step records. Identifiers are never reused within a run, even
// across concurrently executing scenarios.
package ids

import "github.com/google/uuid"

// Generator hands out unique identifiers. Implementations must be safe
// for concurrent use. messages.Incrementing from cucumber/messages also
// satisfies this interface and is handy for deterministic tests.
type Generator interface {
	NewId() string
}

// UUID issues random version-4 UUIDs.
type UUID struct{}

func NewUUID() UUID {
	return UUID{}
}

func (UUID) NewId() string {
	return uuid.NewString()
}
