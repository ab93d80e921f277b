package testdoubles

import (
	"context"
	"slices"
	"sync"
)

// AcknowledgerSpy captures the positions a record store acknowledges.
type AcknowledgerSpy struct {
	positions []int64
	mu        sync.Mutex
}

// NewAcknowledgerSpy creates a new AcknowledgerSpy.
func NewAcknowledgerSpy() *AcknowledgerSpy {
	return &AcknowledgerSpy{}
}

// AcknowledgePosition captures the position.
func (s *AcknowledgerSpy) AcknowledgePosition(_ context.Context, position int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.positions = append(s.positions, position)
}

// AcknowledgedPositions returns a copy of the acknowledged positions in call order.
func (s *AcknowledgerSpy) AcknowledgedPositions() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.positions)
}
