// Package testutil provides deterministic time sources for tests.
package testutil

import (
	"sync"
	"time"
)

// Epoch is the base instant deterministic tests step from.
var Epoch = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// SteppingTime is a wall-clock stand-in that advances by a fixed step on
// every call. Each call returns a strictly later instant, so trace ordering
// tests see monotonic timestamps without sleeping.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SteppingTime struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewSteppingTime creates a source that returns start, start+step,
// start+2*step, ...
func NewSteppingTime(start time.Time, step time.Duration) *SteppingTime {
	return &SteppingTime{next: start, step: step}
}

// Now returns the next instant and advances the source.
func (s *SteppingTime) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.next
	s.next = s.next.Add(s.step)
	return t
}

// FrozenTime returns a source that always reports the same instant. Used
// where tests need timestamp ties.
func FrozenTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
