package tracker

import (
	"sync"
	"time"
)

// Stopwatch counts elapsed whole seconds against the wall clock, so a
// paused UI or a background tab never desynchronizes the displayed value
// from real elapsed time. Nothing is persisted.
type Stopwatch struct {
	mu        sync.Mutex
	now       func() time.Time
	running   bool
	startedAt time.Time
	frozen    int
}

func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

func newStopwatchAt(now func() time.Time) *Stopwatch {
	return &Stopwatch{now: now}
}

// Start zeroes the value and begins counting.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = 0
	s.startedAt = s.now()
	s.running = true
}

// Stop freezes the value where it stands.
func (s *Stopwatch) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.frozen = s.valueLocked()
	s.running = false
}

// Reset stops and zeroes.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.frozen = 0
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Value returns elapsed whole seconds.
func (s *Stopwatch) Value() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueLocked()
}

func (s *Stopwatch) valueLocked() int {
	if !s.running {
		return s.frozen
	}
	return s.frozen + int(s.now().Sub(s.startedAt)/time.Second)
}
