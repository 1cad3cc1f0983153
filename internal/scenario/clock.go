package scenario

import (
	"sync"
	"time"
)

// SimulatedClock is the time source a scenario run advances step by step.
// It is safe for concurrent use.
type SimulatedClock struct {
	mu      sync.RWMutex
	current time.Time
}

func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

func (c *SimulatedClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Elapsed is the simulated time passed since t
func (c *SimulatedClock) Elapsed(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the clock forward; negative durations are ignored
func (c *SimulatedClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
