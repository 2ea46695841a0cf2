package model

import (
	"sync"
	"time"
)

// Clock is one side's countdown. Only the side to move has a running clock.
type Clock struct {
	mu        sync.Mutex
	remaining time.Duration
	started   time.Time
	running   bool
	now       func() time.Time
}

func NewClock(initialTime time.Duration) *Clock {
	return &Clock{remaining: initialTime, now: time.Now}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		c.started = c.now()
		c.running = true
	}
}

// Stop pauses the clock and returns what is left, which is negative once the
// flag has fallen.
func (c *Clock) Stop() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.remaining -= c.now().Sub(c.started)
		c.running = false
	}
	return c.remaining
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.running
}

func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return c.remaining - c.now().Sub(c.started)
	}
	return c.remaining
}

// Flagged reports whether the time has run out.
func (c *Clock) Flagged() bool {
	return c.Remaining() <= 0
}
