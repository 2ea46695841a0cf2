package model

import (
	"testing"
	"time"
)

func TestClockCountsOnlyWhileRunning(t *testing.T) {
	now := time.Now()
	c := NewClock(time.Minute)
	c.now = func() time.Time { return now }

	now = now.Add(10 * time.Second)
	if got := c.Remaining(); got != time.Minute {
		t.Fatalf("stopped clock should not count, got %s", got)
	}

	c.Start()
	now = now.Add(15 * time.Second)
	if got := c.Remaining(); got != 45*time.Second {
		t.Fatalf("expected 45s left, got %s", got)
	}
	if got := c.Stop(); got != 45*time.Second {
		t.Fatalf("Stop should return 45s, got %s", got)
	}

	now = now.Add(time.Hour)
	if c.Flagged() {
		t.Fatalf("a stopped clock cannot flag")
	}
	c.Start()
	now = now.Add(45 * time.Second)
	if !c.Flagged() {
		t.Fatalf("clock should have flagged at zero")
	}
}
