package queue

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

// MonotonicClock never returns a time earlier than one it already returned,
// even when the wall clock steps backwards.
type MonotonicClock struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

func NewClock() *MonotonicClock {
	return &MonotonicClock{now: time.Now}
}

func (c *MonotonicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.now()
	if t.Before(c.last) {
		return c.last
	}
	c.last = t
	return t
}
