// Package clock is the time seam. Past-slot detection and idempotency expiry
// both compare against "now", so anything that needs the current time takes a
// Clock instead of calling time.Now directly.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// RealClock is the production Clock.
type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

// MockClock is a settable Clock for tests.
type MockClock struct {
	current time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{current: t}
}

func (c *MockClock) Now() time.Time {
	return c.current
}

func (c *MockClock) Set(t time.Time) {
	c.current = t
}

func (c *MockClock) Add(d time.Duration) {
	c.current = c.current.Add(d)
}
