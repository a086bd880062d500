package clock

import "time"

// Clock abstracts time.Now so run planning can be tested deterministically.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func New() Clock {
	return realClock{}
}

// Mock is a fixed-time clock for tests.
type Mock struct {
	now time.Time
}

func NewMock(now time.Time) *Mock {
	return &Mock{now: now}
}

func (m *Mock) Now() time.Time {
	return m.now
}

// Advance moves the mock clock forward.
func (m *Mock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}
