package utils

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock reports wall time in Location, or local time when Location is nil.
type SystemClock struct {
	Location *time.Location
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}
