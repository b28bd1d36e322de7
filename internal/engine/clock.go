package engine

import "time"

// Clock abstracts time.Now() so "today" is deterministic in tests.
// ProfileToday and the feed generator read the current instant through it.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
