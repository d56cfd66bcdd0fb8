package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/lastman/internal/common/clock Clock
type Clock interface {
	Now() time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// Now returns the current time in UTC
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}

// Anchored always reports the same instant. Useful when a whole request should
// evaluate lock times against one "now".
type Anchored struct {
	At time.Time
}

// Now returns the anchored time
func (c Anchored) Now() time.Time {
	return c.At
}
