package memory

import (
	"context"
	"time"
)

// Clock is an in-process implementation of app.Clock. The production service
// uses the database clock; this one backs memory mode and deterministic tests.
type Clock struct {
	now func() time.Time
}

func NewSystemClock() *Clock {
	return &Clock{now: time.Now}
}

// NewFixedClock pins "today" for tests.
func NewFixedClock(t time.Time) *Clock {
	return &Clock{now: func() time.Time { return t }}
}

func (c *Clock) Today(_ context.Context) (time.Time, error) {
	return c.now().UTC(), nil
}
