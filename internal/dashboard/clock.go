package dashboard

import (
	"context"
	"sync"
	"time"
)

// Header is the date line at the top of the dashboard.
type Header struct {
	Date string `json:"date"`
	Day  string `json:"day"`
	Time string `json:"time"`
}

// HeaderAt formats t the way the dashboard shows it.
func HeaderAt(t time.Time) Header {
	return Header{
		Date: t.Format("January 2, 2006"),
		Day:  t.Format("Monday"),
		Time: t.Format("15:04:05"),
	}
}

// Clock keeps the last tick so readers never call time.Now themselves.
type Clock struct {
	mu     sync.RWMutex
	now    time.Time
	period time.Duration
	source func() time.Time
}

// NewClock creates a clock ticking every period (one second when period <= 0).
func NewClock(period time.Duration) *Clock {
	if period <= 0 {
		period = time.Second
	}
	c := &Clock{period: period, source: time.Now}
	c.now = c.source()
	return c
}

// Run advances the clock until ctx is done.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tick()
		}
	}
}

func (c *Clock) tick() {
	now := c.source()
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// Now returns the instant of the last tick.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Header formats the last tick.
func (c *Clock) Header() Header {
	return HeaderAt(c.Now())
}
