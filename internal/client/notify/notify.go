// Package notify implements the single-slot transient notice surfaced to the
// user: at most one message is live at a time, and each message expires on
// its own after a fixed interval.
package notify

import (
	"sync"
	"time"
)

// DefaultTTL matches the interval the UI keeps a notice visible.
const DefaultTTL = 3000 * time.Millisecond

// Channel holds at most one live message. Publish overwrites the current
// message and restarts the expiry timer; there is no queue and no history.
type Channel struct {
	mu       sync.Mutex
	msg      string
	gen      uint64
	ttl      time.Duration
	timer    *time.Timer
	listener func(msg string)
}

// New returns a Channel whose messages expire after ttl. A non-positive ttl
// falls back to DefaultTTL.
func New(ttl time.Duration) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Channel{ttl: ttl}
}

// SetListener registers fn to be called (synchronously) with each published
// message. Intended for the UI layer; pass nil to remove.
func (c *Channel) SetListener(fn func(msg string)) {
	c.mu.Lock()
	c.listener = fn
	c.mu.Unlock()
}

// Publish replaces the current message and restarts the expiry timer. A
// publish before the previous message expires resets the clock rather than
// stacking.
func (c *Channel) Publish(msg string) {
	c.mu.Lock()
	c.msg = msg
	c.gen++
	gen := c.gen
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, func() { c.expire(gen) })
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(msg)
	}
}

// Current returns the live message, if any.
func (c *Channel) Current() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msg, c.msg != ""
}

// expire clears the slot unless a newer publish superseded this timer. The
// generation check covers the window where a stopped timer had already fired.
func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return
	}
	c.msg = ""
}
