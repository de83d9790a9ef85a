// Package notify holds the global error notification channel shared by
// every resource operation in a console session.
package notify

import (
	"sync"
	"time"

	"github.com/five82/marquee/internal/apierror"
)

const (
	historyLimit  = 10
	autoHideDelay = 8 * time.Second
)

// Channel tracks the current classified error, its visibility, and a
// bounded most-recent-first history. The zero value is ready to use.
type Channel struct {
	mu      sync.Mutex
	current *apierror.Envelope
	visible bool
	history []*apierror.Envelope

	hideTimer *time.Timer
	timerSeq  uint64
}

// Snapshot is an immutable view of the channel state.
type Snapshot struct {
	Current *apierror.Envelope
	Visible bool
	History []*apierror.Envelope
}

// Publish makes env the current error, shows it, and records it at the
// front of the history. Publishing restarts the auto-hide window; only
// one pending auto-hide timer exists at a time.
func (c *Channel) Publish(env *apierror.Envelope) {
	if env == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = env
	c.visible = true
	c.history = append([]*apierror.Envelope{env}, c.history...)
	if len(c.history) > historyLimit {
		c.history = c.history[:historyLimit]
	}
	c.rearmLocked()
}

// Hide clears visibility but keeps the current error and history.
func (c *Channel) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = false
	c.disarmLocked()
}

// Dismiss drops the current error and hides it. History is untouched.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
	c.visible = false
	c.disarmLocked()
}

// ClearHistory empties the history without touching the current error.
func (c *Channel) ClearHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = nil
}

// Snapshot returns a copy of the current channel state.
func (c *Channel) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{Current: c.current, Visible: c.visible}
	if len(c.history) > 0 {
		snap.History = make([]*apierror.Envelope, len(c.history))
		copy(snap.History, c.history)
	}
	return snap
}

// rearmLocked restarts the auto-hide timer. The sequence number keeps a
// stale timer that already fired from hiding a newer error.
func (c *Channel) rearmLocked() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.timerSeq++
	seq := c.timerSeq
	c.hideTimer = time.AfterFunc(autoHideDelay, func() {
		c.expire(seq)
	})
}

func (c *Channel) disarmLocked() {
	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.timerSeq++
}

func (c *Channel) expire(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.timerSeq {
		return
	}
	c.visible = false
	c.hideTimer = nil
}
