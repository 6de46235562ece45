// Package events carries operation events from workers to the interactive layer.
package events

import (
	"sync"

	"go.trai.ch/partout/internal/core/domain"
)

// Channel is a typed, buffered event stream. There is one per process lifetime.
type Channel struct {
	ch     chan domain.Event
	mu     sync.RWMutex
	closed bool
}

// NewChannel creates a Channel buffering up to size events.
func NewChannel(size int) *Channel {
	if size < 0 {
		size = 0
	}
	return &Channel{ch: make(chan domain.Event, size)}
}

// Emit publishes e. It blocks while the buffer is full.
// Events emitted after Close are dropped and Emit reports false.
func (c *Channel) Emit(e domain.Event) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false
	}
	c.ch <- e
	return true
}

// Events returns the receive side of the stream. It is closed by Close.
func (c *Channel) Events() <-chan domain.Event {
	return c.ch
}

// Close ends the stream. Callers must make sure no producer is still running.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}
