// Package registry tracks in-flight operations and allows at most one per identity.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/partout/internal/core/domain"
)

// handle is the registry's record of one running operation.
type handle struct {
	id        domain.OperationID
	runID     string
	startedAt time.Time
	done      chan struct{}
	terminal  domain.Event
}

// Ticket is a read-only view of a reserved or in-flight operation.
type Ticket struct {
	Operation domain.OperationID
	RunID     string
	StartedAt time.Time
	// Started is true for the caller that reserved the operation and must run it.
	Started bool

	h *handle
}

// Done is closed once the operation completed.
func (t Ticket) Done() <-chan struct{} {
	return t.h.done
}

// Terminal returns the terminal event. It is only valid after Done is closed.
func (t Ticket) Terminal() domain.Event {
	<-t.h.done
	return t.h.terminal
}

// Wait blocks until the operation completed or ctx is done.
func (t Ticket) Wait(ctx context.Context) (domain.Event, error) {
	select {
	case <-t.h.done:
		return t.h.terminal, nil
	case <-ctx.Done():
		return domain.Event{}, ctx.Err()
	}
}

// Registry maps operation identities to running operations.
type Registry struct {
	mu      sync.Mutex
	running map[domain.OperationID]*handle
	now     func() time.Time
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		running: make(map[domain.OperationID]*handle),
		now:     time.Now,
	}
}

// TryBegin reserves id. It reports true when the caller must run the operation.
// When an operation with the same identity is already running it reports false
// and the ticket refers to that operation.
func (r *Registry) TryBegin(id domain.OperationID) (Ticket, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.running[id]; ok {
		return ticketFor(h, false), false
	}

	h := &handle{
		id:        id,
		runID:     uuid.NewString(),
		startedAt: r.now(),
		done:      make(chan struct{}),
	}
	r.running[id] = h
	return ticketFor(h, true), true
}

// Complete releases the operation behind t and publishes its terminal event.
// Calling it again for the same ticket has no effect.
func (r *Registry) Complete(t Ticket, terminal domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := t.h
	if h == nil {
		return
	}
	select {
	case <-h.done:
		return
	default:
	}

	if r.running[h.id] == h {
		delete(r.running, h.id)
	}
	h.terminal = terminal
	close(h.done)
}

// Resolved returns a ticket for an operation that ran outside the registry and
// already finished with terminal.
func Resolved(terminal domain.Event, startedAt time.Time) Ticket {
	h := &handle{
		id:        terminal.Operation,
		runID:     terminal.RunID,
		startedAt: startedAt,
		done:      make(chan struct{}),
		terminal:  terminal,
	}
	close(h.done)
	return ticketFor(h, true)
}

// Running reports whether an operation with identity id is in flight.
func (r *Registry) Running(id domain.OperationID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.running[id]
	return ok
}

// Len returns the number of operations in flight.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.running)
}

func ticketFor(h *handle, started bool) Ticket {
	return Ticket{
		Operation: h.id,
		RunID:     h.runID,
		StartedAt: h.startedAt,
		Started:   started,
		h:         h,
	}
}
