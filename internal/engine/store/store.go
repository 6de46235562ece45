// Package store orchestrates operations against the password store.
//
// Every operation is keyed by its kind and entry id. While one is running, further
// requests with the same identity join it instead of starting a second run.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/partout/internal/engine/events"
	"go.trai.ch/partout/internal/engine/registry"
	"go.trai.ch/zerr"
)

// Executor runs one operation and returns its terminal event.
type Executor interface {
	Run(ctx context.Context, op domain.OperationID, runID string, emit func(domain.Event)) domain.Event
}

// Store is the operation store.
type Store struct {
	catalog  ports.Catalog
	registry *registry.Registry
	executor Executor
	events   *events.Channel
	logger   ports.Logger

	mu      sync.Mutex
	closed  bool
	workers sync.WaitGroup
}

var _ ports.Operations = (*Store)(nil)

// New creates a Store.
func New(
	catalog ports.Catalog,
	reg *registry.Registry,
	exec Executor,
	ch *events.Channel,
	logger ports.Logger,
) *Store {
	return &Store{
		catalog:  catalog,
		registry: reg,
		executor: exec,
		events:   ch,
		logger:   logger,
	}
}

// Request starts the operation kind on entry id, or joins the run already in flight.
// Unknown entries are rejected before anything is reserved or emitted.
// copy_id runs synchronously and is never deduplicated.
func (s *Store) Request(kind domain.OperationKind, id string) (registry.Ticket, error) {
	if kind == domain.OpCopyID {
		started := time.Now()
		terminal, err := s.CopyID(id)
		if err != nil {
			return registry.Ticket{}, err
		}
		return registry.Resolved(terminal, started), nil
	}

	if !s.catalog.Contains(id) {
		return registry.Ticket{}, zerr.With(domain.ErrEntryNotFound, "entry", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return registry.Ticket{}, domain.ErrStoreClosed
	}

	op := domain.NewOperationID(kind, id)
	ticket, ok := s.registry.TryBegin(op)
	if !ok {
		s.logger.Debug(op.String() + " is already running")
		return ticket, nil
	}

	s.workers.Add(1)
	go s.work(ticket)
	return ticket, nil
}

func (s *Store) work(ticket registry.Ticket) {
	defer s.workers.Done()

	var terminal domain.Event
	defer func() {
		if p := recover(); p != nil {
			terminal = domain.Event{
				Kind:      domain.EventStatus,
				Operation: ticket.Operation,
				RunID:     ticket.RunID,
				Terminal:  true,
				Message:   domain.FailureMark + " " + domain.ErrOperationPanicked.Error(),
				Err:       domain.ErrOperationPanicked,
			}
			s.events.Emit(terminal)
		}
		s.registry.Complete(ticket, terminal)
	}()

	s.logger.Debug("started " + ticket.Operation.String() + " run " + ticket.RunID)
	terminal = s.executor.Run(context.Background(), ticket.Operation, ticket.RunID, s.emit)
}

func (s *Store) emit(e domain.Event) {
	s.events.Emit(e)
}

// CopyPassword copies the password of id to the clipboard.
func (s *Store) CopyPassword(id string) error {
	_, err := s.Request(domain.OpCopyPassword, id)
	return err
}

// CopyLogin copies the login of id to the clipboard.
func (s *Store) CopyLogin(id string) error {
	_, err := s.Request(domain.OpCopyLogin, id)
	return err
}

// CopyOTP copies a fresh one-time password of id to the clipboard.
func (s *Store) CopyOTP(id string) error {
	_, err := s.Request(domain.OpCopyOTP, id)
	return err
}

// FetchOTP derives a one-time password of id for display.
func (s *Store) FetchOTP(id string) error {
	_, err := s.Request(domain.OpFetchOTP, id)
	return err
}

// FetchEntry decrypts id for display.
func (s *Store) FetchEntry(id string) error {
	_, err := s.Request(domain.OpFetchEntry, id)
	return err
}

// CopyID copies the identifier of id to the clipboard and returns the terminal event.
func (s *Store) CopyID(id string) (domain.Event, error) {
	if !s.catalog.Contains(id) {
		return domain.Event{}, zerr.With(domain.ErrEntryNotFound, "entry", id)
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return domain.Event{}, domain.ErrStoreClosed
	}

	op := domain.NewOperationID(domain.OpCopyID, id)
	return s.executor.Run(context.Background(), op, uuid.NewString(), s.emit), nil
}

// Events returns the event stream. It is closed by Close.
func (s *Store) Events() <-chan domain.Event {
	return s.events.Events()
}

// Entries returns the current catalog entries.
func (s *Store) Entries() []domain.Entry {
	return s.catalog.Entries()
}

// Catalog returns the catalog the store validates ids against.
func (s *Store) Catalog() ports.Catalog {
	return s.catalog
}

// Running reports whether kind is in flight for id.
func (s *Store) Running(kind domain.OperationKind, id string) bool {
	return s.registry.Running(domain.NewOperationID(kind, id))
}

// Wait blocks until every started operation has finished.
func (s *Store) Wait() {
	s.workers.Wait()
}

// Close rejects new requests, waits for running operations and closes the event stream.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.workers.Wait()
	s.events.Close()
}
