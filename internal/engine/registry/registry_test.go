package registry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/engine/registry"
)

func TestRegistry_BeginCompleteBegin(t *testing.T) {
	r := registry.New()
	id := domain.NewOperationID(domain.OpCopyPassword, "web/example")

	first, ok := r.TryBegin(id)
	require.True(t, ok)
	assert.True(t, first.Started)
	assert.True(t, r.Running(id))

	dup, ok := r.TryBegin(id)
	require.False(t, ok)
	assert.False(t, dup.Started)
	assert.Equal(t, first.RunID, dup.RunID)

	terminal := domain.Event{Operation: id, RunID: first.RunID, Terminal: true, Message: "done"}
	r.Complete(first, terminal)
	assert.False(t, r.Running(id))
	assert.Equal(t, 0, r.Len())

	select {
	case <-dup.Done():
	default:
		t.Fatal("duplicate ticket must observe completion")
	}
	assert.Equal(t, terminal, dup.Terminal())

	again, ok := r.TryBegin(id)
	require.True(t, ok)
	assert.NotEqual(t, first.RunID, again.RunID)
}

func TestRegistry_IdentitiesAreIndependent(t *testing.T) {
	r := registry.New()

	_, ok := r.TryBegin(domain.NewOperationID(domain.OpCopyPassword, "a"))
	require.True(t, ok)
	_, ok = r.TryBegin(domain.NewOperationID(domain.OpCopyLogin, "a"))
	require.True(t, ok)
	_, ok = r.TryBegin(domain.NewOperationID(domain.OpCopyPassword, "b"))
	require.True(t, ok)

	assert.Equal(t, 3, r.Len())
}

func TestRegistry_CompleteIsIdempotent(t *testing.T) {
	r := registry.New()
	id := domain.NewOperationID(domain.OpFetchOTP, "x")

	stale, _ := r.TryBegin(id)
	r.Complete(stale, domain.Event{Terminal: true, Message: "first"})

	current, ok := r.TryBegin(id)
	require.True(t, ok)

	r.Complete(stale, domain.Event{Terminal: true, Message: "second"})
	assert.True(t, r.Running(id), "a stale ticket must not release a newer run")
	assert.Equal(t, "first", stale.Terminal().Message)

	r.Complete(current, domain.Event{Terminal: true})
	assert.False(t, r.Running(id))
}

func TestRegistry_Concurrent(t *testing.T) {
	r := registry.New()
	id := domain.NewOperationID(domain.OpCopyOTP, "x")

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		started int
		runIDs  = map[string]struct{}{}
	)
	for range 100 {
		wg.Go(func() {
			ticket, ok := r.TryBegin(id)
			mu.Lock()
			defer mu.Unlock()
			if ok {
				started++
			}
			runIDs[ticket.RunID] = struct{}{}
		})
	}
	wg.Wait()

	assert.Equal(t, 1, started)
	assert.Len(t, runIDs, 1)
}

func TestTicket_Wait(t *testing.T) {
	r := registry.New()
	ticket, _ := r.TryBegin(domain.NewOperationID(domain.OpFetchEntry, "x"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := ticket.Wait(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go r.Complete(ticket, domain.Event{Terminal: true, Message: "ok"})
	e, err := ticket.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", e.Message)
}

func TestResolved(t *testing.T) {
	terminal := domain.Event{
		Operation: domain.NewOperationID(domain.OpCopyID, "x"),
		RunID:     "run",
		Terminal:  true,
	}
	ticket := registry.Resolved(terminal, time.Now())

	assert.Equal(t, terminal.Operation, ticket.Operation)
	assert.Equal(t, "run", ticket.RunID)
	assert.Equal(t, terminal, ticket.Terminal())
}
