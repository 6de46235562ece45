package linear_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/partout/internal/adapters/linear"
	"go.trai.ch/partout/internal/core/domain"
)

func TestRenderer_Lifecycle(t *testing.T) {
	r := linear.NewRenderer(&bytes.Buffer{}, &bytes.Buffer{})

	require.NoError(t, r.Start(t.Context()))
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_StatusEvents(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)
	op := domain.NewOperationID(domain.OpCopyPassword, "web/example.com")

	r.OnEvent(domain.Event{Operation: op, Message: "⧗ (pass) Copying password..."})
	r.OnEvent(domain.Event{
		Operation: op,
		Terminal:  true,
		Message:   "Password copied to clipboard, clears after 45 seconds",
	})
	r.OnEvent(domain.Event{
		Operation: op,
		Terminal:  true,
		Err:       errors.New("gpg: decryption failed: No secret key"),
		Message:   "✗ (pass) gpg: decryption failed: No secret key",
	})
	r.OnEvent(domain.Event{Operation: op, Terminal: true})

	assert.Empty(t, stdout.String())
	g := goldie.New(t)
	g.Assert(t, "status", stderr.Bytes())
}

func TestRenderer_PayloadEvents(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	r.OnEvent(domain.Event{
		Kind:     domain.EventEntryContents,
		Terminal: true,
		Contents: "hunter2\nlogin: alice",
	})
	r.OnEvent(domain.Event{Kind: domain.EventEntryContents, Terminal: true})
	r.OnEvent(domain.Event{Kind: domain.EventOneTimePassword, Terminal: true, Code: "287082"})

	assert.Empty(t, stderr.String())
	g := goldie.New(t)
	g.Assert(t, "payload", stdout.Bytes())
}

func TestRenderer_OnCatalog(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stderr bytes.Buffer
	r := linear.NewRenderer(&bytes.Buffer{}, &stderr)

	r.OnCatalog(make([]domain.Entry, 3))
	r.OnCatalog(nil)

	assert.Equal(t, "● Store changed, 3 entries\n● Store changed, 0 entries\n", stderr.String())
}
