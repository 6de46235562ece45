// Package clipboard adapts the system clipboard.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/zerr"
)

// Backend reads and writes the raw clipboard.
type Backend struct {
	Read  func() (string, error)
	Write func(text string) error
}

// System implements ports.Clipboard. Writes are serialized.
type System struct {
	mu      sync.Mutex
	backend Backend
}

// New returns the system clipboard, or domain.ErrClipboardUnavailable when no
// clipboard utility can be found.
func New() (*System, error) {
	if clipboard.Unsupported {
		return nil, domain.ErrClipboardUnavailable
	}
	return NewWithBackend(Backend{Read: clipboard.ReadAll, Write: clipboard.WriteAll}), nil
}

// NewWithBackend creates a clipboard over an explicit backend.
func NewWithBackend(b Backend) *System {
	return &System{backend: b}
}

// WriteText replaces the clipboard contents.
func (s *System) WriteText(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Write(text); err != nil {
		return zerr.Wrap(err, domain.ErrClipboardWriteFailed.Error())
	}
	return nil
}

// ClearIf empties the clipboard if it still holds text.
// Anything copied in the meantime is left alone.
func (s *System) ClearIf(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.backend.Read()
	if err != nil {
		return zerr.Wrap(err, domain.ErrClipboardWriteFailed.Error())
	}
	if current != text {
		return nil
	}
	if err := s.backend.Write(""); err != nil {
		return zerr.Wrap(err, domain.ErrClipboardWriteFailed.Error())
	}
	return nil
}
