package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer wraps the dashboard model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the TUI in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the TUI to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the TUI has terminated.
func (r *Renderer) Wait() error {
	return <-r.errCh
}

// OnEvent forwards an operation event to the TUI.
func (r *Renderer) OnEvent(event domain.Event) {
	r.program.Send(MsgEvent{Event: event})
}

// OnCatalog forwards a rebuilt entry list to the TUI.
func (r *Renderer) OnCatalog(entries []domain.Entry) {
	r.program.Send(MsgCatalog{Entries: entries})
}

// Model returns the dashboard model.
func (r *Renderer) Model() *Model {
	return r.model
}
