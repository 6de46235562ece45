// Package linear prints operation events as plain lines for pipes, scripts and CI.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/partout/internal/ui/output"
	"go.trai.ch/partout/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer without a screen.
// Status lines go to stderr. Entry contents and codes go to stdout so they can be piped.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu sync.Mutex
}

// NewRenderer creates a new linear Renderer.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, output.ColorProfileANSI),
	}
}

// Start is a no-op for the linear renderer.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop is a no-op for the linear renderer.
func (r *Renderer) Stop() error {
	return nil
}

// Wait is a no-op for the linear renderer.
func (r *Renderer) Wait() error {
	return nil
}

// OnEvent prints a single event.
func (r *Renderer) OnEvent(event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Kind {
	case domain.EventEntryContents:
		r.printContentsLocked(event.Contents)
	case domain.EventOneTimePassword:
		_, _ = fmt.Fprintln(r.stdout, event.Code)
	default:
		r.printStatusLocked(event)
	}
}

// OnCatalog reports the new number of entries.
func (r *Renderer) OnCatalog(entries []domain.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.output.String(style.Dot).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Store changed, %d entries\n", prefix, len(entries))
}

func (r *Renderer) printStatusLocked(event domain.Event) {
	if event.Message == "" {
		return
	}

	var line string
	switch {
	case event.Failed():
		line = r.output.String(event.Message).Foreground(termenv.ANSIRed).String()
	case !event.Terminal:
		line = r.output.String(event.Message).Faint().String()
	default:
		line = r.output.String(style.Check).Foreground(termenv.ANSIGreen).String() + " " + event.Message
	}
	_, _ = fmt.Fprintln(r.stderr, line)
}

func (r *Renderer) printContentsLocked(contents string) {
	if contents == "" {
		return
	}
	if !strings.HasSuffix(contents, "\n") {
		contents += "\n"
	}
	_, _ = io.WriteString(r.stdout, contents)
}
