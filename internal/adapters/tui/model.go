// Package tui provides the interactive dashboard over the password store.
package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/partout/internal/adapters/catalog"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/partout/internal/ui/output"
)

const (
	listWidthRatio   = 0.4
	chromeHeight     = 5
	detailLabelWidth = 10
)

// Details is the fetched content of the selected entry.
type Details struct {
	ID       string
	Contents string
	Secret   domain.Secret
}

// StatusKind colours the status line.
type StatusKind int

const (
	// StatusIdle is an informational or empty status line.
	StatusIdle StatusKind = iota
	// StatusPending is shown while an operation runs.
	StatusPending
	// StatusDone is shown after an operation succeeded.
	StatusDone
	// StatusFailed is shown after an operation failed.
	StatusFailed
)

// Model represents the dashboard state.
type Model struct {
	ops ports.Operations

	Entries []domain.Entry
	Visible []domain.Entry

	Filter    string
	Filtering bool

	Cursor     int
	ListOffset int
	ListHeight int
	Width      int

	// Selected is the entry whose details are displayed.
	Selected string
	Details  *Details
	OTPCode  string
	Revealed bool
	ShowFile bool

	Status     string
	StatusKind StatusKind
}

// NewModel creates a dashboard model listing entries.
func NewModel(ops ports.Operations, entries []domain.Entry, w io.Writer) *Model {
	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	m := &Model{ops: ops}
	m.setEntries(entries)
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Current returns the entry under the cursor.
func (m *Model) Current() (domain.Entry, bool) {
	if m.Cursor >= 0 && m.Cursor < len(m.Visible) {
		return m.Visible[m.Cursor], true
	}
	return domain.Entry{}, false
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.ListHeight = max(msg.Height-chromeHeight, 1)
		m.ensureVisible()

	case MsgEvent:
		m.applyEvent(msg.Event)

	case MsgCatalog:
		m.setEntries(msg.Entries)

	case msgRequestFailed:
		m.setStatus(domain.FailureMark+" "+msg.err.Error(), StatusFailed)
	}

	return m, nil
}

func (m *Model) updateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "k", "up":
		m.move(-1)
	case "j", "down":
		m.move(1)
	case "g", "home":
		m.move(-len(m.Visible))
	case "G", "end":
		m.move(len(m.Visible))
	case "/":
		m.Filtering = true
	case "esc":
		m.closeDetails()
	case "enter":
		return m.open()
	case "s":
		return m.toggleReveal()
	case "f":
		m.ShowFile = !m.ShowFile
		if m.ShowFile && m.Details == nil {
			return m.open()
		}
	case "c":
		return m.request(m.ops.CopyPassword)
	case "l":
		return m.request(m.ops.CopyLogin)
	case "o":
		return m.request(m.ops.CopyOTP)
	case "r":
		return m.request(m.ops.FetchOTP)
	case "i":
		return m.copyID()
	}
	return nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEnter:
		m.Filtering = false
	case tea.KeyEsc:
		m.Filtering = false
		m.Filter = ""
		m.applyFilter()
	case tea.KeyBackspace:
		if r := []rune(m.Filter); len(r) > 0 {
			m.Filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.Filter += string(msg.Runes)
		m.applyFilter()
	}
	return nil
}

func (m *Model) move(delta int) {
	if len(m.Visible) == 0 {
		return
	}
	prev := m.Cursor
	m.Cursor = min(max(m.Cursor+delta, 0), len(m.Visible)-1)
	if m.Cursor != prev {
		m.ensureVisible()
	}
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.Cursor < m.ListOffset {
		m.ListOffset = m.Cursor
	} else if m.Cursor >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.Cursor - m.ListHeight + 1
	}
}

// open selects the entry under the cursor and fetches its contents.
func (m *Model) open() tea.Cmd {
	entry, ok := m.Current()
	if !ok {
		return nil
	}
	if m.Selected != entry.ID {
		m.Selected = entry.ID
		m.Details = nil
		m.OTPCode = ""
		m.Revealed = false
	}
	return m.request(m.ops.FetchEntry)
}

func (m *Model) closeDetails() {
	m.Selected = ""
	m.Details = nil
	m.OTPCode = ""
	m.Revealed = false
	m.ShowFile = false
}

func (m *Model) toggleReveal() tea.Cmd {
	m.Revealed = !m.Revealed
	if !m.Revealed {
		return nil
	}
	if m.Details == nil {
		return m.open()
	}
	if m.Details.Secret.HasOTP() {
		return m.requestFor(m.Details.ID, m.ops.FetchOTP)
	}
	return nil
}

// request dispatches an asynchronous operation on the entry under the cursor.
func (m *Model) request(fn func(string) error) tea.Cmd {
	entry, ok := m.Current()
	if !ok {
		return nil
	}
	return m.requestFor(entry.ID, fn)
}

func (m *Model) requestFor(id string, fn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(id); err != nil {
			return msgRequestFailed{err: err}
		}
		return nil
	}
}

func (m *Model) copyID() tea.Cmd {
	entry, ok := m.Current()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		// The outcome arrives on the event channel.
		if _, err := m.ops.CopyID(entry.ID); err != nil {
			return msgRequestFailed{err: err}
		}
		return nil
	}
}

func (m *Model) applyEvent(e domain.Event) {
	switch e.Kind {
	case domain.EventEntryContents:
		if e.Operation.EntryID != m.Selected {
			return
		}
		m.Details = &Details{ID: e.Operation.EntryID, Contents: e.Contents, Secret: e.Secret}
		m.OTPCode = e.Secret.OTPCode
	case domain.EventOneTimePassword:
		if e.Operation.EntryID != m.Selected {
			return
		}
		m.OTPCode = e.Code
	}

	switch {
	case e.Failed():
		m.setStatus(e.Message, StatusFailed)
	case !e.Terminal:
		m.setStatus(e.Message, StatusPending)
	case e.Message == "":
		m.setStatus("", StatusIdle)
	default:
		m.setStatus(e.Message, StatusDone)
	}
}

func (m *Model) setStatus(msg string, kind StatusKind) {
	m.Status = msg
	m.StatusKind = kind
}

func (m *Model) setEntries(entries []domain.Entry) {
	m.Entries = entries
	if m.Selected != "" && !containsID(entries, m.Selected) {
		m.closeDetails()
	}
	m.applyFilter()
}

// applyFilter recomputes the visible entries and keeps the cursor on the same id when possible.
func (m *Model) applyFilter() {
	current, hadCurrent := m.Current()
	m.Visible = catalog.FilterEntries(m.Entries, m.Filter)

	m.Cursor = 0
	if hadCurrent {
		for i, e := range m.Visible {
			if e.ID == current.ID {
				m.Cursor = i
				break
			}
		}
	}
	m.ListOffset = 0
	m.ensureVisible()
}

func containsID(entries []domain.Entry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
