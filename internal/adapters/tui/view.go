package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/partout/internal/ui/style"
)

const helpLine = "j/k move  / filter  enter open  s secrets  f file  c copy  l login  o otp  r refresh  i id  q quit"

// View renders the UI.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	body := m.entryList()
	if m.Selected != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.detailPane())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		body,
		m.statusLine(),
		helpStyle.Render(helpLine),
	)
}

func (m *Model) header() string {
	title := titleStyle.Render(fmt.Sprintf("ENTRIES %d/%d", len(m.Visible), len(m.Entries)))
	switch {
	case m.Filtering:
		return title + " /" + m.Filter + "▏"
	case m.Filter != "":
		return title + " /" + m.Filter
	default:
		return title
	}
}

func (m *Model) entryList() string {
	var s strings.Builder

	start := m.ListOffset
	end := min(m.ListOffset+m.ListHeight, len(m.Visible))
	start = min(start, end)

	for i := start; i < end; i++ {
		s.WriteString(m.renderEntryRow(i) + "\n")
	}
	if len(m.Visible) == 0 {
		s.WriteString(dirStyle.Render("No entries") + "\n")
	}

	width := int(float64(m.Width) * listWidthRatio)
	if m.Selected == "" {
		width = m.Width
	}
	return listStyle.Width(max(width, 1)).Render(strings.TrimSuffix(s.String(), "\n"))
}

func (m *Model) renderEntryRow(index int) string {
	id := m.Visible[index].ID

	dir, name := "", id
	if i := strings.LastIndex(id, "/"); i >= 0 {
		dir, name = id[:i+1], id[i+1:]
	}

	if index == m.Cursor {
		return selectedStyle.Render("> " + id)
	}
	return "  " + dirStyle.Render(dir) + entryStyle.Render(name)
}

func (m *Model) detailPane() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(style.Key+" "+m.Selected) + "\n\n")

	d := m.Details
	if d == nil {
		s.WriteString(pendingStyle.Render(style.Hourglass + " Loading..."))
		return detailStyle.Render(s.String())
	}

	m.field(&s, "Password", m.secret(d.Secret.Password))
	if d.Secret.HasLogin {
		m.field(&s, "Login", d.Secret.Login)
	}
	if d.Secret.HasOTP() {
		code := m.OTPCode
		if code == "" {
			code = "-"
		}
		m.field(&s, "OTP", m.secret(code))
	}
	m.field(&s, "Lines", strconv.Itoa(d.Secret.LineCount))

	if m.ShowFile {
		s.WriteString("\n")
		if m.Revealed {
			s.WriteString(strings.TrimSuffix(d.Contents, "\n"))
		} else {
			s.WriteString(dirStyle.Render(style.Mask))
		}
	}

	return detailStyle.Render(strings.TrimSuffix(s.String(), "\n"))
}

func (m *Model) field(s *strings.Builder, label, value string) {
	s.WriteString(labelStyle.Render(label) + value + "\n")
}

func (m *Model) secret(value string) string {
	if m.Revealed {
		return value
	}
	return style.Mask
}

func (m *Model) statusLine() string {
	switch m.StatusKind {
	case StatusPending:
		return pendingStyle.Render(m.Status)
	case StatusFailed:
		return failureStyle.Render(m.Status)
	case StatusDone:
		return successStyle.Render(style.Check + " " + m.Status)
	default:
		return m.Status
	}
}
