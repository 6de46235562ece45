package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/partout/internal/ui/style"
)

var (
	entryStyle = lipgloss.NewStyle().
			Foreground(style.White)

	dirStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	labelStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Width(detailLabelWidth)

	pendingStyle = lipgloss.NewStyle().
			Foreground(style.Yellow)

	failureStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	successStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	helpStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	listStyle = lipgloss.NewStyle().
			PaddingRight(2)

	detailStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(style.Slate)
)
