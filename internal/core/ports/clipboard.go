package ports

// Clipboard is the system clipboard.
//
//go:generate mockgen -source=clipboard.go -destination=mocks/mock_clipboard.go -package=mocks
type Clipboard interface {
	// WriteText replaces the clipboard contents.
	WriteText(text string) error
	// ClearIf empties the clipboard when it still holds text.
	ClearIf(text string) error
}
