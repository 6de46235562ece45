package ports

import "go.trai.ch/partout/internal/core/domain"

// Catalog is the index of entries in the store.
// It is the single source of truth for valid entry ids.
type Catalog interface {
	// Root returns the absolute store directory.
	Root() string
	// Entries returns a copy of the current entries sorted by id.
	Entries() []domain.Entry
	// Contains reports whether id names a known entry.
	Contains(id string) bool
	// Path returns the encrypted file for id.
	Path(id string) string
	// Refresh rebuilds the index from disk and reports whether the set of ids changed.
	Refresh() bool
}
