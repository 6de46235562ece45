// Package catalog indexes the encrypted entries of a password store.
package catalog

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
)

// Catalog holds the entries found below a store root.
// Refresh replaces the whole entry set; it is never patched incrementally.
type Catalog struct {
	root   string
	logger ports.Logger

	mu          sync.RWMutex
	entries     []domain.Entry
	ids         map[string]struct{}
	fingerprint uint64
}

var _ ports.Catalog = (*Catalog)(nil)

// New scans root and returns the resulting catalog.
func New(root string, logger ports.Logger) *Catalog {
	c := &Catalog{root: root, logger: logger}
	c.Refresh()
	return c
}

// Open resolves the store root from env and configured, then scans it.
func Open(env Environment, configured string, logger ports.Logger) (*Catalog, error) {
	root, err := StoreRoot(env, configured)
	if err != nil {
		return nil, err
	}
	return New(root, logger), nil
}

// Root returns the store directory.
func (c *Catalog) Root() string {
	return c.root
}

// Entries returns a copy of the entries sorted by id.
func (c *Catalog) Entries() []domain.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Lookup returns the entry with the given id.
func (c *Catalog) Lookup(id string) (domain.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, found := slices.BinarySearchFunc(c.entries, id, func(e domain.Entry, target string) int {
		return strings.Compare(e.ID, target)
	})
	if !found {
		return domain.Entry{}, false
	}
	return c.entries[i], true
}

// Contains reports whether id names a known entry.
func (c *Catalog) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.ids[id]
	return ok
}

// Path returns the encrypted file of id.
func (c *Catalog) Path(id string) string {
	return filepath.Join(c.root, filepath.FromSlash(id)+domain.StoreSuffix)
}

// Filter returns the entries whose id contains query, ignoring case.
// An empty query matches every entry.
func (c *Catalog) Filter(query string) []domain.Entry {
	return FilterEntries(c.Entries(), query)
}

// Refresh rescans the store and reports whether the set of ids changed.
func (c *Catalog) Refresh() bool {
	entries, dropped := scan(c.root)
	for _, err := range dropped {
		c.logger.Debug(err.Error())
	}

	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ids[e.ID] = struct{}{}
	}
	sum := fingerprint(entries)

	c.mu.Lock()
	defer c.mu.Unlock()

	changed := c.ids == nil || sum != c.fingerprint
	c.entries = entries
	c.ids = ids
	c.fingerprint = sum
	return changed
}

// FilterEntries returns the entries whose id contains query, ignoring case.
func FilterEntries(entries []domain.Entry, query string) []domain.Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	var out []domain.Entry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.ID), query) {
			out = append(out, e)
		}
	}
	return out
}

// fingerprint hashes the sorted ids.
func fingerprint(entries []domain.Entry) uint64 {
	d := xxhash.New()
	for _, e := range entries {
		_, _ = d.WriteString(e.ID)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}
