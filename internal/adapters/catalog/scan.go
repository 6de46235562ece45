package catalog

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/zerr"
)

// Scan walks root and returns every entry sorted by id.
// Unreadable directories and files whose metadata cannot be read are left out.
func Scan(root string) []domain.Entry {
	entries, _ := scan(root)
	return entries
}

// scan also returns the errors for dropped files.
func scan(root string) ([]domain.Entry, []error) {
	var (
		entries []domain.Entry
		dropped []error
	)
	for path := range walkEntries(root) {
		info, err := os.Stat(path)
		if err != nil {
			dropped = append(dropped, zerr.With(zerr.Wrap(err, domain.ErrCatalogReadPartial.Error()), "path", path))
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			continue
		}
		entries = append(entries, domain.Entry{
			ID:         filepath.ToSlash(strings.TrimSuffix(rel, domain.StoreSuffix)),
			ModifiedAt: info.ModTime(),
			Size:       info.Size(),
		})
	}

	slices.SortFunc(entries, func(a, b domain.Entry) int {
		return strings.Compare(a.ID, b.ID)
	})
	return entries, dropped
}

// walkEntries yields the paths of encrypted entry files below root.
func walkEntries(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d == nil {
				// Partial results are fine: skip what cannot be read.
				return nil
			}
			if d.IsDir() {
				if path != root && d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}
			if !isEntryFile(d.Name()) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func isEntryFile(name string) bool {
	return len(name) > len(domain.StoreSuffix) && strings.HasSuffix(name, domain.StoreSuffix)
}
