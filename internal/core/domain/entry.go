// Package domain holds the core types of partout.
package domain

import "time"

// Entry is one password file in the store.
type Entry struct {
	// ID is the path relative to the store root, without the StoreSuffix
	// and with "/" as separator on every platform.
	ID string
	// ModifiedAt is informational only.
	ModifiedAt time.Time
	// Size is informational only.
	Size int64
}
