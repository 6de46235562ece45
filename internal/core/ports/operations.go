package ports

import "go.trai.ch/partout/internal/core/domain"

// Operations is the surface of the operation store used by interactive front ends.
// Asynchronous operations return once the work is dispatched; results arrive as events.
//
//go:generate mockgen -source=operations.go -destination=mocks/mock_operations.go -package=mocks
type Operations interface {
	CopyPassword(id string) error
	CopyLogin(id string) error
	CopyOTP(id string) error
	FetchOTP(id string) error
	FetchEntry(id string) error
	// CopyID runs synchronously and returns its terminal event.
	CopyID(id string) (domain.Event, error)
}
