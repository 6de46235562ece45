package ports

import (
	"context"

	"go.trai.ch/partout/internal/core/domain"
)

// Renderer is the abstraction for output rendering.
// The same event stream drives either the interactive dashboard or plain line output.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop and flush any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnEvent is called for every event emitted by an operation.
	OnEvent(event domain.Event)

	// OnCatalog is called after the catalog was rebuilt with a different set of ids.
	OnCatalog(entries []domain.Entry)
}
