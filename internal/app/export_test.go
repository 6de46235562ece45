package app

import (
	"context"

	"go.trai.ch/partout/internal/core/ports"
)

// Watch exposes the catalog watch loop for tests.
func (a *App) Watch(ctx context.Context, cat ports.Catalog, r ports.Renderer) {
	a.watch(ctx, cat, r)
}
