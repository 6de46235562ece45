package clipboard

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/partout/internal/adapters/logger"
	"go.trai.ch/partout/internal/core/ports"
)

// NodeID is the unique identifier for the clipboard Graft node.
const NodeID graft.ID = "adapter.clipboard"

func init() {
	graft.Register(graft.Node[ports.Clipboard]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Clipboard, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			sys, err := New()
			if err != nil {
				// A missing clipboard only disables copy operations.
				log.Debug(err.Error())
				return nil, nil
			}
			return sys, nil
		},
	})
}
