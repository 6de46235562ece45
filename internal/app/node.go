package app

import (
	"context"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/partout/internal/adapters/clipboard" //nolint:depguard // Wired in app layer
	"go.trai.ch/partout/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/partout/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/partout/internal/adapters/otp"       //nolint:depguard // Wired in app layer
	"go.trai.ch/partout/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/partout/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/partout/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
	Tracer ports.Tracer
}

// LogSettings adjusts the logger from command line flags.
type LogSettings struct {
	Verbose bool
	JSON    bool
	Output  io.Writer
}

// ConfigureLogger applies s to the logger when it supports it.
func (c *Components) ConfigureLogger(s LogSettings) {
	if l, ok := c.Logger.(interface{ SetOutput(io.Writer) }); ok && s.Output != nil {
		l.SetOutput(s.Output)
	}
	if l, ok := c.Logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(s.JSON)
	}
	if l, ok := c.Logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(s.Verbose)
	}
}

// Shutdown flushes the tracer.
func (c *Components) Shutdown(ctx context.Context) error {
	if t, ok := c.Tracer.(interface{ Shutdown(context.Context) error }); ok {
		return t.Shutdown(ctx)
	}
	return nil
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			clipboard.NodeID,
			otp.NodeID,
			telemetry.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log, Tracer: tracer}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	runner, err := graft.Dep[ports.CommandRunner](ctx)
	if err != nil {
		return nil, err
	}
	clip, err := graft.Dep[ports.Clipboard](ctx)
	if err != nil {
		return nil, err
	}
	gen, err := graft.Dep[ports.CodeGenerator](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, runner, clip, gen, tracer, log), nil
}
