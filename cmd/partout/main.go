// Package main is the entry point for partout.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/partout/cmd/partout/commands"
	"go.trai.ch/partout/internal/app"
	"go.trai.ch/partout/internal/core/domain"
	_ "go.trai.ch/partout/internal/wiring"
)

const shutdownTimeout = 2 * time.Second

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, provideComponents))
}

func provideComponents(ctx context.Context) (*app.Components, error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, err
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := provider(ctx)
	if err != nil {
		// Logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer scancel()
		_ = components.Shutdown(sctx)
	}()

	components.App.WithOutput(stdout, stderr)

	cli := commands.New(components.App, func(g commands.Globals) {
		components.ConfigureLogger(app.LogSettings{
			Verbose: g.Verbose,
			JSON:    g.LogJSON,
			Output:  stderr,
		})
	})
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrOperationFailed) {
			// Already reported by the renderer.
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
