// Package app implements the application layer for partout.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/partout/internal/adapters/catalog"
	"go.trai.ch/partout/internal/adapters/detector"
	"go.trai.ch/partout/internal/adapters/gpg"
	"go.trai.ch/partout/internal/adapters/linear"
	"go.trai.ch/partout/internal/adapters/tui"
	"go.trai.ch/partout/internal/adapters/watcher"
	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/partout/internal/engine/events"
	"go.trai.ch/partout/internal/engine/executor"
	"go.trai.ch/partout/internal/engine/registry"
	"go.trai.ch/partout/internal/engine/store"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatcherFactory creates the store watcher used by the dashboard.
type WatcherFactory func(log ports.Logger) (ports.Watcher, error)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       ports.CommandRunner
	clipboard    ports.Clipboard
	otp          ports.CodeGenerator
	tracer       ports.Tracer
	logger       ports.Logger

	env            catalog.Environment
	stdout         io.Writer
	stderr         io.Writer
	teaOptions     []tea.ProgramOption
	newWatcher     WatcherFactory
	debounceWindow time.Duration
	detect         func() detector.OutputMode
}

// New creates a new App instance. clipboard may be nil.
func New(
	loader ports.ConfigLoader,
	runner ports.CommandRunner,
	clipboard ports.Clipboard,
	otp ports.CodeGenerator,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		clipboard:    clipboard,
		otp:          otp,
		tracer:       tracer,
		logger:       log,
		env:          catalog.OSEnvironment(),
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		newWatcher: func(log ports.Logger) (ports.Watcher, error) {
			return watcher.NewWatcher(log)
		},
		debounceWindow: watcher.DefaultDebounceWindow,
		detect:         detector.DetectEnvironment,
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithEnvironment replaces the process environment used to locate the store.
func (a *App) WithEnvironment(env catalog.Environment) *App {
	a.env = env
	return a
}

// WithOutput redirects command output.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithWatcherFactory replaces the store watcher.
func (a *App) WithWatcherFactory(fn WatcherFactory) *App {
	a.newWatcher = fn
	return a
}

// WithDebounceWindow sets the quiet period before the catalog is rebuilt.
func (a *App) WithDebounceWindow(d time.Duration) *App {
	a.debounceWindow = d
	return a
}

// WithDetector replaces terminal detection.
func (a *App) WithDetector(fn func() detector.OutputMode) *App {
	a.detect = fn
	return a
}

// Options are shared by every command.
type Options struct {
	ConfigPath string
	OutputMode string
}

// Session is an opened store with its operation machinery.
type Session struct {
	Config   *domain.Config
	Catalog  *catalog.Catalog
	Store    *store.Store
	Executor *executor.Executor
}

// Open loads the configuration and indexes the store.
func (a *App) Open(configPath string) (*Session, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	cat, err := catalog.Open(a.env, cfg.StoreDir, a.logger)
	if err != nil {
		return nil, err
	}
	a.logger.Debug(fmt.Sprintf("store %s has %d entries", cat.Root(), cat.Len()))

	exec := executor.New(
		a.runner,
		gpg.NewDecrypter(a.runner, cfg.GPGBinary),
		a.clipboard,
		a.otp,
		cat,
		a.tracer,
		a.logger,
		executor.Config{
			PassBinary:  cfg.PassBinary,
			Strategy:    cfg.Strategy,
			ClipTimeout: cfg.ClipTimeout,
		},
	)

	return &Session{
		Config:   cfg,
		Catalog:  cat,
		Store:    store.New(cat, registry.New(), exec, events.NewChannel(cfg.EventBuffer), a.logger),
		Executor: exec,
	}, nil
}

// Close waits for running operations, discarding their remaining events.
// Scheduled clipboard clears run before it returns.
func (s *Session) Close() {
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for range s.Store.Events() {
		}
	}()
	s.Store.Close()
	<-drained

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Executor.WaitClears(ctx)
}

// List prints the ids of all entries matching query, one per line.
func (a *App) List(_ context.Context, opts Options, query string) error {
	s, err := a.Open(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, e := range s.Catalog.Filter(query) {
		if _, err := fmt.Fprintln(a.stdout, e.ID); err != nil {
			return err
		}
	}
	return nil
}

// Do runs a single operation on id and prints its events until it finished.
// A secret copied to the clipboard is cleared before Do returns: after the
// configured timeout, or right away once ctx is done.
func (a *App) Do(ctx context.Context, opts Options, kind domain.OperationKind, id string) error {
	s, err := a.Open(opts.ConfigPath)
	if err != nil {
		return err
	}

	renderer := linear.NewRenderer(a.stdout, a.stderr)

	var g errgroup.Group
	g.Go(func() error {
		for e := range s.Store.Events() {
			renderer.OnEvent(e)
		}
		return nil
	})

	terminal, err := a.await(ctx, s, kind, id)
	s.Store.Close()
	_ = g.Wait()

	if s.Executor.PendingClears() > 0 && ctx.Err() == nil {
		renderer.OnEvent(domain.Event{
			Kind:    domain.EventStatus,
			Message: domain.PendingMark + " Waiting to clear the clipboard, press Ctrl+C to clear it now",
		})
	}
	s.Executor.WaitClears(ctx)

	if err != nil {
		return err
	}
	if terminal.Failed() {
		return errors.Join(domain.ErrOperationFailed, terminal.Err)
	}
	return nil
}

func (a *App) await(ctx context.Context, s *Session, kind domain.OperationKind, id string) (domain.Event, error) {
	ticket, err := s.Store.Request(kind, id)
	if err != nil {
		return domain.Event{}, err
	}
	return ticket.Wait(ctx)
}

// UI runs the interactive dashboard until the user quits or ctx is done.
func (a *App) UI(ctx context.Context, opts Options) error {
	requested, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}
	if err := detector.RequireTerminal(detector.ResolveMode(a.detect(), requested)); err != nil {
		return err
	}

	s, err := a.Open(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(s.Store, s.Catalog.Entries(), a.stderr)
	teaOpts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, a.teaOptions...)
	renderer := tui.NewRenderer(model, teaOpts...)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		if err := renderer.Start(ctx); err != nil {
			return err
		}
		err := renderer.Wait()
		if ctx.Err() != nil {
			// Killed through ctx.
			return nil
		}
		return err
	})

	g.Go(func() error {
		return pump(ctx, s.Store.Events(), renderer)
	})

	if s.Config.Watch {
		g.Go(func() error {
			a.watch(ctx, s.Catalog, renderer)
			return nil
		})
	}

	return g.Wait()
}

func pump(ctx context.Context, in <-chan domain.Event, r ports.Renderer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-in:
			if !ok {
				return nil
			}
			r.OnEvent(e)
		}
	}
}

// watch rebuilds the catalog after changes below its root until ctx is done.
func (a *App) watch(ctx context.Context, cat ports.Catalog, r ports.Renderer) {
	w, err := a.newWatcher(a.logger)
	if err != nil {
		a.logger.Warn("store watching disabled: " + err.Error())
		return
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(ctx, cat.Root()); err != nil {
		a.logger.Warn("store watching disabled: " + err.Error())
		return
	}

	d := watcher.NewDebouncer(a.debounceWindow, func(paths []string) {
		a.logger.Debug(fmt.Sprintf("store changed (%d paths), rescanning", len(paths)))
		if cat.Refresh() {
			r.OnCatalog(cat.Entries())
		}
	})
	defer d.Stop()

	for ev := range w.Events() {
		d.Add(ev.Path)
	}
}
