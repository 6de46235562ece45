// Package executor runs single store operations and reports their outcome as events.
package executor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.trai.ch/partout/internal/core/domain"
	"go.trai.ch/partout/internal/core/ports"
	"go.trai.ch/zerr"
)

// Config selects how operations are carried out.
type Config struct {
	PassBinary string
	Strategy   domain.Strategy
	// ClipTimeout is how long copied secrets stay on the clipboard. Zero keeps them.
	ClipTimeout time.Duration
}

// Executor implements every operation kind.
type Executor struct {
	runner    ports.CommandRunner
	decrypter ports.Decrypter
	clipboard ports.Clipboard
	otp       ports.CodeGenerator
	catalog   ports.Catalog
	tracer    ports.Tracer
	logger    ports.Logger
	cfg       Config

	mu      sync.Mutex
	clears  map[string]*pendingClear
	cleared chan struct{}
}

type pendingClear struct {
	timer *time.Timer
	value string
}

// New creates an Executor. clipboard may be nil when no clipboard is available.
func New(
	runner ports.CommandRunner,
	decrypter ports.Decrypter,
	clipboard ports.Clipboard,
	otp ports.CodeGenerator,
	catalog ports.Catalog,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg Config,
) *Executor {
	if cfg.PassBinary == "" {
		cfg.PassBinary = "pass"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = domain.StrategyPass
	}
	return &Executor{
		runner:    runner,
		decrypter: decrypter,
		clipboard: clipboard,
		otp:       otp,
		catalog:   catalog,
		tracer:    tracer,
		logger:    logger,
		cfg:       cfg,
		clears:    make(map[string]*pendingClear),
		cleared:   make(chan struct{}),
	}
}

// run is the state of one invocation.
type run struct {
	op      domain.OperationID
	runID   string
	tag     string
	emit    func(domain.Event)
	emitted bool
	last    domain.Event
}

func (r *run) status(msg string) {
	r.emit(domain.Event{Kind: domain.EventStatus, Operation: r.op, RunID: r.runID, Message: msg})
}

func (r *run) finish(e domain.Event) domain.Event {
	e.Operation = r.op
	e.RunID = r.runID
	e.Terminal = true
	r.emitted = true
	r.last = e
	r.emit(e)
	return e
}

func (r *run) succeed(msg string) domain.Event {
	return r.finish(domain.Event{Kind: domain.EventStatus, Message: msg})
}

func (r *run) fail(err error) domain.Event {
	return r.finish(domain.Event{
		Kind:    domain.EventStatus,
		Message: domain.FailureMark + " " + r.tag + " " + err.Error(),
		Err:     err,
	})
}

// Run executes op and returns its terminal event.
// Events are passed to emit in order; exactly one of them is terminal,
// whatever happens during the run.
func (e *Executor) Run(ctx context.Context, op domain.OperationID, runID string, emit func(domain.Event)) (terminal domain.Event) {
	ctx, span := e.tracer.Start(ctx, op.String())
	defer span.End()
	span.SetAttribute("operation", op.Kind.String())
	span.SetAttribute("entry", op.EntryID)
	span.SetAttribute("run_id", runID)
	span.SetAttribute("strategy", string(e.cfg.Strategy))

	r := &run{op: op, runID: runID, tag: "(" + string(e.strategyFor(op.Kind)) + ")", emit: emit}

	defer func() {
		if p := recover(); p != nil {
			err := zerr.With(domain.ErrOperationPanicked, "panic", fmt.Sprint(p))
			if r.emitted {
				terminal = r.last
				terminal.Err = err
			} else {
				terminal = r.fail(err)
			}
		}
		if terminal.Err != nil {
			span.RecordError(terminal.Err)
			e.logger.Warn(op.String() + ": " + terminal.Err.Error())
		}
	}()

	switch op.Kind {
	case domain.OpCopyID:
		return e.copyID(r)
	case domain.OpCopyPassword:
		r.status(domain.PendingMark + " " + r.tag + " Copying password...")
		return e.copyField(ctx, r, fieldPassword)
	case domain.OpCopyLogin:
		r.status(domain.PendingMark + " " + r.tag + " Copying login...")
		return e.copyField(ctx, r, fieldLogin)
	case domain.OpCopyOTP:
		r.status(domain.PendingMark + " " + r.tag + " Copying one-time password...")
		return e.copyOTP(ctx, r)
	case domain.OpFetchOTP:
		r.status(domain.PendingMark + " " + r.tag + " Fetching one-time password...")
		return e.fetchOTP(ctx, r)
	case domain.OpFetchEntry:
		r.status(domain.PendingMark + " " + r.tag + " Fetching password entry...")
		return e.fetchEntry(ctx, r)
	default:
		return r.fail(zerr.With(domain.ErrUnknownOperation, "operation", op.Kind.String()))
	}
}

func (e *Executor) strategyFor(kind domain.OperationKind) domain.Strategy {
	if kind == domain.OpCopyID {
		return "clipboard"
	}
	return e.cfg.Strategy
}

func (e *Executor) copyID(r *run) domain.Event {
	if e.clipboard == nil {
		return r.finish(domain.Event{
			Kind:    domain.EventStatus,
			Message: domain.FailureMark + " Clipboard not available",
			Err:     domain.ErrClipboardUnavailable,
		})
	}
	if err := e.clipboard.WriteText(r.op.EntryID); err != nil {
		return r.finish(domain.Event{
			Kind:    domain.EventStatus,
			Message: domain.FailureMark + " Failed to copy password file identifier: " + err.Error(),
			Err:     err,
		})
	}
	return r.succeed("Password file identifier copied to clipboard")
}

type field int

const (
	fieldPassword field = iota
	fieldLogin
)

func (e *Executor) copyField(ctx context.Context, r *run, f field) domain.Event {
	what := "Password"
	clipArg := "--clip"
	if f == fieldLogin {
		what = "Login"
		clipArg = "--clip=2"
	}
	copied := what + " copied to clipboard"
	if secs := e.clipSeconds(); secs > 0 {
		copied += ", clears after " + strconv.Itoa(secs) + " seconds"
	}

	if e.cfg.Strategy == domain.StrategyPass {
		if _, err := e.pass(ctx, false, "show", clipArg, "--", r.op.EntryID); err != nil {
			return r.fail(err)
		}
		return r.succeed(copied)
	}

	secret, err := e.decrypt(ctx, r.op.EntryID)
	if err != nil {
		return r.fail(err)
	}
	value := secret.Password
	if f == fieldLogin {
		if !secret.HasLogin {
			return r.fail(domain.ErrNoLogin)
		}
		value = secret.Login
	}
	if ev, ok := e.copyLocal(r, value); !ok {
		return ev
	}
	return r.succeed(copied)
}

func (e *Executor) copyOTP(ctx context.Context, r *run) domain.Event {
	if e.cfg.Strategy == domain.StrategyPass {
		if _, err := e.pass(ctx, false, "otp", "code", "--clip", "--", r.op.EntryID); err != nil {
			return r.fail(err)
		}
		return r.succeed("One-time password copied to clipboard")
	}

	code, err := e.localOTP(ctx, r.op.EntryID)
	if err != nil {
		return r.fail(err)
	}
	if ev, ok := e.copyLocal(r, code); !ok {
		return ev
	}
	return r.succeed("One-time password copied to clipboard")
}

func (e *Executor) fetchOTP(ctx context.Context, r *run) domain.Event {
	var code string
	if e.cfg.Strategy == domain.StrategyPass {
		out, err := e.pass(ctx, true, "otp", "code", "--", r.op.EntryID)
		if err != nil {
			return r.fail(err)
		}
		code = strings.TrimSpace(string(out))
	} else {
		var err error
		if code, err = e.localOTP(ctx, r.op.EntryID); err != nil {
			return r.fail(err)
		}
	}
	return r.finish(domain.Event{Kind: domain.EventOneTimePassword, Code: code})
}

func (e *Executor) fetchEntry(ctx context.Context, r *run) domain.Event {
	text, err := e.plaintext(ctx, r.op.EntryID)
	if err != nil {
		return r.fail(err)
	}

	secret := domain.ParseSecret(text)
	if secret.HasOTP() {
		code, err := e.otp.Generate(secret.OTPURI)
		if err != nil {
			e.logger.Debug(r.op.String() + ": one-time password unavailable: " + err.Error())
		} else {
			secret.OTPCode = code
		}
	}
	return r.finish(domain.Event{Kind: domain.EventEntryContents, Contents: text, Secret: secret})
}

// plaintext returns the decrypted entry using the configured strategy.
func (e *Executor) plaintext(ctx context.Context, id string) (string, error) {
	if e.cfg.Strategy == domain.StrategyPass {
		out, err := e.pass(ctx, true, "show", "--", id)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	return e.decrypter.Decrypt(ctx, e.catalog.Path(id))
}

func (e *Executor) decrypt(ctx context.Context, id string) (domain.Secret, error) {
	text, err := e.decrypter.Decrypt(ctx, e.catalog.Path(id))
	if err != nil {
		return domain.Secret{}, err
	}
	return domain.ParseSecret(text), nil
}

func (e *Executor) localOTP(ctx context.Context, id string) (string, error) {
	secret, err := e.decrypt(ctx, id)
	if err != nil {
		return "", err
	}
	if !secret.HasOTP() {
		return "", domain.ErrNoOTP
	}
	return e.otp.Generate(secret.OTPURI)
}

// copyLocal writes value to the clipboard and schedules its removal.
// On failure it returns the terminal event and false.
func (e *Executor) copyLocal(r *run, value string) (domain.Event, bool) {
	if e.clipboard == nil {
		return r.finish(domain.Event{
			Kind:    domain.EventStatus,
			Message: domain.FailureMark + " Clipboard not available",
			Err:     domain.ErrClipboardUnavailable,
		}), false
	}
	if err := e.clipboard.WriteText(value); err != nil {
		return r.fail(err), false
	}
	e.scheduleClear(r.op.EntryID, value)
	return domain.Event{}, true
}

func (e *Executor) scheduleClear(entryID, value string) {
	if e.cfg.ClipTimeout <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if prev, ok := e.clears[entryID]; ok {
		prev.timer.Stop()
	}
	p := &pendingClear{value: value}
	p.timer = time.AfterFunc(e.cfg.ClipTimeout, func() {
		e.clear(value)
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.clears[entryID] == p {
			e.forget(entryID)
		}
	})
	e.clears[entryID] = p
}

func (e *Executor) clear(value string) {
	if err := e.clipboard.ClearIf(value); err != nil {
		e.logger.Warn("failed to clear clipboard: " + err.Error())
	}
}

// forget drops a pending clear and wakes WaitClears. Callers hold e.mu.
func (e *Executor) forget(entryID string) {
	delete(e.clears, entryID)
	close(e.cleared)
	e.cleared = make(chan struct{})
}

// PendingClears returns the number of scheduled clipboard clears.
func (e *Executor) PendingClears() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.clears)
}

// WaitClears blocks until every scheduled clipboard clear has run.
// When ctx is done first, the remaining clears run immediately.
func (e *Executor) WaitClears(ctx context.Context) {
	for {
		e.mu.Lock()
		if len(e.clears) == 0 {
			e.mu.Unlock()
			return
		}
		cleared := e.cleared
		e.mu.Unlock()

		select {
		case <-cleared:
		case <-ctx.Done():
			e.clearNow()
			return
		}
	}
}

// clearNow runs every pending clear without waiting for its timer.
func (e *Executor) clearNow() {
	e.mu.Lock()
	var values []string
	for id, p := range e.clears {
		p.timer.Stop()
		values = append(values, p.value)
		e.forget(id)
	}
	e.mu.Unlock()

	for _, v := range values {
		e.clear(v)
	}
}

// clipSeconds is the clear timeout announced to the user and handed to pass.
func (e *Executor) clipSeconds() int {
	if e.cfg.ClipTimeout <= 0 {
		if e.cfg.Strategy == domain.StrategyPass {
			return int(domain.DefaultClipTimeout / time.Second)
		}
		return 0
	}
	return int((e.cfg.ClipTimeout + time.Second - 1) / time.Second)
}

func (e *Executor) pass(ctx context.Context, capture bool, args ...string) ([]byte, error) {
	return e.runner.Run(ctx, domain.Command{
		Program: e.cfg.PassBinary,
		Args:    args,
		Env: []string{
			domain.StoreDirEnvVar + "=" + e.catalog.Root(),
			domain.ClipTimeEnvVar + "=" + strconv.Itoa(e.clipSeconds()),
		},
		Capture: capture,
	})
}
