package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/darkawower/sunshift/internal/daylight"
	"github.com/darkawower/sunshift/internal/logging"
	"github.com/darkawower/sunshift/internal/theme"
)

// AppTitle prefixes desktop notifications.
const AppTitle = "sunshift"

// ThemeReader returns the identifier of the active desktop theme.
type ThemeReader interface {
	CurrentTheme(ctx context.Context) (string, error)
}

// ThemeApplier switches the desktop to a theme identifier.
type ThemeApplier interface {
	ApplyTheme(ctx context.Context, id string) error
}

// Notifier shows a desktop notification. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Evaluator answers the daylight question for an instant.
type Evaluator interface {
	Evaluate(now time.Time) daylight.Evaluation
}

// LoopConfig holds the immutable settings of the decision loop.
type LoopConfig struct {
	PollInterval time.Duration
	LightTheme   string
	DarkTheme    string
}

// Validate checks the loop settings.
func (c LoopConfig) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.LightTheme == "" || c.DarkTheme == "" {
		return errors.New("light and dark theme ids are required")
	}
	return nil
}

// Engine keeps the desktop theme in line with daylight.
type Engine struct {
	oracle   Evaluator
	reader   ThemeReader
	applier  ThemeApplier
	notifier Notifier
	config   LoopConfig
	logger   *slog.Logger
	now      func() time.Time
}

// Option is a function that configures the Engine.
type Option func(*Engine)

// WithNotifier enables desktop notifications.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a new Engine instance.
func New(oracle Evaluator, reader ThemeReader, applier ThemeApplier, cfg LoopConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid loop config: %w", err)
	}

	e := &Engine{
		oracle:   oracle,
		reader:   reader,
		applier:  applier,
		notifier: nopNotifier{},
		config:   cfg,
		logger:   logging.Discard(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Config returns the loop settings.
func (e *Engine) Config() LoopConfig {
	return e.config
}

// Inspect evaluates the current instant and reads the active theme without
// changing anything.
func (e *Engine) Inspect(ctx context.Context) TickResult {
	result := e.evaluate()

	current, err := e.reader.CurrentTheme(ctx)
	if err != nil {
		result.Err = fmt.Errorf("failed to read current theme: %w", err)
		return result
	}
	result.Current = current
	return result
}

// Tick runs one evaluation and applies the desired theme when it differs
// from the active one. Failures are logged and reported in the result.
func (e *Engine) Tick(ctx context.Context) TickResult {
	result := e.evaluate()

	current, err := e.reader.CurrentTheme(ctx)
	if err != nil {
		e.logger.Error("failed to read current theme", "error", err)
		result.Err = fmt.Errorf("failed to read current theme: %w", err)
		return result
	}
	result.Current = current

	if current == result.Desired {
		e.logger.Info("theme unchanged",
			"theme", result.Desired,
			"next_change", result.NextChange(),
		)
		return result
	}

	e.logger.Info("switching theme",
		"target", result.Target,
		"from", current,
		"to", result.Desired,
	)

	if err := e.applier.ApplyTheme(ctx, result.Desired); err != nil {
		e.logger.Error("failed to apply theme", "theme", result.Desired, "error", err)
		result.Err = fmt.Errorf("failed to apply theme: %w", err)
		return result
	}
	result.Changed = true

	e.logger.Info("theme changed",
		"theme", result.Desired,
		"next_change", result.NextChange(),
	)
	e.notify(ctx, AppTitle, fmt.Sprintf("Switched to %s theme", result.Target.Title()))

	return result
}

// RunOnce sends the startup notification and performs a single tick. Tick
// failures are logged and carried in the result; only a cancelled context is
// returned as an error.
func (e *Engine) RunOnce(ctx context.Context) (TickResult, error) {
	if err := ctx.Err(); err != nil {
		return TickResult{}, err
	}

	e.notify(ctx, AppTitle+" started", "Theme update completed")
	return e.safeTick(ctx), nil
}

// Run ticks every PollInterval until ctx is cancelled. Tick failures and
// panics are logged and never end the loop.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("daemon started", "interval", e.config.PollInterval.String())
	e.notify(ctx, AppTitle+" started", "Running in daemon mode")

	for ctx.Err() == nil {
		e.safeTick(ctx)
		if !e.sleep(ctx) {
			break
		}
	}

	e.logger.Info("daemon stopped")
	return nil
}

// sleep waits one poll interval and reports false if ctx ended first.
func (e *Engine) sleep(ctx context.Context) bool {
	timer := time.NewTimer(e.config.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (e *Engine) evaluate() TickResult {
	ev := e.oracle.Evaluate(e.now())
	target := theme.ForDaylight(ev.Daylight)

	return TickResult{
		At:             ev.Now,
		Target:         target,
		Desired:        target.Pick(e.config.LightTheme, e.config.DarkTheme),
		SunTimes:       ev.SunTimes,
		NextTransition: ev.NextTransition,
	}
}

func (e *Engine) safeTick(ctx context.Context) (result TickResult) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("tick panicked", "panic", r)
			result = TickResult{Err: fmt.Errorf("tick panicked: %v", r)}
		}
	}()
	return e.Tick(ctx)
}

func (e *Engine) notify(ctx context.Context, title, message string) {
	if err := e.notifier.Notify(ctx, title, message); err != nil {
		e.logger.Debug("notification not delivered", "error", err)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(ctx context.Context, title, message string) error { return nil }
