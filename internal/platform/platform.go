// Package platform provides OS-agnostic abstractions for system operations.
package platform

import (
	"context"
	"time"
)

// Platform provides access to OS-specific services.
type Platform interface {
	// Name returns the platform identifier (e.g., "darwin", "linux").
	Name() string

	// IsSupported returns true if this platform is fully supported.
	IsSupported() bool

	// Theme returns the desktop theme service.
	Theme() ThemeService

	// Notifier returns the desktop notification service.
	Notifier() NotifierService

	// Scheduler returns the background agent service.
	Scheduler() SchedulerService
}

// ThemeService reads and applies the desktop look-and-feel.
type ThemeService interface {
	// CurrentTheme returns the identifier of the active theme.
	CurrentTheme(ctx context.Context) (string, error)

	// ApplyTheme switches the desktop to the theme with the given identifier.
	ApplyTheme(ctx context.Context, id string) error

	// Defaults returns the platform's stock light and dark identifiers.
	Defaults() (light, dark string)
}

// NotifierService shows desktop notifications.
type NotifierService interface {
	Notify(ctx context.Context, title, message string) error
}

// SchedulerService manages the background agent.
type SchedulerService interface {
	// Install installs and starts the agent with the given configuration.
	Install(config SchedulerConfig) error

	// Uninstall stops and removes the agent by label.
	Uninstall(label string) error

	// Status returns the current status of the agent by label.
	Status(label string) (SchedulerStatus, error)

	// IsSupported returns true if agents are supported on this platform.
	IsSupported() bool
}

// SchedulerConfig holds configuration for the background agent.
type SchedulerConfig struct {
	// Label is the unique identifier for the agent.
	Label string

	// Command is the executable path.
	Command string

	// Args are the command arguments.
	Args []string

	// Interval is the poll interval the daemon runs with.
	Interval time.Duration

	// RunAtLoad indicates whether to start immediately when loaded.
	RunAtLoad bool

	// LogPath is the path for stdout/stderr output.
	LogPath string
}

// SchedulerStatus represents the current state of the agent.
type SchedulerStatus struct {
	// Installed indicates whether the agent is installed.
	Installed bool

	// Running indicates whether the agent is currently active.
	Running bool

	// Interval is the configured poll interval.
	Interval time.Duration

	// LogPath is the configured log file path.
	LogPath string
}
