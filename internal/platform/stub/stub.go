// Package stub provides a fallback platform implementation for unsupported systems.
package stub

import (
	"context"
	"fmt"
	"runtime"

	"github.com/darkawower/sunshift/internal/platform"
)

func init() {
	// Register stub as fallback for unsupported platforms
	// This will be overridden if a specific platform registers itself
	for _, os := range []string{"freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "aix", "windows"} {
		platform.Register(os, func() platform.Platform {
			return New()
		})
	}
}

// Platform implements platform.Platform as a fallback for unsupported systems.
type Platform struct {
	name string
}

// New creates a new stub platform instance.
func New() *Platform {
	return &Platform{
		name: runtime.GOOS,
	}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return p.name
}

// IsSupported returns false as this is a fallback implementation.
func (p *Platform) IsSupported() bool {
	return false
}

// Theme returns the theme service (stub).
func (p *Platform) Theme() platform.ThemeService {
	return &stubThemeService{name: p.name}
}

// Notifier returns the notification service (stub).
func (p *Platform) Notifier() platform.NotifierService {
	return &stubNotifierService{name: p.name}
}

// Scheduler returns the scheduler service (stub).
func (p *Platform) Scheduler() platform.SchedulerService {
	return &stubSchedulerService{name: p.name}
}

// Compile-time check that Platform implements platform.Platform.
var _ platform.Platform = (*Platform)(nil)

func unsupported(what, name string) error {
	return fmt.Errorf("%s on %s: %w", what, name, platform.ErrUnsupported)
}

// stubThemeService cannot read or change the desktop theme.
type stubThemeService struct {
	name string
}

func (s *stubThemeService) CurrentTheme(ctx context.Context) (string, error) {
	return "", unsupported("theme detection", s.name)
}

func (s *stubThemeService) ApplyTheme(ctx context.Context, id string) error {
	return unsupported("theme switching", s.name)
}

func (s *stubThemeService) Defaults() (string, string) {
	return "light", "dark"
}

// stubNotifierService drops notifications.
type stubNotifierService struct {
	name string
}

func (s *stubNotifierService) Notify(ctx context.Context, title, message string) error {
	return unsupported("notifications", s.name)
}

// stubSchedulerService is a no-op scheduler service.
type stubSchedulerService struct {
	name string
}

func (s *stubSchedulerService) Install(config platform.SchedulerConfig) error {
	return unsupported("scheduler", s.name)
}

func (s *stubSchedulerService) Uninstall(label string) error {
	return unsupported("scheduler", s.name)
}

func (s *stubSchedulerService) Status(label string) (platform.SchedulerStatus, error) {
	return platform.SchedulerStatus{}, unsupported("scheduler", s.name)
}

func (s *stubSchedulerService) IsSupported() bool {
	return false
}
