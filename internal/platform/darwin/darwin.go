//go:build darwin

package darwin

import "github.com/darkawower/sunshift/internal/platform"

func init() {
	platform.Register("darwin", func() platform.Platform {
		return New()
	})
}

// Platform implements platform.Platform for macOS.
type Platform struct {
	theme     *ThemeService
	notifier  *NotifierService
	scheduler *SchedulerService
}

// New creates a new macOS platform instance.
func New() *Platform {
	return &Platform{
		theme:     NewThemeService(platform.Run),
		notifier:  NewNotifierService(platform.Run),
		scheduler: NewSchedulerService("", platform.Run),
	}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return "darwin"
}

// IsSupported returns true as macOS is fully supported.
func (p *Platform) IsSupported() bool {
	return true
}

// Theme returns the appearance service.
func (p *Platform) Theme() platform.ThemeService {
	return p.theme
}

// Notifier returns the notification service.
func (p *Platform) Notifier() platform.NotifierService {
	return p.notifier
}

// Scheduler returns the launchd agent service.
func (p *Platform) Scheduler() platform.SchedulerService {
	return p.scheduler
}

// Compile-time check that Platform implements platform.Platform.
var _ platform.Platform = (*Platform)(nil)
