//go:build linux

package linux

import (
	"os/exec"

	"github.com/darkawower/sunshift/internal/platform"
)

func init() {
	platform.Register("linux", func() platform.Platform {
		return New()
	})
}

// Platform implements platform.Platform for KDE Plasma desktops.
type Platform struct {
	theme     *ThemeService
	notifier  *NotifierService
	scheduler *SchedulerService
}

// New creates a new Linux platform instance.
func New() *Platform {
	return &Platform{
		theme:     NewThemeService(platform.Run, exec.LookPath),
		notifier:  NewNotifierService(platform.Run),
		scheduler: NewSchedulerService("", platform.Run),
	}
}

func (p *Platform) Name() string {
	return "linux"
}

func (p *Platform) IsSupported() bool {
	return true
}

func (p *Platform) Theme() platform.ThemeService {
	return p.theme
}

func (p *Platform) Notifier() platform.NotifierService {
	return p.notifier
}

func (p *Platform) Scheduler() platform.SchedulerService {
	return p.scheduler
}

var _ platform.Platform = (*Platform)(nil)
