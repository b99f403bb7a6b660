package platform

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

var ErrUnsupported = errors.New("operation not supported on this platform")

type platformBuilder func() Platform

var (
	registry     = make(map[string]platformBuilder)
	registryLock sync.RWMutex
)

func Register(osName string, builder platformBuilder) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[osName] = builder
}

var (
	current     Platform
	currentOnce sync.Once
)

func Current() Platform {
	currentOnce.Do(func() {
		current = newPlatform(runtime.GOOS)
	})
	return current
}

func newPlatform(osName string) Platform {
	registryLock.RLock()
	defer registryLock.RUnlock()

	if builder, ok := registry[osName]; ok {
		return builder()
	}

	return &unsupportedPlatform{name: osName}
}

type unsupportedPlatform struct {
	name string
}

func (p *unsupportedPlatform) Name() string                { return p.name }
func (p *unsupportedPlatform) IsSupported() bool           { return false }
func (p *unsupportedPlatform) Theme() ThemeService         { return &unsupportedTheme{} }
func (p *unsupportedPlatform) Notifier() NotifierService   { return &unsupportedNotifier{} }
func (p *unsupportedPlatform) Scheduler() SchedulerService { return &unsupportedScheduler{} }

type unsupportedTheme struct{}

func (s *unsupportedTheme) CurrentTheme(ctx context.Context) (string, error) {
	return "", ErrUnsupported
}
func (s *unsupportedTheme) ApplyTheme(ctx context.Context, id string) error { return ErrUnsupported }
func (s *unsupportedTheme) Defaults() (string, string)                      { return "light", "dark" }

type unsupportedNotifier struct{}

func (s *unsupportedNotifier) Notify(ctx context.Context, title, message string) error {
	return ErrUnsupported
}

type unsupportedScheduler struct{}

func (s *unsupportedScheduler) Install(config SchedulerConfig) error { return ErrUnsupported }
func (s *unsupportedScheduler) Uninstall(label string) error         { return ErrUnsupported }
func (s *unsupportedScheduler) Status(label string) (SchedulerStatus, error) {
	return SchedulerStatus{}, ErrUnsupported
}
func (s *unsupportedScheduler) IsSupported() bool { return false }

func SetPlatform(p Platform) {
	currentOnce.Do(func() {})
	current = p
}

func ResetPlatform() {
	currentOnce = sync.Once{}
	current = nil
}
