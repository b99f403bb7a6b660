//go:build darwin

package darwin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/darkawower/sunshift/internal/platform"
)

const (
	LightAppearance = "light"
	DarkAppearance  = "dark"
)

// ThemeService implements platform.ThemeService for macOS. Theme ids are
// the appearance names "light" and "dark".
type ThemeService struct {
	run platform.Runner
}

// NewThemeService creates a new macOS theme service.
func NewThemeService(run platform.Runner) *ThemeService {
	return &ThemeService{run: run}
}

// CurrentTheme reads AppleInterfaceStyle. The key is absent in light mode.
func (s *ThemeService) CurrentTheme(ctx context.Context) (string, error) {
	out, err := s.run(ctx, "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		if ctx.Err() == nil && isMissingKey(err) {
			return LightAppearance, nil
		}
		return "", fmt.Errorf("failed to read appearance: %w", err)
	}

	if strings.EqualFold(out, "dark") {
		return DarkAppearance, nil
	}
	return LightAppearance, nil
}

// ApplyTheme toggles dark mode through System Events.
func (s *ThemeService) ApplyTheme(ctx context.Context, id string) error {
	var dark bool
	switch id {
	case LightAppearance:
	case DarkAppearance:
		dark = true
	default:
		return fmt.Errorf("failed to apply theme: unknown appearance %q", id)
	}

	script := fmt.Sprintf(`tell application "System Events" to tell appearance preferences to set dark mode to %t`, dark)
	if _, err := s.run(ctx, "osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to apply theme %s: %w", id, err)
	}
	return nil
}

// isMissingKey matches the error defaults prints when the key was never set.
func isMissingKey(err error) bool {
	return !errors.Is(err, platform.ErrToolMissing) && strings.Contains(err.Error(), "does not exist")
}

func (s *ThemeService) Defaults() (string, string) {
	return LightAppearance, DarkAppearance
}
