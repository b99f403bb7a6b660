//go:build linux

package linux

import (
	"context"
	"fmt"

	"github.com/darkawower/sunshift/internal/platform"
)

const (
	DefaultLightTheme = "org.kde.breeze.desktop"
	DefaultDarkTheme  = "org.kde.breezedark.desktop"
)

var (
	readTools  = []string{"kreadconfig6", "kreadconfig5"}
	writeTools = []string{"kwriteconfig6", "kwriteconfig5"}
	applyTools = []string{"plasma-apply-lookandfeel", "lookandfeeltool"}
)

// lookAndFeelKey addresses the active global theme in kdeglobals.
var lookAndFeelKey = []string{"--file", "kdeglobals", "--group", "KDE", "--key", "LookAndFeelPackage"}

// ThemeService implements platform.ThemeService using the Plasma 6 tools,
// falling back to their Plasma 5 names.
type ThemeService struct {
	run      platform.Runner
	lookPath platform.LookPathFunc
}

func NewThemeService(run platform.Runner, lookPath platform.LookPathFunc) *ThemeService {
	return &ThemeService{run: run, lookPath: lookPath}
}

// CurrentTheme returns the LookAndFeelPackage from kdeglobals.
func (s *ThemeService) CurrentTheme(ctx context.Context) (string, error) {
	tool, err := platform.FirstAvailable(s.lookPath, readTools...)
	if err != nil {
		return "", err
	}

	out, err := s.run(ctx, tool, lookAndFeelKey...)
	if err != nil {
		return "", fmt.Errorf("failed to read current theme: %w", err)
	}
	return out, nil
}

// ApplyTheme records id in kdeglobals and applies the global theme.
func (s *ThemeService) ApplyTheme(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("failed to apply theme: empty theme id")
	}

	writer, err := platform.FirstAvailable(s.lookPath, writeTools...)
	if err != nil {
		return err
	}
	applier, err := platform.FirstAvailable(s.lookPath, applyTools...)
	if err != nil {
		return err
	}

	args := append(append([]string{}, lookAndFeelKey...), id)
	if _, err := s.run(ctx, writer, args...); err != nil {
		return fmt.Errorf("failed to write theme setting: %w", err)
	}

	if _, err := s.run(ctx, applier, "--apply", id); err != nil {
		return fmt.Errorf("failed to apply theme %s: %w", id, err)
	}
	return nil
}

func (s *ThemeService) Defaults() (string, string) {
	return DefaultLightTheme, DefaultDarkTheme
}
