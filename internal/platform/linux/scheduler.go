//go:build linux

package linux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/darkawower/sunshift/internal/platform"
)

var unitTemplate = template.Must(template.New("unit").Funcs(template.FuncMap{
	"quote": quoteArg,
}).Parse(`[Unit]
Description=sunshift - switch the desktop theme at sunrise and sunset
After=graphical-session.target

[Service]
Type=simple
ExecStart={{quote .Command}}{{range .Args}} {{quote .}}{{end}}
Restart=on-failure
RestartSec=5
{{- if .LogPath}}
StandardOutput=append:{{.LogPath}}
StandardError=append:{{.LogPath}}
{{- end}}

[Install]
WantedBy=default.target
`))

var (
	intervalRe = regexp.MustCompile(`--interval"?\s+"?(\d+)`)
	logPathRe  = regexp.MustCompile(`(?m)^StandardOutput=append:(.+)$`)
)

// SchedulerService runs the daemon as a systemd user service.
type SchedulerService struct {
	unitDir string
	run     platform.Runner
}

// NewSchedulerService creates a scheduler writing units to unitDir. An
// empty unitDir means ~/.config/systemd/user.
func NewSchedulerService(unitDir string, run platform.Runner) *SchedulerService {
	return &SchedulerService{unitDir: unitDir, run: run}
}

func (s *SchedulerService) IsSupported() bool {
	return true
}

func (s *SchedulerService) Install(config platform.SchedulerConfig) error {
	unitPath, err := s.unitPath(config.Label)
	if err != nil {
		return fmt.Errorf("failed to get unit path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(unitPath), 0755); err != nil {
		return fmt.Errorf("failed to create systemd user directory: %w", err)
	}

	if config.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	ctx := context.Background()
	unit := unitName(config.Label)

	// Stop a previous instance so the new unit takes effect.
	_, _ = s.run(ctx, "systemctl", "--user", "stop", unit)

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, config); err != nil {
		return fmt.Errorf("failed to render unit: %w", err)
	}
	if err := os.WriteFile(unitPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write unit: %w", err)
	}

	if _, err := s.run(ctx, "systemctl", "--user", "daemon-reload"); err != nil {
		return fmt.Errorf("failed to reload systemd: %w", err)
	}
	if _, err := s.run(ctx, "systemctl", "--user", "enable", unit); err != nil {
		return fmt.Errorf("failed to enable service: %w", err)
	}
	if config.RunAtLoad {
		if _, err := s.run(ctx, "systemctl", "--user", "start", unit); err != nil {
			return fmt.Errorf("failed to start service: %w", err)
		}
	}

	return nil
}

func (s *SchedulerService) Uninstall(label string) error {
	unitPath, err := s.unitPath(label)
	if err != nil {
		return fmt.Errorf("failed to get unit path: %w", err)
	}

	if _, err := os.Stat(unitPath); os.IsNotExist(err) {
		return nil
	}

	ctx := context.Background()
	unit := unitName(label)
	_, _ = s.run(ctx, "systemctl", "--user", "stop", unit)
	_, _ = s.run(ctx, "systemctl", "--user", "disable", unit)

	if err := os.Remove(unitPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove unit: %w", err)
	}

	_, _ = s.run(ctx, "systemctl", "--user", "daemon-reload")
	return nil
}

func (s *SchedulerService) Status(label string) (platform.SchedulerStatus, error) {
	unitPath, err := s.unitPath(label)
	if err != nil {
		return platform.SchedulerStatus{}, fmt.Errorf("failed to get unit path: %w", err)
	}

	status := platform.SchedulerStatus{}

	data, err := os.ReadFile(unitPath)
	if os.IsNotExist(err) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to read unit: %w", err)
	}
	status.Installed = true

	_, err = s.run(context.Background(), "systemctl", "--user", "is-active", "--quiet", unitName(label))
	status.Running = err == nil

	status.Interval, status.LogPath = parseUnit(string(data))
	return status, nil
}

func (s *SchedulerService) unitPath(label string) (string, error) {
	dir := s.unitDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config", "systemd", "user")
	}
	return filepath.Join(dir, unitName(label)), nil
}

func unitName(label string) string {
	return label + ".service"
}

func parseUnit(content string) (time.Duration, string) {
	var interval time.Duration
	if m := intervalRe.FindStringSubmatch(content); len(m) >= 2 {
		seconds, _ := strconv.Atoi(m[1])
		interval = time.Duration(seconds) * time.Second
	}

	var logPath string
	if m := logPathRe.FindStringSubmatch(content); len(m) >= 2 {
		logPath = strings.TrimSpace(m[1])
	}

	return interval, logPath
}

func quoteArg(s string) string {
	if !strings.ContainsAny(s, " \t\"") {
		return s
	}
	return strconv.Quote(s)
}
