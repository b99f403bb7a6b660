//go:build darwin

package darwin

import (
	"context"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/darkawower/sunshift/internal/platform"
)

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
        <string>%s</string>%s
    </array>
    <key>KeepAlive</key>
    <true/>
    <key>RunAtLoad</key>
    <%s/>
    <key>StandardOutPath</key>
    <string>%s</string>
    <key>StandardErrorPath</key>
    <string>%s</string>
</dict>
</plist>
`

var (
	intervalRe = regexp.MustCompile(`<string>--interval</string>\s*<string>(\d+)</string>`)
	logPathRe  = regexp.MustCompile(`<key>StandardOutPath</key>\s*<string>([^<]+)</string>`)
)

// SchedulerService keeps the daemon alive as a launchd agent.
type SchedulerService struct {
	agentsDir string
	run       platform.Runner
}

// NewSchedulerService creates a scheduler writing plists to agentsDir. An
// empty agentsDir means ~/Library/LaunchAgents.
func NewSchedulerService(agentsDir string, run platform.Runner) *SchedulerService {
	return &SchedulerService{agentsDir: agentsDir, run: run}
}

func (s *SchedulerService) IsSupported() bool {
	return true
}

func (s *SchedulerService) Install(config platform.SchedulerConfig) error {
	plistPath, err := s.getPlistPath(config.Label)
	if err != nil {
		return fmt.Errorf("failed to get plist path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(plistPath), 0755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}

	if config.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(config.LogPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	ctx := context.Background()
	if _, err := os.Stat(plistPath); err == nil {
		_, _ = s.run(ctx, "launchctl", "unload", plistPath)
	}

	argsStr := ""
	for _, arg := range config.Args {
		argsStr += fmt.Sprintf("\n        <string>%s</string>", html.EscapeString(arg))
	}

	runAtLoad := "false"
	if config.RunAtLoad {
		runAtLoad = "true"
	}

	plistContent := fmt.Sprintf(plistTemplate,
		html.EscapeString(config.Label),
		html.EscapeString(config.Command),
		argsStr,
		runAtLoad,
		html.EscapeString(config.LogPath),
		html.EscapeString(config.LogPath),
	)

	if err := os.WriteFile(plistPath, []byte(plistContent), 0644); err != nil {
		return fmt.Errorf("failed to write plist: %w", err)
	}

	if _, err := s.run(ctx, "launchctl", "load", plistPath); err != nil {
		return fmt.Errorf("failed to load agent: %w", err)
	}

	return nil
}

func (s *SchedulerService) Uninstall(label string) error {
	plistPath, err := s.getPlistPath(label)
	if err != nil {
		return fmt.Errorf("failed to get plist path: %w", err)
	}

	if _, err := os.Stat(plistPath); os.IsNotExist(err) {
		return nil
	}

	_, _ = s.run(context.Background(), "launchctl", "unload", plistPath)

	if err := os.Remove(plistPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove plist: %w", err)
	}

	return nil
}

func (s *SchedulerService) Status(label string) (platform.SchedulerStatus, error) {
	plistPath, err := s.getPlistPath(label)
	if err != nil {
		return platform.SchedulerStatus{}, fmt.Errorf("failed to get plist path: %w", err)
	}

	status := platform.SchedulerStatus{}

	if _, err := os.Stat(plistPath); os.IsNotExist(err) {
		return status, nil
	}
	status.Installed = true

	_, err = s.run(context.Background(), "launchctl", "list", label)
	status.Running = err == nil

	interval, logPath, err := s.parsePlist(plistPath)
	if err == nil {
		status.Interval = interval
		status.LogPath = logPath
	}

	return status, nil
}

func (s *SchedulerService) getPlistPath(label string) (string, error) {
	dir := s.agentsDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Library", "LaunchAgents")
	}
	return filepath.Join(dir, label+".plist"), nil
}

func (s *SchedulerService) parsePlist(plistPath string) (time.Duration, string, error) {
	data, err := os.ReadFile(plistPath)
	if err != nil {
		return 0, "", err
	}

	content := string(data)

	var interval time.Duration
	if m := intervalRe.FindStringSubmatch(content); len(m) >= 2 {
		seconds, _ := strconv.Atoi(m[1])
		interval = time.Duration(seconds) * time.Second
	}

	var logPath string
	if m := logPathRe.FindStringSubmatch(content); len(m) >= 2 {
		logPath = html.UnescapeString(m[1])
	}

	return interval, logPath, nil
}
