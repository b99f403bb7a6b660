package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/darkawower/sunshift/internal/platform"
)

// AgentLabel identifies the background service on every platform.
const AgentLabel = "sunshift"

// Agent installs the daemon as a background service.
type Agent struct {
	platform platform.Platform
	logPath  string
}

// NewAgent creates an agent manager. logPath receives the service's own
// stdout/stderr.
func NewAgent(p platform.Platform, logPath string) *Agent {
	return &Agent{platform: p, logPath: logPath}
}

// Install installs the background agent running the daemon every interval.
// A non-empty configPath is forwarded to the daemon.
func (a *Agent) Install(interval time.Duration, configPath string) error {
	scheduler := a.platform.Scheduler()
	if !scheduler.IsSupported() {
		return fmt.Errorf("scheduler not supported on %s: %w", a.platform.Name(), platform.ErrUnsupported)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := platform.SchedulerConfig{
		Label:     AgentLabel,
		Command:   execPath,
		Args:      AgentArgs(interval, configPath),
		Interval:  interval,
		RunAtLoad: true,
		LogPath:   a.logPath,
	}

	return scheduler.Install(cfg)
}

// Uninstall uninstalls the background agent.
func (a *Agent) Uninstall() error {
	scheduler := a.platform.Scheduler()
	if !scheduler.IsSupported() {
		return fmt.Errorf("scheduler not supported on %s: %w", a.platform.Name(), platform.ErrUnsupported)
	}
	return scheduler.Uninstall(AgentLabel)
}

// Status returns the status of the background agent.
func (a *Agent) Status() (*AgentStatus, error) {
	scheduler := a.platform.Scheduler()

	status := &AgentStatus{
		Supported: scheduler.IsSupported(),
		LogPath:   a.logPath,
	}

	if !scheduler.IsSupported() {
		return status, nil
	}

	platformStatus, err := scheduler.Status(AgentLabel)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent status: %w", err)
	}

	status.Installed = platformStatus.Installed
	status.Running = platformStatus.Running
	status.Interval = platformStatus.Interval
	if platformStatus.LogPath != "" {
		status.LogPath = platformStatus.LogPath
	}

	return status, nil
}

// AgentArgs builds the daemon command line. The service captures output
// itself, so the stderr copy of the log is dropped.
func AgentArgs(interval time.Duration, configPath string) []string {
	args := []string{"--daemon", "--interval", strconv.Itoa(int(interval.Seconds())), "--quiet"}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return args
}
