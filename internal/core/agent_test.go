package core

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/darkawower/sunshift/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct {
	supported bool
	installed []platform.SchedulerConfig
	removed   []string
	status    platform.SchedulerStatus
	err       error
}

func (s *fakeScheduler) Install(config platform.SchedulerConfig) error {
	s.installed = append(s.installed, config)
	return s.err
}

func (s *fakeScheduler) Uninstall(label string) error {
	s.removed = append(s.removed, label)
	return s.err
}

func (s *fakeScheduler) Status(label string) (platform.SchedulerStatus, error) {
	return s.status, s.err
}

func (s *fakeScheduler) IsSupported() bool { return s.supported }

type fakePlatform struct {
	scheduler *fakeScheduler
}

func (p *fakePlatform) Name() string                         { return "fake" }
func (p *fakePlatform) IsSupported() bool                    { return p.scheduler.supported }
func (p *fakePlatform) Theme() platform.ThemeService         { return nil }
func (p *fakePlatform) Notifier() platform.NotifierService   { return nil }
func (p *fakePlatform) Scheduler() platform.SchedulerService { return p.scheduler }

func TestAgent_Install(t *testing.T) {
	sched := &fakeScheduler{supported: true}
	logPath := filepath.Join(t.TempDir(), "agent.log")
	agent := NewAgent(&fakePlatform{scheduler: sched}, logPath)

	err := agent.Install(5*time.Minute, "/etc/sunshift.toml")

	require.NoError(t, err)
	require.Len(t, sched.installed, 1)
	cfg := sched.installed[0]
	assert.Equal(t, AgentLabel, cfg.Label)
	assert.NotEmpty(t, cfg.Command)
	assert.Equal(t, []string{"--daemon", "--interval", "300", "--quiet", "--config", "/etc/sunshift.toml"}, cfg.Args)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.True(t, cfg.RunAtLoad)
	assert.Equal(t, logPath, cfg.LogPath)
	assert.DirExists(t, filepath.Dir(logPath))
}

func TestAgent_Unsupported(t *testing.T) {
	agent := NewAgent(&fakePlatform{scheduler: &fakeScheduler{}}, filepath.Join(t.TempDir(), "agent.log"))

	assert.ErrorIs(t, agent.Install(time.Minute, ""), platform.ErrUnsupported)
	assert.ErrorIs(t, agent.Uninstall(), platform.ErrUnsupported)

	status, err := agent.Status()
	require.NoError(t, err)
	assert.False(t, status.Supported)
	assert.False(t, status.Installed)
}

func TestAgent_Status(t *testing.T) {
	sched := &fakeScheduler{
		supported: true,
		status: platform.SchedulerStatus{
			Installed: true,
			Running:   true,
			Interval:  2 * time.Minute,
			LogPath:   "/var/log/sunshift.log",
		},
	}
	agent := NewAgent(&fakePlatform{scheduler: sched}, "/tmp/agent.log")

	status, err := agent.Status()

	require.NoError(t, err)
	assert.True(t, status.Supported)
	assert.True(t, status.Installed)
	assert.True(t, status.Running)
	assert.Equal(t, 2*time.Minute, status.Interval)
	assert.Equal(t, "/var/log/sunshift.log", status.LogPath)
}

func TestAgent_StatusError(t *testing.T) {
	sched := &fakeScheduler{supported: true, err: errors.New("permission denied")}
	agent := NewAgent(&fakePlatform{scheduler: sched}, "/tmp/agent.log")

	_, err := agent.Status()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get agent status")
}

func TestAgent_Uninstall(t *testing.T) {
	sched := &fakeScheduler{supported: true}
	agent := NewAgent(&fakePlatform{scheduler: sched}, "/tmp/agent.log")

	require.NoError(t, agent.Uninstall())
	assert.Equal(t, []string{AgentLabel}, sched.removed)
}

func TestAgentArgs(t *testing.T) {
	assert.Equal(t, []string{"--daemon", "--interval", "60", "--quiet"}, AgentArgs(time.Minute, ""))
}
