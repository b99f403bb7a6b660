package main

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/darkawower/sunshift/internal/config"
	"github.com/darkawower/sunshift/internal/location"
	"github.com/darkawower/sunshift/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flagSet map[string]bool

func (f flagSet) Changed(name string) bool { return f[name] }

type fakeTheme struct {
	mu      sync.Mutex
	current string
	applied []string
}

func (f *fakeTheme) CurrentTheme(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, nil
}

func (f *fakeTheme) ApplyTheme(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, id)
	f.current = id
	return nil
}

func (f *fakeTheme) Defaults() (string, string) {
	return "org.kde.breeze.desktop", "org.kde.breezedark.desktop"
}

type fakeNotifier struct{}

func (fakeNotifier) Notify(ctx context.Context, title, message string) error { return nil }

type fakePlatform struct {
	theme *fakeTheme
}

func (p *fakePlatform) Name() string                         { return "fake" }
func (p *fakePlatform) IsSupported() bool                    { return true }
func (p *fakePlatform) Theme() platform.ThemeService         { return p.theme }
func (p *fakePlatform) Notifier() platform.NotifierService   { return fakeNotifier{} }
func (p *fakePlatform) Scheduler() platform.SchedulerService { return nil }

func useFakePlatform(t *testing.T) *fakeTheme {
	t.Helper()

	th := &fakeTheme{current: "unknown"}
	prev := currentPlatform
	currentPlatform = func() platform.Platform { return &fakePlatform{theme: th} }
	t.Cleanup(func() { currentPlatform = prev })
	return th
}

// writeConfig writes a config that keeps the log inside the test dir.
func writeConfig(t *testing.T, body string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	logPath := filepath.Join(dir, "sunshift.log")
	content := "[log]\npath = \"" + logPath + "\"\n\n" + body
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestApplyFlags(t *testing.T) {
	newRootCmd()
	latitudeFlag = 51.5
	longitudeFlag = -0.12
	cityFlag = "London"
	lightThemeFlag = "light-id"
	darkThemeFlag = "dark-id"
	intervalFlag = 60
	offlineFlag = true

	cfg := config.DefaultConfig()
	cfg.Location.City = "Paris"
	applyFlags(cfg, flagSet{
		"latitude": true, "longitude": true, "city": true,
		"light-theme": true, "dark-theme": true, "interval": true,
	})

	require.NotNil(t, cfg.Location.Latitude)
	require.NotNil(t, cfg.Location.Longitude)
	assert.Equal(t, 51.5, *cfg.Location.Latitude)
	assert.Equal(t, -0.12, *cfg.Location.Longitude)
	assert.Equal(t, "London", cfg.Location.City)
	assert.Equal(t, "light-id", cfg.Themes.Light)
	assert.Equal(t, "dark-id", cfg.Themes.Dark)
	assert.Equal(t, 60, cfg.Daemon.Interval)
	assert.False(t, cfg.Network.Enabled)
}

func TestApplyFlags_UnsetFlagsKeepConfig(t *testing.T) {
	newRootCmd()
	cityFlag = "London"

	cfg := config.DefaultConfig()
	cfg.Location.City = "Paris"
	applyFlags(cfg, flagSet{})

	assert.Equal(t, "Paris", cfg.Location.City)
	assert.Nil(t, cfg.Location.Latitude)
	assert.Equal(t, config.DefaultInterval, cfg.Daemon.Interval)
	assert.True(t, cfg.Network.Enabled)
}

func TestLoadConfig_FlagValidation(t *testing.T) {
	newRootCmd()
	cfgFile = writeConfig(t, "")
	intervalFlag = 0

	_, err := loadConfig(flagSet{"interval": true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interval")
}

func TestResolveThemes(t *testing.T) {
	defaults := &fakeTheme{}

	cfg := config.DefaultConfig()
	light, dark := resolveThemes(cfg, defaults)
	assert.Equal(t, "org.kde.breeze.desktop", light)
	assert.Equal(t, "org.kde.breezedark.desktop", dark)

	cfg.Themes.Dark = "com.example.night"
	light, dark = resolveThemes(cfg, defaults)
	assert.Equal(t, "org.kde.breeze.desktop", light)
	assert.Equal(t, "com.example.night", dark)
}

func TestLookupServices(t *testing.T) {
	cfg := config.DefaultConfig()

	g, l := lookupServices(cfg)
	assert.IsType(t, &location.Nominatim{}, g)
	assert.IsType(t, &location.IPAPI{}, l)

	cfg.Network.Enabled = false
	g, l = lookupServices(cfg)
	assert.Equal(t, location.Unavailable{}, g)
	assert.Equal(t, location.Unavailable{}, l)
}

func TestDefaultLocation(t *testing.T) {
	loc := defaultLocation(config.DefaultConfig())

	assert.Equal(t, "New York", loc.Name)
	assert.Equal(t, "America/New_York", loc.Timezone)
	assert.InDelta(t, 40.7128, loc.Latitude, 1e-9)
	assert.InDelta(t, -74.0060, loc.Longitude, 1e-9)
}

func TestNewApp_ExplicitCoordinatesOffline(t *testing.T) {
	useFakePlatform(t)
	newRootCmd()
	cfgFile = writeConfig(t, "[location]\nlatitude = 51.5074\nlongitude = -0.1278\n\n[network]\nenabled = false\n")
	quiet = true

	a, err := newApp(context.Background(), flagSet{})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, location.NameCustom, a.location.Name)
	assert.InDelta(t, 51.5074, a.location.Latitude, 1e-9)
	assert.Equal(t, "org.kde.breeze.desktop", a.engine.Config().LightTheme)

	data, err := os.ReadFile(a.cfg.Log.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "location resolved")
}

func TestNewApp_OfflineFallsBackToDefault(t *testing.T) {
	useFakePlatform(t)
	newRootCmd()
	cfgFile = writeConfig(t, "[location]\ncity = \"Atlantis\"\n")
	offlineFlag = true
	quiet = true

	a, err := newApp(context.Background(), flagSet{})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, "New York", a.location.Name)
}

func TestRootCommand_OneShot(t *testing.T) {
	th := useFakePlatform(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--config", writeConfig(t, ""),
		"--latitude", "51.5074", "--longitude", "-0.1278",
		"--offline", "--quiet",
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	th.mu.Lock()
	defer th.mu.Unlock()
	require.Len(t, th.applied, 1)
	assert.Contains(t, []string{"org.kde.breeze.desktop", "org.kde.breezedark.desktop"}, th.applied[0])
}

func TestRootCommand_OneShotAlreadyCorrect(t *testing.T) {
	th := useFakePlatform(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--config", writeConfig(t, ""),
		"--latitude", "51.5074", "--longitude", "-0.1278",
		"--light-theme", "same", "--dark-theme", "same",
		"--offline", "--quiet",
	})
	th.current = "same"

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Empty(t, th.applied)
}

func TestRootCommand_InvalidInterval(t *testing.T) {
	useFakePlatform(t)

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--config", writeConfig(t, ""), "--interval", "0", "--offline", "--quiet"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

func TestRootCommand_DaemonStopsOnCancel(t *testing.T) {
	useFakePlatform(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"--config", writeConfig(t, ""),
		"--latitude", "0", "--longitude", "0",
		"--daemon", "--interval", "1", "--offline", "--quiet",
	})

	assert.NoError(t, cmd.ExecuteContext(ctx))
}
