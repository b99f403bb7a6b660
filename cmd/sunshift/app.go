package main

import (
	"context"
	"fmt"

	"github.com/darkawower/sunshift/internal/config"
	"github.com/darkawower/sunshift/internal/core"
	"github.com/darkawower/sunshift/internal/daylight"
	"github.com/darkawower/sunshift/internal/location"
	"github.com/darkawower/sunshift/internal/logging"
	"github.com/darkawower/sunshift/internal/platform"
	"github.com/darkawower/sunshift/internal/solar"
)

// currentPlatform is swapped in tests.
var currentPlatform = platform.Current

// app is the wired set of components for one invocation.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	platform platform.Platform
	location location.Location
	oracle   *daylight.Oracle
	engine   *core.Engine
}

// changedFlags reports which command-line flags were set explicitly.
type changedFlags interface {
	Changed(name string) bool
}

// loadConfig loads the config file and layers explicit flags on top.
func loadConfig(flags changedFlags) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies explicitly set flags into cfg. Flags win over the file.
func applyFlags(cfg *config.Config, flags changedFlags) {
	if flags.Changed("latitude") {
		lat := latitudeFlag
		cfg.Location.Latitude = &lat
	}
	if flags.Changed("longitude") {
		lon := longitudeFlag
		cfg.Location.Longitude = &lon
	}
	if flags.Changed("city") {
		cfg.Location.City = cityFlag
	}
	if flags.Changed("light-theme") {
		cfg.Themes.Light = lightThemeFlag
	}
	if flags.Changed("dark-theme") {
		cfg.Themes.Dark = darkThemeFlag
	}
	if flags.Changed("interval") {
		cfg.Daemon.Interval = intervalFlag
	}
	if offlineFlag {
		cfg.Network.Enabled = false
	}
}

// themeDefaults supplies platform theme ids.
type themeDefaults interface {
	Defaults() (light, dark string)
}

// resolveThemes fills unset theme ids from the platform defaults.
func resolveThemes(cfg *config.Config, defaults themeDefaults) (string, string) {
	light, dark := defaults.Defaults()
	if cfg.Themes.Light != "" {
		light = cfg.Themes.Light
	}
	if cfg.Themes.Dark != "" {
		dark = cfg.Themes.Dark
	}
	return light, dark
}

// lookupServices selects the network capability once for the process.
func lookupServices(cfg *config.Config) (location.Geocoder, location.IPLocator) {
	if !cfg.Network.Enabled {
		return location.Unavailable{}, location.Unavailable{}
	}

	timeout := cfg.NetworkTimeout()
	return location.NewNominatim(cfg.Network.GeocodingURL, cfg.Network.UserAgent, timeout),
		location.NewIPAPI(cfg.Network.IPURL, cfg.Network.UserAgent, timeout)
}

func locationQuery(cfg *config.Config) location.Query {
	return location.Query{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
		City:      cfg.Location.City,
	}
}

func defaultLocation(cfg *config.Config) location.Location {
	d := cfg.Location.Default
	return location.Location{
		Name:      d.Name,
		Region:    d.Region,
		Timezone:  d.Timezone,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
	}
}

// newApp loads configuration, resolves the location once and builds the
// engine on top of the current platform.
func newApp(ctx context.Context, flags changedFlags) (*app, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(logging.Options{
		Path:    cfg.Log.Path,
		Verbose: verbose,
		Quiet:   quiet,
	})
	if err != nil {
		return nil, err
	}

	p := currentPlatform()
	if !p.IsSupported() {
		logger.Warn("platform not supported, theme changes will fail", "platform", p.Name())
	}

	geocoder, locator := lookupServices(cfg)
	resolver := location.NewResolver(geocoder, locator, defaultLocation(cfg), logger.Logger,
		location.WithTimeout(cfg.NetworkTimeout()))

	loc := resolver.Resolve(ctx, locationQuery(cfg))
	logger.Info("location resolved", "location", loc.String(), "timezone", loc.Timezone)

	oracle := daylight.New(loc, solar.New(logger.Logger), logger.Logger)

	light, dark := resolveThemes(cfg, p.Theme())
	engine, err := core.New(oracle, p.Theme(), p.Theme(), core.LoopConfig{
		PollInterval: cfg.PollInterval(),
		LightTheme:   light,
		DarkTheme:    dark,
	},
		core.WithNotifier(p.Notifier()),
		core.WithLogger(logger.Logger),
	)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		platform: p,
		location: loc,
		oracle:   oracle,
		engine:   engine,
	}, nil
}

func (a *app) Close() error {
	return a.logger.Close()
}
