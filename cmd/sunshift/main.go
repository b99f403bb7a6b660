// Package main is the entry point for the sunshift CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/darkawower/sunshift/internal/config"
	"github.com/darkawower/sunshift/internal/core"
	"github.com/darkawower/sunshift/internal/theme"
	"github.com/darkawower/sunshift/internal/ui"
	"github.com/spf13/cobra"

	_ "github.com/darkawower/sunshift/internal/platform/darwin"
	_ "github.com/darkawower/sunshift/internal/platform/linux"
	_ "github.com/darkawower/sunshift/internal/platform/stub"
)

const version = "0.1.0"

// Agent constants
const (
	defaultInterval = config.DefaultInterval
	minInterval     = 60 // 1 minute minimum
)

var (
	// Global flags
	cfgFile        string
	latitudeFlag   float64
	longitudeFlag  float64
	cityFlag       string
	lightThemeFlag string
	darkThemeFlag  string
	offlineFlag    bool
	verbose        bool
	quiet          bool

	// Root flags
	daemonFlag   bool
	intervalFlag int

	// Global output
	out *ui.Output
)

func main() {
	rootCmd := newRootCmd()

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sunshift",
		Short: "Switch the desktop between light and dark at sunrise and sunset",
		Long: `Sunshift keeps the desktop theme in line with daylight at your location.
It resolves the location once (coordinates, city or IP lookup), computes
today's sunrise and sunset, and applies the light or dark theme.

Without --daemon it checks once and exits.`,
		Args: cobra.NoArgs,
		RunE: runRoot,
	}

	// Persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ~/.config/sunshift/config.toml)")
	pf.Float64Var(&latitudeFlag, "latitude", 0, "latitude in degrees (use with --longitude)")
	pf.Float64Var(&longitudeFlag, "longitude", 0, "longitude in degrees (use with --latitude)")
	pf.StringVar(&cityFlag, "city", "", "city name to geocode")
	pf.StringVar(&lightThemeFlag, "light-theme", "", "theme id to apply during the day")
	pf.StringVar(&darkThemeFlag, "dark-theme", "", "theme id to apply at night")
	pf.BoolVar(&offlineFlag, "offline", false, "disable geocoding and IP lookups")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.Flags().BoolVar(&daemonFlag, "daemon", false, "keep running and re-check every interval")
	rootCmd.Flags().IntVar(&intervalFlag, "interval", defaultInterval, "daemon check interval in seconds")

	// Add commands
	rootCmd.AddCommand(
		newStatusCmd(),
		newInitCmd(),
		newVersionCmd(),
		newAgentInstallCmd(),
		newAgentUninstallCmd(),
		newAgentStatusCmd(),
	)

	return rootCmd
}

// initOutput initializes the output.
func initOutput() {
	out = ui.DefaultOutput()
	out.SetVerbose(verbose)
	out.SetQuiet(quiet)
}

// runRoot runs one decision, or the daemon loop with --daemon.
func runRoot(cmd *cobra.Command, args []string) error {
	initOutput()

	ctx := cmd.Context()
	a, err := newApp(ctx, cmd.Flags())
	if err != nil {
		out.ErrorWithHint(err.Error(), "Check the config file or run 'sunshift init'")
		return err
	}
	defer a.Close()

	out.Debug("Config: %s", a.cfg.ConfigPath())
	out.Debug("Log: %s (run %s)", a.cfg.Log.Path, a.logger.RunID())

	if daemonFlag {
		return a.engine.Run(ctx)
	}

	result, err := a.engine.RunOnce(ctx)
	if err != nil {
		return err
	}

	switch {
	case result.Err != nil:
		out.Warning("%v", result.Err)
	case result.Changed:
		out.Success("Switched to %s theme", result.Target.Title())
	default:
		out.Success("%s theme already active", result.Target.Title())
	}
	out.Field("Location", a.location.String())
	out.Field("Theme", result.Desired)
	out.Field("Next change", result.NextChange())

	return nil
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show location, sun times and theme state",
		Long:  "Resolves the location and reports today's sun times and the desired theme without changing anything.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			ctx := cmd.Context()
			a, err := newApp(ctx, cmd.Flags())
			if err != nil {
				out.ErrorWithHint(err.Error(), "Check the config file or run 'sunshift init'")
				return err
			}
			defer a.Close()

			result := a.engine.Inspect(ctx)

			out.Info("Platform: %s", a.platform.Name())
			out.DaylightInfo(a.location.String(), result.SunTimes.Sunrise, result.SunTimes.Sunset,
				result.Target == theme.Light, result.SunTimes.Degraded)
			out.ThemeInfo(result.Desired, result.Current, result.NextChange())

			if result.Err != nil {
				out.Warning("%v", result.Err)
			}

			if days > 0 {
				out.Print("")
				out.Table([]string{"Date", "Sunrise", "Sunset", "Daylight"}, forecastRows(a, result.At, days))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "also list sun times for the next N days")

	return cmd
}

// forecastRows lists sun times for the days after from.
func forecastRows(a *app, from time.Time, days int) [][]string {
	rows := make([][]string, 0, days)
	for i := 1; i <= days; i++ {
		st := a.oracle.SunTimes(from.AddDate(0, 0, i))
		rows = append(rows, []string{
			st.Sunrise.Format("Mon 2006-01-02"),
			st.Sunrise.Format("15:04"),
			st.Sunset.Format("15:04"),
			formatDaylight(st.Sunset.Sub(st.Sunrise)),
		})
	}
	return rows
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize sunshift configuration",
		Long:  "Creates the default configuration file and log directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			configPath := cfgFile
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}

			// Check if already exists
			if _, err := os.Stat(configPath); err == nil && !force {
				out.Warning("Configuration already exists at %s", configPath)
				out.Info("Use --force to overwrite")
				return nil
			}

			cfg := config.DefaultConfig()
			cfg.Themes.Light, cfg.Themes.Dark = resolveThemes(cfg, currentPlatform().Theme())

			if err := cfg.EnsureDirectories(); err != nil {
				out.Error("Failed to create directories: %v", err)
				return err
			}

			if err := cfg.Save(configPath); err != nil {
				out.Error("Failed to write config: %v", err)
				return err
			}

			out.Success("Sunshift initialized")
			out.Field("Config", shortenPath(configPath))
			out.Field("Log", shortenPath(cfg.Log.Path))
			out.Field("Light", cfg.Themes.Light)
			out.Field("Dark", cfg.Themes.Dark)
			out.Print("")
			out.Info("Edit %s to set your city or coordinates", shortenPath(configPath))

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration")

	return cmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			initOutput()
			out.Print("sunshift version %s", version)
		},
	}
}

// newAgentInstallCmd creates the agent-install command.
func newAgentInstallCmd() *cobra.Command {
	var interval int

	cmd := &cobra.Command{
		Use:   "agent-install",
		Short: "Install background agent",
		Long:  "Installs a background service that runs 'sunshift --daemon' at login.",
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			// Validate interval
			if interval < minInterval {
				out.Error("Minimum interval is %d seconds", minInterval)
				return fmt.Errorf("interval too small")
			}

			configPath := ""
			if cfgFile != "" {
				abs, err := filepath.Abs(cfgFile)
				if err != nil {
					out.Error("Failed to resolve config path: %v", err)
					return err
				}
				configPath = abs
			}

			agent := newAgent()
			if err := agent.Install(time.Duration(interval)*time.Second, configPath); err != nil {
				out.Error("Failed to install agent: %v", err)
				return err
			}

			out.Success("Agent installed")
			out.Field("Interval", formatDuration(time.Duration(interval)*time.Second))
			out.Field("Log", shortenPath(agentLogPath()))

			return nil
		},
	}

	cmd.Flags().IntVar(&interval, "interval", defaultInterval, "check interval in seconds (minimum 60)")

	return cmd
}

// newAgentUninstallCmd creates the agent-uninstall command.
func newAgentUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent-uninstall",
		Short: "Uninstall background agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			agent := newAgent()
			status, err := agent.Status()
			if err != nil {
				out.Error("Failed to get agent status: %v", err)
				return err
			}

			if !status.Installed {
				out.Info("Agent is not installed")
				return nil
			}

			if err := agent.Uninstall(); err != nil {
				out.Error("Failed to uninstall agent: %v", err)
				return err
			}

			out.Success("Agent uninstalled")
			return nil
		},
	}
}

// newAgentStatusCmd creates the agent-status command.
func newAgentStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agent-status",
		Short: "Show agent status",
		RunE: func(cmd *cobra.Command, args []string) error {
			initOutput()

			status, err := newAgent().Status()
			if err != nil {
				out.Error("Failed to get agent status: %v", err)
				return err
			}

			if !status.Supported {
				out.Error("Background services are not supported on this platform")
				return fmt.Errorf("scheduler not supported")
			}

			if !status.Installed {
				out.Info("Agent is not installed")
				return nil
			}

			if status.Running {
				out.Success("Agent is running")
				if status.Interval > 0 {
					out.Field("Interval", formatDuration(status.Interval))
				}
				out.Field("Log", shortenPath(status.LogPath))
			} else {
				out.Warning("Agent is installed but not running")
				out.Field("Log", shortenPath(status.LogPath))
			}

			return nil
		},
	}
}

func newAgent() *core.Agent {
	return core.NewAgent(currentPlatform(), agentLogPath())
}

func agentLogPath() string {
	return filepath.Join(config.DefaultConfigDir(), "agent.log")
}

// shortenPath shortens a path for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if len(path) > len(home) && path[:len(home)] == home {
		return "~" + path[len(home):]
	}
	return path
}

// formatDuration formats duration to human readable (e.g., "1.5 minutes")
func formatDuration(d time.Duration) string {
	minutes := d.Minutes()
	if minutes == 1 {
		return "1 minute"
	}
	if minutes == float64(int(minutes)) {
		return fmt.Sprintf("%d minutes", int(minutes))
	}
	return fmt.Sprintf("%.1f minutes", minutes)
}

// formatDaylight formats a day length as "15h02m".
func formatDaylight(d time.Duration) string {
	d = d.Round(time.Minute)
	return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
