package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/cli/habits"
	"github.com/zerefez/habitcal/internal/cli/system"
	"github.com/zerefez/habitcal/internal/constants"
	"github.com/zerefez/habitcal/internal/errors"
	"github.com/zerefez/habitcal/internal/logger"
	"github.com/zerefez/habitcal/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use ${env_conn}, .pgpass or the OS keyring instead." default:"${default_config}"`
	Timezone string `help:"IANA timezone used to decide what 'today' is." env:"${env_tz}" default:"${default_tz}"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitcal storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks on storage and configuration."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit   habits.HabitCmd   `cmd:"" help:"Manage habits and habit tracking."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks and calendar views"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"default_tz":     constants.DefaultTimezone,
			"env_conn":       constants.EnvDBConnection,
			"env_tz":         constants.EnvTimezone,
			"frequency_help": "One of: " + cli.FrequencyNames() + ". Unknown values fall back to daily.",
		},
	)

	configPath := expandHome(CLI.Config)
	logCloser, err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(configPath)})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	} else {
		defer logCloser.Close()
	}

	if !utils.ValidateTimezone(CLI.Timezone) {
		errors.Fatalf("invalid timezone %q", CLI.Timezone)
	}

	store, err := openStore(configPath, CLI.Config == constants.DefaultConfigPath)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()
	logger.Debug("Using storage", "backend", store.GetConfigPath(), "timezone", CLI.Timezone)

	appCtx := &cli.Context{
		Store:    store,
		Timezone: CLI.Timezone,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// logDir keeps logs next to the SQLite database, or in the default config
// directory when the config is a connection string.
func logDir(configPath string) string {
	if configPath == "" || strings.Contains(configPath, "://") || strings.Contains(configPath, "=") {
		return filepath.Dir(expandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(configPath)
}
