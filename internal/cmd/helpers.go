package cmd

import (
	"log/slog"
	"os"

	"github.com/lodestone-launcher/lodestone/internal/config"
	"github.com/lodestone-launcher/lodestone/internal/flame"
	"github.com/lodestone-launcher/lodestone/internal/interactive"
	"github.com/lodestone-launcher/lodestone/internal/logging"
	"github.com/lodestone-launcher/lodestone/internal/output"
	"github.com/lodestone-launcher/lodestone/internal/prefs"
	"github.com/lodestone-launcher/lodestone/internal/update"
)

// loadConfig resolves the config file and applies flag overrides.
func loadConfig() (*config.Config, error) {
	path, err := config.FindConfig(configPath)
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if path == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if appDir != "" {
		cfg.AppDir = appDir
	}
	return cfg, nil
}

// newLogger builds the command logger from the global flags.
func newLogger() *slog.Logger {
	level := "info"
	if verbose {
		level = "debug"
	}
	if quiet {
		level = "error"
	}
	return logging.New(level, logFormat, os.Stderr)
}

// openPrefs opens the preferences store under the configured data dir.
func openPrefs(cfg *config.Config) (*prefs.Store, error) {
	return prefs.Load(cfg.DataDir)
}

// newRunner builds the updater process runner for the configured dirs.
func newRunner(cfg *config.Config, logger *slog.Logger) *update.ExecRunner {
	name := update.UpdaterBinaryName(cfg.UpdaterBinary)
	return update.NewExecRunner(cfg.AppDir, cfg.DataDir, name, logger)
}

// newPrompter picks an interactive prompter on a TTY and a report-only one
// otherwise, so piped or scheduled runs never block on stdin.
func newPrompter() update.OfferPrompter {
	if interactive.IsTerminal() {
		return interactive.NewPrompter()
	}
	return interactive.NewReportingPrompter(os.Stdout)
}

// newController wires the full update decision flow.
func newController(cfg *config.Config, store *prefs.Store, prompter update.OfferPrompter, logger *slog.Logger) *update.Controller {
	return update.NewController(store, newRunner(cfg, logger), prompter, launcherVersion, logger)
}

// newFlameClient builds the mod catalog client from the config.
func newFlameClient(cfg *config.Config) *flame.Client {
	return flame.NewClient(cfg.Flame.BaseURL, cfg.Flame.GameID, cfg.Flame.APIKey)
}

// newOutputWriter builds the stdout writer for the --output flag.
func newOutputWriter() (*output.Writer, error) {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return nil, err
	}
	return output.NewWriter(os.Stdout, format), nil
}
