package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/config"
	"github.com/roach88/launchdash/internal/dashboard"
	"github.com/roach88/launchdash/internal/launch"
	"github.com/roach88/launchdash/internal/logging"
)

// ErrCodeGeneric is reported for errors that carry no code of their own.
const ErrCodeGeneric = "E001"

// newFormatter builds the output formatter for cmd.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// loadSettings loads --config over the defaults, applies --data and
// configures logging.
func loadSettings(opts *RootOptions, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if opts.DataPath != "" {
		cfg.DataPath = opts.DataPath
	}

	setupLogging(opts, cfg, cmd.ErrOrStderr())
	return cfg, nil
}

// setupLogging configures the global slog logger. --verbose selects debug
// regardless of the configured level.
func setupLogging(opts *RootOptions, cfg config.Config, w io.Writer) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, cfg.Log.Format, w)
}

// loadDataset loads the launch file named by cfg.
func loadDataset(cfg config.Config) (*launch.Dataset, error) {
	ds, err := launch.Load(cfg.DataPath)
	if err != nil {
		return nil, err
	}
	logging.New("cli").Debug("dataset loaded",
		"path", cfg.DataPath,
		"records", ds.Len(),
		"sites", len(ds.Sites()),
	)
	return ds, nil
}

// errorCode returns the code carried by err, or ErrCodeGeneric.
func errorCode(err error) string {
	var (
		ce *config.Error
		re *chart.RangeError
		se *dashboard.StateError
	)
	switch {
	case errors.As(err, &ce):
		return ce.Code
	case launch.ErrorCode(err) != "":
		return launch.ErrorCode(err)
	case errors.As(err, &re):
		return chart.ErrCodeInvalidRange
	case errors.As(err, &se):
		return se.Code
	default:
		return ErrCodeGeneric
	}
}

// fail reports err through the formatter and returns it as a command error
// (exit code 2).
func fail(f *OutputFormatter, message string, err error) error {
	_ = f.Error(errorCode(err), err.Error(), nil)
	return WrapExitError(ExitCommandError, message, err)
}
