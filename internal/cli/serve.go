package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/launchdash/internal/dashboard"
	"github.com/roach88/launchdash/internal/logging"
	"github.com/roach88/launchdash/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string // overrides the config's listen address when set
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive dashboard",
		Long: `Load the launch file and serve the dashboard page and its API.

The dataset is read once at startup; a missing or malformed file stops
the command before anything listens. The server shuts down cleanly on
SIGINT or SIGTERM.

Examples:
  launchdash serve
  launchdash serve --data ./spacex_launch_dash.csv --listen :8050`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address host:port (overrides config listen)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadSettings(opts.RootOptions, cmd)
	if err != nil {
		return fail(formatter, "failed to load config", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	ds, err := loadDataset(cfg)
	if err != nil {
		return fail(formatter, "failed to load dataset", err)
	}

	dash := dashboard.New(ds, dashboard.Options{
		Heading:      cfg.Heading,
		SliderStep:   cfg.SliderStep,
		MarkInterval: cfg.MarkInterval,
		Logger:       logging.New("dashboard"),
	})
	srv := server.New(dash, server.Options{
		Addr:        cfg.Listen,
		MaxSessions: cfg.MaxSessions,
		Logger:      logging.New("server"),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fail(formatter, "failed to listen", fmt.Errorf("listen %s: %w", cfg.Listen, err))
	}

	url := "http://" + ln.Addr().String()
	if opts.Format == "json" {
		_ = formatter.Success(map[string]any{
			"url":     url,
			"records": ds.Len(),
			"sites":   ds.Sites(),
		})
	} else {
		fmt.Fprintf(formatter.Writer, "Dashboard running at %s (%d launches, %d sites)\n", url, ds.Len(), len(ds.Sites()))
	}

	if err := srv.Serve(ctx, ln); err != nil {
		return WrapExitError(ExitCommandError, "server failed", err)
	}
	return nil
}
