package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/launch"
	"github.com/roach88/launchdash/internal/logging"
)

// NewBoundsCommand creates the bounds command.
func NewBoundsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bounds",
		Short: "Show payload bounds and launch sites",
		Long: `Load the launch file and print the payload mass range and the
distinct launch sites in first-seen order. These are the values the
dashboard controls are initialized from.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBounds(rootOpts, cmd)
		},
	}
}

func runBounds(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	cfg, err := loadSettings(opts, cmd)
	if err != nil {
		return fail(formatter, "failed to load config", err)
	}
	ds, err := loadDataset(cfg)
	if err != nil {
		return fail(formatter, "failed to load dataset", err)
	}

	b := ds.Bounds()
	return formatter.Emit(b, func(w io.Writer) {
		fmt.Fprintf(w, "Payload range: %s - %s kg\n", formatMass(b.MinPayload), formatMass(b.MaxPayload))
		fmt.Fprintf(w, "Sites (%d):\n", len(b.Sites))
		for _, site := range b.Sites {
			fmt.Fprintf(w, "  %s\n", site)
		}
	})
}

// OutcomeOptions holds flags for the outcome command.
type OutcomeOptions struct {
	*RootOptions
	Site string
}

// NewOutcomeCommand creates the outcome command.
func NewOutcomeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &OutcomeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Print the launch outcome proportion table",
		Long: `Print the table behind the outcome pie chart.

With --site ALL (the default) each launch site gets one row counting its
successful launches. With a single site, launches at that site are
counted per outcome class (0 = failure, 1 = success).

Examples:
  launchdash outcome
  launchdash outcome --site "KSC LC-39A" --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutcome(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", chart.AllSites, "launch site, or ALL")

	return cmd
}

func runOutcome(opts *OutcomeOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadSettings(opts.RootOptions, cmd)
	if err != nil {
		return fail(formatter, "failed to load config", err)
	}
	ds, err := loadDataset(cfg)
	if err != nil {
		return fail(formatter, "failed to load dataset", err)
	}
	warnUnknownSite(ds, opts.Site)

	p := chart.OutcomeProportions(ds, opts.Site)
	return formatter.Emit(p, func(w io.Writer) {
		fmt.Fprintln(w, p.Title)
		rows := make([][]string, 0, len(p.Rows))
		for _, r := range p.Rows {
			rows = append(rows, []string{r.Label, strconv.Itoa(r.Value)})
		}
		header := []string{"SITE", "SUCCESSES"}
		if opts.Site != chart.AllSites {
			header = []string{"CLASS", "LAUNCHES"}
		}
		writeTable(w, header, rows)
	})
}

// ScatterOptions holds flags for the scatter command.
type ScatterOptions struct {
	*RootOptions
	Site string
	Low  float64
	High float64
}

// NewScatterCommand creates the scatter command.
func NewScatterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScatterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Print payload mass against outcome for a payload range",
		Long: `Print one point per launch whose payload mass lies in [low, high],
optionally restricted to one launch site. Bounds not given default to the
dataset's payload range.

Examples:
  launchdash scatter --low 2000 --high 8000
  launchdash scatter --site "VAFB SLC-4E" --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScatter(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", chart.AllSites, "launch site, or ALL")
	cmd.Flags().Float64Var(&opts.Low, "low", 0, "lowest payload mass in kg (default: dataset minimum)")
	cmd.Flags().Float64Var(&opts.High, "high", 0, "highest payload mass in kg (default: dataset maximum)")

	return cmd
}

func runScatter(opts *ScatterOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := loadSettings(opts.RootOptions, cmd)
	if err != nil {
		return fail(formatter, "failed to load config", err)
	}
	ds, err := loadDataset(cfg)
	if err != nil {
		return fail(formatter, "failed to load dataset", err)
	}
	warnUnknownSite(ds, opts.Site)

	rng := chart.FullRange(ds.Bounds())
	if cmd.Flags().Changed("low") {
		rng.Low = opts.Low
	}
	if cmd.Flags().Changed("high") {
		rng.High = opts.High
	}
	formatter.VerboseLog("Payload range %s", rng)

	s, err := chart.ScatterSeries(ds, opts.Site, rng)
	if err != nil {
		return fail(formatter, "invalid payload range", err)
	}

	return formatter.Emit(s, func(w io.Writer) {
		fmt.Fprintln(w, s.Title)
		rows := make([][]string, 0, len(s.Points))
		for _, p := range s.Points {
			rows = append(rows, []string{formatMass(p.X), strconv.Itoa(p.Y), p.Color})
		}
		writeTable(w, []string{"PAYLOAD_KG", "CLASS", "BOOSTER"}, rows)
	})
}

// warnUnknownSite logs when site matches no launches. The transforms still
// run and return empty tables.
func warnUnknownSite(ds *launch.Dataset, site string) {
	if site == chart.AllSites || ds.Bounds().HasSite(site) {
		return
	}
	logging.New("cli").Warn("site has no launches",
		"site", site,
		"known", strings.Join(ds.Sites(), ", "),
	)
}

func formatMass(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
