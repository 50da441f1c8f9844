package dashboard

import (
	"fmt"
	"log/slog"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/launch"
	"github.com/roach88/launchdash/internal/logging"
)

// Layout defaults.
const (
	DefaultHeading      = "SpaceX Launch Records Dashboard"
	DefaultSliderStep   = 1000
	DefaultMarkInterval = 5000
)

// Options controls layout and logging. Zero values take the defaults.
type Options struct {
	Heading      string
	SliderStep   float64
	MarkInterval float64
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Heading == "" {
		o.Heading = DefaultHeading
	}
	if o.SliderStep <= 0 {
		o.SliderStep = DefaultSliderStep
	}
	if o.MarkInterval <= 0 {
		o.MarkInterval = DefaultMarkInterval
	}
	if o.Logger == nil {
		o.Logger = logging.New("dashboard")
	}
	return o
}

// Renderer produces the figure for one output from the current state.
type Renderer func(ds *launch.Dataset, state ControlState) (Figure, error)

// Binding lists the outputs re-rendered when a control changes.
type Binding struct {
	Control string
	Outputs []string
}

// DefaultBindings is the control table of the launch dashboard.
var DefaultBindings = []Binding{
	{Control: ControlSite, Outputs: []string{OutputPieChart, OutputScatterChart}},
	{Control: ControlPayload, Outputs: []string{OutputScatterChart}},
}

// Dashboard binds a loaded dataset to the control table and renderers.
// It is read-only after New and safe for concurrent use.
type Dashboard struct {
	ds        *launch.Dataset
	bounds    launch.Bounds
	layout    Layout
	bindings  map[string][]string
	renderers map[string]Renderer
	outputs   []string
	logger    *slog.Logger
}

// New creates a dashboard over ds.
func New(ds *launch.Dataset, opts Options) *Dashboard {
	opts = opts.withDefaults()
	bounds := ds.Bounds()

	d := &Dashboard{
		ds:       ds,
		bounds:   bounds,
		layout:   BuildLayout(bounds, opts),
		bindings: make(map[string][]string, len(DefaultBindings)),
		renderers: map[string]Renderer{
			OutputPieChart:     renderPie,
			OutputScatterChart: renderScatter,
		},
		outputs: []string{OutputPieChart, OutputScatterChart},
		logger:  opts.Logger,
	}
	for _, b := range DefaultBindings {
		d.bindings[b.Control] = b.Outputs
	}
	return d
}

// Dataset returns the underlying dataset.
func (d *Dashboard) Dataset() *launch.Dataset {
	return d.ds
}

// Bounds returns the dataset bounds used to initialize the controls.
func (d *Dashboard) Bounds() launch.Bounds {
	return d.ds.Bounds()
}

// Layout returns the control layout.
func (d *Dashboard) Layout() Layout {
	return d.layout
}

// DefaultState returns the initial control state.
func (d *Dashboard) DefaultState() ControlState {
	return DefaultState(d.bounds)
}

// Outputs returns the outputs bound to control, or nil if it has none.
func (d *Dashboard) Outputs(control string) []string {
	return d.bindings[control]
}

// Render produces the figure for output under state.
func (d *Dashboard) Render(output string, state ControlState) (Figure, error) {
	render, ok := d.renderers[output]
	if !ok {
		return Figure{}, fmt.Errorf("unknown output %q", output)
	}
	return render(d.ds, state)
}

// RenderAll produces every output under state, in layout order.
func (d *Dashboard) RenderAll(state ControlState) ([]Figure, error) {
	figs := make([]Figure, 0, len(d.outputs))
	for _, out := range d.outputs {
		fig, err := d.Render(out, state)
		if err != nil {
			return nil, err
		}
		figs = append(figs, fig)
	}
	return figs, nil
}

func renderPie(ds *launch.Dataset, state ControlState) (Figure, error) {
	p := chart.OutcomeProportions(ds, state.SelectedSite)
	return Figure{Output: OutputPieChart, Kind: KindPie, Proportions: &p}, nil
}

func renderScatter(ds *launch.Dataset, state ControlState) (Figure, error) {
	s, err := chart.ScatterSeries(ds, state.SelectedSite, state.PayloadRange)
	if err != nil {
		return Figure{}, err
	}
	return Figure{Output: OutputScatterChart, Kind: KindScatter, Scatter: &s}, nil
}
