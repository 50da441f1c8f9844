package dashboard

import (
	"strconv"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/launch"
)

// Control ids.
const (
	ControlSite    = "site-dropdown"
	ControlPayload = "payload-slider"
)

// Output ids.
const (
	OutputPieChart     = "success-pie-chart"
	OutputScatterChart = "success-payload-scatter-chart"
)

// AllSitesLabel is the dropdown label for the chart.AllSites value.
const AllSitesLabel = "All Sites"

// Option is one entry of the site dropdown.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dropdown describes the site selector.
type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Mark is a labelled tick on the payload slider.
type Mark struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// RangeSlider describes the payload range selector.
type RangeSlider struct {
	ID    string             `json:"id"`
	Min   float64            `json:"min"`
	Max   float64            `json:"max"`
	Step  float64            `json:"step"`
	Marks []Mark             `json:"marks"`
	Value chart.PayloadRange `json:"value"`
}

// Layout is everything the page needs to build its controls.
type Layout struct {
	Heading  string      `json:"heading"`
	Dropdown Dropdown    `json:"dropdown"`
	Slider   RangeSlider `json:"slider"`
	Outputs  []string    `json:"outputs"`
}

// BuildLayout derives the control layout from the dataset bounds.
func BuildLayout(bounds launch.Bounds, opts Options) Layout {
	opts = opts.withDefaults()

	options := make([]Option, 0, len(bounds.Sites)+1)
	options = append(options, Option{Label: AllSitesLabel, Value: chart.AllSites})
	for _, site := range bounds.Sites {
		options = append(options, Option{Label: site, Value: site})
	}

	return Layout{
		Heading: opts.Heading,
		Dropdown: Dropdown{
			ID:          ControlSite,
			Options:     options,
			Value:       chart.AllSites,
			Placeholder: "Select a Launch Site here",
			Searchable:  true,
		},
		Slider: RangeSlider{
			ID:    ControlPayload,
			Min:   bounds.MinPayload,
			Max:   bounds.MaxPayload,
			Step:  opts.SliderStep,
			Marks: sliderMarks(bounds.MinPayload, bounds.MaxPayload, opts.MarkInterval),
			Value: chart.FullRange(bounds),
		},
		Outputs: []string{OutputPieChart, OutputScatterChart},
	}
}

// sliderMarks places a mark every interval kilograms from int(min) up to
// int(max) inclusive.
func sliderMarks(min, max, interval float64) []Mark {
	marks := []Mark{}
	step := int(interval)
	if step <= 0 {
		return marks
	}
	for v := int(min); v <= int(max); v += step {
		marks = append(marks, Mark{Value: v, Label: strconv.Itoa(v)})
	}
	return marks
}
