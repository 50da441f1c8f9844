package dashboard

import "github.com/roach88/launchdash/internal/chart"

// Figure kinds.
const (
	KindPie     = "pie"
	KindScatter = "scatter"
)

// Figure is the chart data rendered into one output. Exactly one of
// Proportions and Scatter is set, matching Kind.
type Figure struct {
	Output      string             `json:"output"`
	Kind        string             `json:"kind"`
	Proportions *chart.Proportions `json:"proportions,omitempty"`
	Scatter     *chart.Scatter     `json:"scatter,omitempty"`
}

// Title returns the chart title.
func (f Figure) Title() string {
	switch {
	case f.Proportions != nil:
		return f.Proportions.Title
	case f.Scatter != nil:
		return f.Scatter.Title
	default:
		return ""
	}
}

// Len returns the number of rows or points.
func (f Figure) Len() int {
	switch {
	case f.Proportions != nil:
		return len(f.Proportions.Rows)
	case f.Scatter != nil:
		return len(f.Scatter.Points)
	default:
		return 0
	}
}

// Update is a figure produced by one Apply call, stamped with the session's
// logical sequence number.
type Update struct {
	Seq int64 `json:"seq"`
	Figure
}
