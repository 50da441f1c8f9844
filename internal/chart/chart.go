package chart

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/roach88/launchdash/internal/launch"
)

// AllSites is the site selector sentinel meaning "no site filter".
const AllSites = "ALL"

// Title formats shared with the rendered dashboard.
const (
	TitleProportionsAll  = "Total Success Launches by Site"
	titleProportionsSite = "Total Success Launches for site %s"
	TitleScatterAll      = "Payload vs. Outcome for All Sites"
	titleScatterSite     = "Payload vs. Outcome for %s"
)

// Slice is one labelled value of a proportion chart.
type Slice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Proportions is the table behind the outcome proportion chart.
type Proportions struct {
	Title string  `json:"title"`
	Rows  []Slice `json:"rows"`
}

// Total returns the sum of all row values.
func (p Proportions) Total() int {
	total := 0
	for _, r := range p.Rows {
		total += r.Value
	}
	return total
}

// Point is one launch plotted by payload mass against outcome class.
type Point struct {
	X     float64 `json:"x"`
	Y     int     `json:"y"`
	Color string  `json:"color"`
}

// Scatter is the table behind the payload-vs-outcome chart.
type Scatter struct {
	Title  string  `json:"title"`
	Points []Point `json:"points"`
}

// OutcomeProportions computes the proportion chart for the selected site.
//
// For AllSites, each distinct site gets one row whose value is its number
// of successful launches; sites with no successes appear with value 0.
// Rows follow the dataset's first-seen site order.
//
// For a single site, records at that site are counted per outcome class.
// Only classes present at the site appear, labelled "0" and "1", ascending.
// A site with no records yields an empty table.
func OutcomeProportions(ds *launch.Dataset, selectedSite string) Proportions {
	if selectedSite == AllSites {
		return successesBySite(ds)
	}
	return outcomesForSite(ds, selectedSite)
}

func successesBySite(ds *launch.Dataset) Proportions {
	out := Proportions{Title: TitleProportionsAll, Rows: []Slice{}}

	index := make(map[string]int)
	ds.Each(func(r launch.Record) {
		i, ok := index[r.LaunchSite]
		if !ok {
			i = len(out.Rows)
			index[r.LaunchSite] = i
			out.Rows = append(out.Rows, Slice{Label: r.LaunchSite})
		}
		out.Rows[i].Value += r.Class
	})

	return out
}

func outcomesForSite(ds *launch.Dataset, site string) Proportions {
	out := Proportions{
		Title: fmt.Sprintf(titleProportionsSite, site),
		Rows:  []Slice{},
	}

	counts := make(map[int]int)
	ds.Each(func(r launch.Record) {
		if r.LaunchSite == site {
			counts[r.Class]++
		}
	})

	for _, class := range slices.Sorted(maps.Keys(counts)) {
		out.Rows = append(out.Rows, Slice{Label: strconv.Itoa(class), Value: counts[class]})
	}

	return out
}

// ScatterSeries computes the payload-vs-outcome points for the selected site
// within payloadRange.
//
// Records are kept when Low <= PayloadMassKg <= High and, unless
// selectedSite is AllSites, when LaunchSite matches. Points keep dataset
// order; nothing is aggregated.
//
// Returns a *RangeError if payloadRange is inverted or has a NaN bound.
func ScatterSeries(ds *launch.Dataset, selectedSite string, payloadRange PayloadRange) (Scatter, error) {
	if err := payloadRange.Validate(); err != nil {
		return Scatter{}, err
	}

	out := Scatter{Title: TitleScatterAll, Points: []Point{}}
	if selectedSite != AllSites {
		out.Title = fmt.Sprintf(titleScatterSite, selectedSite)
	}

	ds.Each(func(r launch.Record) {
		if !payloadRange.Contains(r.PayloadMassKg) {
			return
		}
		if selectedSite != AllSites && r.LaunchSite != selectedSite {
			return
		}
		out.Points = append(out.Points, Point{
			X:     r.PayloadMassKg,
			Y:     r.Class,
			Color: r.BoosterVersionCategory,
		})
	})

	return out, nil
}
