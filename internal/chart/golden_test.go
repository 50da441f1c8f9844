package chart

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// assertGolden compares v, marshalled as indented JSON, against
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/chart -update
func assertGolden(t *testing.T, name string, v any) {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
}

func TestGolden_OutcomeProportions(t *testing.T) {
	ds := threeLaunches()

	assertGolden(t, "outcome_all", OutcomeProportions(ds, AllSites))
	assertGolden(t, "outcome_site_a", OutcomeProportions(ds, "SiteA"))
}

func TestGolden_ScatterSeries(t *testing.T) {
	ds := threeLaunches()

	all, err := ScatterSeries(ds, AllSites, PayloadRange{Low: 0, High: 10000})
	require.NoError(t, err)
	assertGolden(t, "scatter_all", all)

	siteA, err := ScatterSeries(ds, "SiteA", PayloadRange{Low: 1000, High: 10000})
	require.NoError(t, err)
	assertGolden(t, "scatter_site_a", siteA)
}
