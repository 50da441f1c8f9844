package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const inlineScenario = `name: inline
description: "inline records"
records:
  - { launch_site: SiteA, class: 1, payload_mass_kg: 500, booster_version_category: v1 }
events:
  - control: site-dropdown
    value: SiteA
assertions:
  - type: row_count
    output: success-pie-chart
    count: 1
`

func TestLoadScenario_Inline(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "inline.yaml", inlineScenario)

	s, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "inline", s.Name)
	require.Len(t, s.Records, 1)
	assert.Equal(t, "SiteA", s.Records[0].LaunchSite)
	assert.Equal(t, 500.0, s.Records[0].PayloadMassKg)
	require.Len(t, s.Events, 1)
	assert.Equal(t, "SiteA", s.Events[0].Value)
}

func TestLoadScenario_ResolvesDataFile(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "site_then_range.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "data", "three_launches.csv"), s.DataFile)
	assert.Equal(t, []any{1000, 7000}, s.Events[1].Value)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"unknown field", "name: x\ndescription: d\nrecord: []\n", "failed to parse YAML"},
		{"missing name", "description: d\n", "name is required"},
		{"missing description", "name: x\n", "description is required"},
		{"no data", "name: x\ndescription: d\nassertions: [{type: title, output: o, title: t}]\n", "one of data_file or records"},
		{"missing data file", "name: x\ndescription: d\ndata_file: nope.csv\nassertions: [{type: title, output: o, title: t}]\n", "data file not found"},
		{"no assertions", "name: x\ndescription: d\nrecords: [{launch_site: A, class: 1, payload_mass_kg: 1, booster_version_category: v}]\n", "assertions list is required"},
		{"unknown assertion", "name: x\ndescription: d\nrecords: [{launch_site: A, class: 1, payload_mass_kg: 1, booster_version_category: v}]\nassertions: [{type: colour}]\n", `unknown assertion type "colour"`},
		{"rejected without step", "name: x\ndescription: d\nrecords: [{launch_site: A, class: 1, payload_mass_kg: 1, booster_version_category: v}]\nassertions: [{type: rejected}]\n", "step is required"},
		{"step out of range", "name: x\ndescription: d\nrecords: [{launch_site: A, class: 1, payload_mass_kg: 1, booster_version_category: v}]\nassertions: [{type: rejected, step: 0}]\n", "out of range"},
		{"event without control", "name: x\ndescription: d\nrecords: [{launch_site: A, class: 1, payload_mass_kg: 1, booster_version_category: v}]\nevents: [{value: A}]\nassertions: [{type: title, output: o, title: t}]\n", "control is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "s.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestFindScenarios(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "b.yaml", "")
	writeScenario(t, dir, "a.yml", "")
	writeScenario(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	writeScenario(t, filepath.Join(dir, "nested"), "c.yaml", "")

	files, err := FindScenarios(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yml"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yaml"),
	}, files)

	filtered, err := FindScenarios(dir, "b*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.yaml")}, filtered)

	_, err = FindScenarios(dir, "[")
	assert.Error(t, err)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "checkout.golden"), GoldenPath(filepath.Join("scenarios", "checkout.yaml")))
}

func TestWriteAndMatchGolden(t *testing.T) {
	scenario := &Scenario{Name: "g", Description: "golden", Records: threeRecords(),
		Assertions: []Assertion{{Type: AssertRowCount, Output: "success-pie-chart", Count: 2}}}
	result, err := Run(scenario)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "golden", "g.golden")
	require.NoError(t, WriteGolden(path, scenario, result))

	match, err := MatchGolden(path, scenario, result)
	require.NoError(t, err)
	assert.True(t, match)

	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	match, err = MatchGolden(path, scenario, result)
	require.NoError(t, err)
	assert.False(t, match)
}
