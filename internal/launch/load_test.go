package launch

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/launchdash/internal/testutil"
)

func TestLoad_ThreeLaunches(t *testing.T) {
	path := testutil.WriteTemp(t, "launches.csv", testutil.ThreeLaunchCSV)

	ds, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())

	assert.Equal(t, Record{
		FlightNumber:           1,
		LaunchSite:             "SiteA",
		Class:                  1,
		PayloadMassKg:          500,
		BoosterVersion:         "F9 v1.0  B0003",
		BoosterVersionCategory: "v1",
	}, ds.At(0))
	assert.Equal(t, path, ds.Source())

	b := ds.Bounds()
	assert.Equal(t, 500.0, b.MinPayload)
	assert.Equal(t, 7000.0, b.MaxPayload)
	assert.Equal(t, []string{"SiteA", "SiteB"}, b.Sites)
}

func TestLoad_FileNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	ds, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, ds)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeFileNotFound, le.Code)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestParse_ColumnOrderIndependent(t *testing.T) {
	data := testutil.CSV(
		[]string{"Booster Version Category", "Payload Mass (kg)", "class", "Launch Site"},
		[]string{"FT", "3200", "1", "KSC LC-39A"},
		[]string{"B4", "9600", "0", "VAFB SLC-4E"},
	)

	ds, err := Parse(strings.NewReader(data), "inline")
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, "KSC LC-39A", ds.At(0).LaunchSite)
	assert.Equal(t, 3200.0, ds.At(0).PayloadMassKg)
	assert.Equal(t, "FT", ds.At(0).BoosterVersionCategory)
	assert.Equal(t, 0, ds.At(0).FlightNumber, "optional column absent")
	assert.Equal(t, "", ds.At(0).BoosterVersion, "optional column absent")
}

func TestParse_HeaderWithBOMAndPadding(t *testing.T) {
	data := "\ufeffLaunch Site , class,Payload Mass (kg),Booster Version Category\n" +
		"CCAFS LC-40,1,500,v1.1\n"

	ds, err := Parse(strings.NewReader(data), "bom")
	require.NoError(t, err)
	assert.Equal(t, "CCAFS LC-40", ds.At(0).LaunchSite)
}

func TestParse_NormalizesSiteNames(t *testing.T) {
	// e + combining acute vs precomposed U+00E9
	decomposed := "Site" + "e\u0301"
	precomposed := "Site\u00e9"
	data := testutil.CSV(
		[]string{"Launch Site", "class", "Payload Mass (kg)", "Booster Version Category"},
		[]string{decomposed, "1", "100", "v1"},
		[]string{precomposed, "0", "200", "v1"},
	)

	ds, err := Parse(strings.NewReader(data), "nfc")
	require.NoError(t, err)
	assert.Equal(t, []string{precomposed}, ds.Sites())
}

func TestParse_MissingRequiredColumns(t *testing.T) {
	data := testutil.CSV(
		[]string{"Launch Site", "Payload Mass (kg)"},
		[]string{"SiteA", "100"},
	)

	_, err := Parse(strings.NewReader(data), "cols")
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeMissingColumn, le.Code)
	assert.Equal(t, "cols", le.Path)
	assert.Contains(t, le.Message, "class")
	assert.Contains(t, le.Message, "Booster Version Category")
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""), "empty")
	require.Error(t, err)
	assert.Equal(t, ErrCodeNoRecords, ErrorCode(err))
}

func TestParse_HeaderOnly(t *testing.T) {
	data := testutil.CSV(testutil.LaunchHeader)

	_, err := Parse(strings.NewReader(data), "header-only")
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.Equal(t, ErrCodeNoRecords, ErrorCode(err))
}

func TestParse_RaggedRowIsLoadError(t *testing.T) {
	data := "Launch Site,class,Payload Mass (kg),Booster Version Category\n" +
		"SiteA,1,500\n"

	_, err := Parse(strings.NewReader(data), "ragged")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnreadable, ErrorCode(err))
}

func TestParse_BadCells(t *testing.T) {
	header := []string{"Launch Site", "class", "Payload Mass (kg)", "Booster Version Category", "Flight Number"}

	tests := []struct {
		name   string
		row    []string
		column string
	}{
		{"non-numeric payload", []string{"SiteA", "1", "heavy", "v1", "1"}, ColPayloadMass},
		{"negative payload", []string{"SiteA", "1", "-5", "v1", "1"}, ColPayloadMass},
		{"NaN payload", []string{"SiteA", "1", "NaN", "v1", "1"}, ColPayloadMass},
		{"infinite payload", []string{"SiteA", "1", "Inf", "v1", "1"}, ColPayloadMass},
		{"class out of range", []string{"SiteA", "2", "100", "v1", "1"}, ColClass},
		{"class not integer", []string{"SiteA", "yes", "100", "v1", "1"}, ColClass},
		{"empty site", []string{"", "1", "100", "v1", "1"}, ColLaunchSite},
		{"empty category", []string{"SiteA", "1", "100", "", "1"}, ColBoosterVersionCategory},
		{"bad flight number", []string{"SiteA", "1", "100", "v1", "one"}, ColFlightNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := []string{"SiteB", "0", "1", "v2", "7"}
			data := testutil.CSV(header, good, tt.row)

			ds, err := Parse(strings.NewReader(data), "cells")
			require.Error(t, err)
			assert.Nil(t, ds, "no partial dataset")

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.column, pe.Column)
			assert.Equal(t, 3, pe.Line, "header is line 1, bad row is line 3")
			assert.Equal(t, "cells", pe.Path)
			assert.Equal(t, ErrCodeBadCell, ErrorCode(err))
			assert.True(t, IsParseError(err))
			assert.False(t, IsLoadError(err))
		})
	}
}

func TestParse_EmptyFlightNumberIsZero(t *testing.T) {
	data := testutil.CSV(
		[]string{"Flight Number", "Launch Site", "class", "Payload Mass (kg)", "Booster Version Category"},
		[]string{"", "SiteA", "1", "100", "v1"},
	)

	ds, err := Parse(strings.NewReader(data), "flight")
	require.NoError(t, err)
	assert.Equal(t, 0, ds.At(0).FlightNumber)
}

func TestErrorCode_NonDatasetError(t *testing.T) {
	assert.Equal(t, "", ErrorCode(errors.New("boom")))
	assert.Equal(t, "", ErrorCode(nil))
}

func TestFromRecords(t *testing.T) {
	ds, err := FromRecords("inline", []Record{
		{LaunchSite: " SiteA ", Class: 1, PayloadMassKg: 500, BoosterVersionCategory: "v1"},
		{LaunchSite: "Sité", Class: 0, PayloadMassKg: 0, BoosterVersionCategory: "v2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "inline", ds.Source())
	assert.Equal(t, []string{"SiteA", "Sit\u00e9"}, ds.Sites())
}

func TestFromRecords_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		column string
	}{
		{"missing site", Record{Class: 1, PayloadMassKg: 1, BoosterVersionCategory: "v1"}, ColLaunchSite},
		{"bad class", Record{LaunchSite: "A", Class: 2, PayloadMassKg: 1, BoosterVersionCategory: "v1"}, ColClass},
		{"negative payload", Record{LaunchSite: "A", Class: 1, PayloadMassKg: -1, BoosterVersionCategory: "v1"}, ColPayloadMass},
		{"missing category", Record{LaunchSite: "A", Class: 1, PayloadMassKg: 1}, ColBoosterVersionCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := Record{LaunchSite: "A", Class: 1, PayloadMassKg: 1, BoosterVersionCategory: "v1"}
			_, err := FromRecords("inline", []Record{ok, tt.record})

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.column, pe.Column)
			assert.Equal(t, 2, pe.Line)
			assert.Equal(t, "inline", pe.Path)
		})
	}

	_, err := FromRecords("inline", nil)
	assert.Equal(t, ErrCodeNoRecords, ErrorCode(err))
}
