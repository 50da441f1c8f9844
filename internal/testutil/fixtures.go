package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// LaunchHeader is the header row of the published launch file, including the
// unnamed index column written by pandas.
var LaunchHeader = []string{
	"",
	"Flight Number",
	"Launch Site",
	"class",
	"Payload Mass (kg)",
	"Booster Version",
	"Booster Version Category",
}

// ThreeLaunchCSV is a minimal launch file with two sites:
//
//	(SiteA, 1,  500, v1)
//	(SiteA, 0, 2000, v1)
//	(SiteB, 1, 7000, v2)
var ThreeLaunchCSV = CSV(LaunchHeader,
	[]string{"0", "1", "SiteA", "1", "500.0", "F9 v1.0  B0003", "v1"},
	[]string{"1", "2", "SiteA", "0", "2000.0", "F9 v1.0  B0004", "v1"},
	[]string{"2", "3", "SiteB", "1", "7000.0", "F9 FT B1021", "v2"},
)

// CSV joins a header and rows into comma-separated text with a trailing newline.
// Cells are written verbatim; callers must not pass cells containing commas
// or quotes.
func CSV(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTemp writes content to name inside a per-test temporary directory and
// returns the full path. The directory is removed when the test ends.
func WriteTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
