package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/launchdash/internal/launch"
)

// Scenario defines a dashboard scenario: a dataset, a sequence of control
// changes, and assertions on the resulting charts.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// DataFile is a launch CSV file. Relative paths are resolved against
	// the scenario file location by LoadScenario.
	DataFile string `yaml:"data_file,omitempty"`

	// Records is an inline dataset, used when DataFile is empty.
	Records []launch.Record `yaml:"records,omitempty"`

	// Events are applied to one session in order.
	Events []EventStep `yaml:"events"`

	// Assertions validate the trace and final figures.
	// Supported types: title, row_count, rows, rejected
	Assertions []Assertion `yaml:"assertions"`

	// SessionID is an optional fixed session id for deterministic tests.
	// If empty, defaults to "test-session-default".
	SessionID string `yaml:"session_id,omitempty"`
}

// EventStep is one control change.
type EventStep struct {
	// Control is the control id (site-dropdown or payload-slider).
	Control string `yaml:"control"`

	// Value is a site name or a [low, high] pair.
	Value any `yaml:"value"`
}

// Assertion validates trace or final figures.
type Assertion struct {
	// Type specifies the assertion type:
	// - "title": Check the chart title of Output
	// - "row_count": Check the number of rows or points of Output
	// - "rows": Check the rows or points of Output (subset match per row)
	// - "rejected": Check the event at Step was rejected
	Type string `yaml:"type"`

	// Output is the output id (used by title, row_count, rows).
	Output string `yaml:"output,omitempty"`

	// Step is a 0-based event index. Required by rejected; optional for the
	// others, which check the final figure when Step is nil.
	Step *int `yaml:"step,omitempty"`

	// Title is the expected chart title (used by title).
	Title string `yaml:"title,omitempty"`

	// Count is the expected number of rows (used by row_count).
	Count int `yaml:"count,omitempty"`

	// Rows are the expected rows, in order (used by rows).
	// Only specified fields are validated.
	Rows []map[string]any `yaml:"rows,omitempty"`

	// Code is the expected error code (optional, used by rejected).
	Code string `yaml:"code,omitempty"`
}

// Assertion type constants.
const (
	AssertTitle    = "title"
	AssertRowCount = "row_count"
	AssertRows     = "rows"
	AssertRejected = "rejected"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Resolve the data file relative to the scenario BEFORE validation
	if scenario.DataFile != "" && !filepath.IsAbs(scenario.DataFile) {
		scenario.DataFile = filepath.Join(filepath.Dir(path), scenario.DataFile)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir, sorted by path.
// A non-empty filter is a glob matched against the file name without its
// extension.
func FindScenarios(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.DataFile != "" && len(s.Records) > 0:
		return fmt.Errorf("data_file and records are mutually exclusive")
	case s.DataFile == "" && len(s.Records) == 0:
		return fmt.Errorf("one of data_file or records is required")
	}

	if s.DataFile != "" {
		if _, err := os.Stat(s.DataFile); os.IsNotExist(err) {
			return fmt.Errorf("data file not found: %s", s.DataFile)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Events {
		if step.Control == "" {
			return fmt.Errorf("events[%d]: control is required", i)
		}
		if step.Value == nil {
			return fmt.Errorf("events[%d]: value is required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, len(s.Events)); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, events int) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	if a.Step != nil && (*a.Step < 0 || *a.Step >= events) {
		return fmt.Errorf("assertions[%d]: step %d out of range (scenario has %d events)", index, *a.Step, events)
	}

	switch a.Type {
	case AssertTitle:
		if a.Output == "" {
			return fmt.Errorf("assertions[%d]: output is required for title", index)
		}
		if a.Title == "" {
			return fmt.Errorf("assertions[%d]: title is required for title", index)
		}
	case AssertRowCount:
		if a.Output == "" {
			return fmt.Errorf("assertions[%d]: output is required for row_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for row_count", index)
		}
	case AssertRows:
		if a.Output == "" {
			return fmt.Errorf("assertions[%d]: output is required for rows", index)
		}
		if a.Rows == nil {
			return fmt.Errorf("assertions[%d]: rows is required for rows (use [] for none)", index)
		}
	case AssertRejected:
		if a.Step == nil {
			return fmt.Errorf("assertions[%d]: step is required for rejected", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
