package harness

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/launchdash/internal/dashboard"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Events applied, for context
	fmt.Fprintf(&buf, "\nEvents:\n")
	for _, event := range e.Trace {
		switch event.Type {
		case TraceUpdate:
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Step, event.Control, event.Value, event.Figure.Output)
		case TraceRejected:
			fmt.Fprintf(&buf, "  [%d] %s %v rejected (%s)\n", event.Step, event.Control, event.Value, event.Code)
		}
	}

	return buf.String()
}

// figureFor returns the figure an assertion targets: the final figure of
// the output, or the one produced by the event at assertion.Step.
func figureFor(result *Result, assertion Assertion) (dashboard.Figure, string, bool) {
	if assertion.Step == nil {
		for _, f := range result.Figures {
			if f.Output == assertion.Output {
				return f, "final " + assertion.Output, true
			}
		}
		return dashboard.Figure{}, "final " + assertion.Output, false
	}

	where := fmt.Sprintf("%s at step %d", assertion.Output, *assertion.Step)
	for _, event := range result.Trace {
		if event.Type == TraceUpdate && event.Step == *assertion.Step && event.Figure.Output == assertion.Output {
			return *event.Figure, where, true
		}
	}
	return dashboard.Figure{}, where, false
}

// assertTitle checks the chart title of the target figure.
func assertTitle(result *Result, assertion Assertion) error {
	fig, where, ok := figureFor(result, assertion)
	if !ok {
		return missingFigure(AssertTitle, where, result)
	}
	if fig.Title() != assertion.Title {
		return &AssertionError{
			Type:     AssertTitle,
			Expected: fmt.Sprintf("%s titled %q", where, assertion.Title),
			Actual:   fmt.Sprintf("%q", fig.Title()),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertRowCount checks the number of rows or points of the target figure.
func assertRowCount(result *Result, assertion Assertion) error {
	fig, where, ok := figureFor(result, assertion)
	if !ok {
		return missingFigure(AssertRowCount, where, result)
	}
	if fig.Len() != assertion.Count {
		return &AssertionError{
			Type:     AssertRowCount,
			Expected: fmt.Sprintf("%d rows in %s", assertion.Count, where),
			Actual:   fmt.Sprintf("%d rows", fig.Len()),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertRows checks the rows of the target figure in order. Each expected
// row is a subset match against the actual row.
func assertRows(result *Result, assertion Assertion) error {
	fig, where, ok := figureFor(result, assertion)
	if !ok {
		return missingFigure(AssertRows, where, result)
	}

	actual := figureRows(fig)
	if len(actual) != len(assertion.Rows) {
		return &AssertionError{
			Type:     AssertRows,
			Expected: fmt.Sprintf("%d rows in %s: %v", len(assertion.Rows), where, assertion.Rows),
			Actual:   fmt.Sprintf("%d rows: %v", len(actual), actual),
			Trace:    result.Trace,
		}
	}

	for i, want := range assertion.Rows {
		if !matchRow(actual[i], want) {
			return &AssertionError{
				Type:     AssertRows,
				Expected: fmt.Sprintf("row %d of %s to match %v", i, where, want),
				Actual:   fmt.Sprintf("%v", actual[i]),
				Trace:    result.Trace,
			}
		}
	}
	return nil
}

// assertRejected checks the event at assertion.Step was refused, with
// assertion.Code if given.
func assertRejected(result *Result, assertion Assertion) error {
	for _, event := range result.Trace {
		if event.Type != TraceRejected || event.Step != *assertion.Step {
			continue
		}
		if assertion.Code != "" && event.Code != assertion.Code {
			return &AssertionError{
				Type:     AssertRejected,
				Expected: fmt.Sprintf("step %d rejected with %s", *assertion.Step, assertion.Code),
				Actual:   fmt.Sprintf("rejected with %s: %s", event.Code, event.Message),
				Trace:    result.Trace,
			}
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertRejected,
		Expected: fmt.Sprintf("step %d rejected", *assertion.Step),
		Actual:   "accepted",
		Trace:    result.Trace,
	}
}

func missingFigure(kind, where string, result *Result) error {
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("figure for %s", where),
		Actual:   "no such figure",
		Trace:    result.Trace,
	}
}

// figureRows flattens a figure into generic rows keyed by JSON field name.
func figureRows(f dashboard.Figure) []map[string]any {
	var rows []map[string]any
	switch {
	case f.Proportions != nil:
		rows = make([]map[string]any, 0, len(f.Proportions.Rows))
		for _, r := range f.Proportions.Rows {
			rows = append(rows, map[string]any{"label": r.Label, "value": r.Value})
		}
	case f.Scatter != nil:
		rows = make([]map[string]any, 0, len(f.Scatter.Points))
		for _, p := range f.Scatter.Points {
			rows = append(rows, map[string]any{"x": p.X, "y": p.Y, "color": p.Color})
		}
	}
	return rows
}

// matchRow checks if actual contains all expected fields (subset match).
// Extra keys in actual are ignored.
func matchRow(actual, expected map[string]any) bool {
	for key, expectedVal := range expected {
		actualVal, exists := actual[key]
		if !exists {
			return false // Required key missing
		}
		if !valuesEqual(actualVal, expectedVal) {
			return false // Value mismatch
		}
	}
	return true
}

// valuesEqual compares two values for equality.
// Numbers compare by value regardless of Go type, since YAML decodes
// 2000 as int while chart points carry float64.
func valuesEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return actual == expected
	}

	a, aNum := toNumber(actual)
	e, eNum := toNumber(expected)
	if aNum && eNum {
		return a == e
	}

	// Unquoted YAML labels such as 0 match the string label "0"
	if s, ok := actual.(string); ok && eNum {
		return s == fmt.Sprint(expected)
	}

	return reflect.DeepEqual(actual, expected)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertTitle:
			err = assertTitle(result, assertion)
		case AssertRowCount:
			err = assertRowCount(result, assertion)
		case AssertRows:
			err = assertRows(result, assertion)
		case AssertRejected:
			if assertion.Step == nil {
				err = fmt.Errorf("assertion[%d]: rejected requires step", i)
			} else {
				err = assertRejected(result, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
