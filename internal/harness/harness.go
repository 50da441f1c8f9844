package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/dashboard"
	"github.com/roach88/launchdash/internal/launch"
	"github.com/roach88/launchdash/internal/logging"
	"github.com/roach88/launchdash/internal/testutil"
)

// Harness is the scenario execution engine.
// It replays events through one session with a fixed id.
type Harness struct {
	session *dashboard.Session
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against its own dataset and dashboard for isolation.
// A dataset that fails to load is an execution error, not a failed
// assertion.
//
// Execution flow:
// 1. Load the dataset from data_file or inline records
// 2. Open a session with a fixed id and record its initial figures
// 3. Apply each event, recording updates or the rejection
// 4. Evaluate assertions against the trace and final figures
func Run(scenario *Scenario) (*Result, error) {
	ds, err := loadDataset(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	logger := logging.Discard() // Suppress logs in scenario runs
	dash := dashboard.New(ds, dashboard.Options{Logger: logger})

	ids := testutil.NewFixedIDGenerator(scenario.SessionID)
	session, err := dash.NewSession(ids.Generate())
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	h := &Harness{session: session, logger: logger}

	result := NewResult()
	for _, fig := range session.Figures() {
		result.AddInitialTrace(fig)
	}

	h.executeEvents(scenario.Events, result)

	result.State = session.State()
	result.Figures = session.Figures()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

func loadDataset(s *Scenario) (*launch.Dataset, error) {
	if s.DataFile != "" {
		return launch.Load(s.DataFile)
	}
	return launch.FromRecords("scenario:"+s.Name, s.Records)
}

// executeEvents applies every event in order. A rejected event is recorded
// and the run continues with the previous state.
func (h *Harness) executeEvents(events []EventStep, result *Result) {
	for i, step := range events {
		ev := dashboard.Event{Control: step.Control, Value: step.Value}

		updates, err := h.session.Apply(ev)
		if err != nil {
			result.AddRejectedTrace(i, ev, errorCode(err), err.Error())
			h.logger.Info("event rejected", "step", i, "control", ev.Control, "error", err)
			continue
		}

		for _, u := range updates {
			result.AddUpdateTrace(i, ev, u)
		}
		h.logger.Info("event applied", "step", i, "control", ev.Control, "updates", len(updates))
	}
}

// errorCode extracts the error code of a rejected event.
func errorCode(err error) string {
	var re *chart.RangeError
	if errors.As(err, &re) {
		return chart.ErrCodeInvalidRange
	}
	var se *dashboard.StateError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
