package harness

import "github.com/roach88/launchdash/internal/dashboard"

// Trace event types.
const (
	TraceInitial  = "initial"  // figure rendered when the session opened
	TraceUpdate   = "update"   // figure re-rendered by an accepted event
	TraceRejected = "rejected" // event refused; figures unchanged
)

// TraceEvent is one entry of a scenario trace.
type TraceEvent struct {
	Type    string            `json:"type"`
	Step    int               `json:"step"` // event index, -1 for initial figures
	Seq     int64             `json:"seq,omitempty"`
	Control string            `json:"control,omitempty"`
	Value   any               `json:"value,omitempty"`
	Figure  *dashboard.Figure `json:"figure,omitempty"`
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions hold.
	Pass bool `json:"pass"`

	// Trace contains initial figures, updates and rejections in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// State is the session's final control state.
	State dashboard.ControlState `json:"state"`

	// Figures are the session's final figures, in layout order.
	Figures []dashboard.Figure `json:"figures"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Figures: []dashboard.Figure{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddInitialTrace records a figure rendered when the session opened.
func (r *Result) AddInitialTrace(fig dashboard.Figure) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   TraceInitial,
		Step:   -1,
		Figure: &fig,
	})
}

// AddUpdateTrace records a figure produced by the event at step.
func (r *Result) AddUpdateTrace(step int, ev dashboard.Event, u dashboard.Update) {
	fig := u.Figure
	r.Trace = append(r.Trace, TraceEvent{
		Type:    TraceUpdate,
		Step:    step,
		Seq:     u.Seq,
		Control: ev.Control,
		Value:   ev.Value,
		Figure:  &fig,
	})
}

// AddRejectedTrace records that the event at step was refused.
func (r *Result) AddRejectedTrace(step int, ev dashboard.Event, code, message string) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:    TraceRejected,
		Step:    step,
		Control: ev.Control,
		Value:   ev.Value,
		Code:    code,
		Message: message,
	})
}
