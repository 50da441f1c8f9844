package dashboard

import (
	"log/slog"
	"sync"
)

// Session is one page's view of the dashboard: its ControlState and the
// figures last rendered for it.
//
// Thread-safety: all methods are safe for concurrent use; Apply calls on
// one session are serialized.
type Session struct {
	id     string
	dash   *Dashboard
	clock  *Clock
	logger *slog.Logger

	mu      sync.Mutex
	state   ControlState
	figures map[string]Figure
}

// NewSession creates a session in the default state with every output
// rendered.
func (d *Dashboard) NewSession(id string) (*Session, error) {
	s := &Session{
		id:      id,
		dash:    d,
		clock:   NewClock(),
		logger:  d.logger.With(slog.String("session", id)),
		state:   d.DefaultState(),
		figures: make(map[string]Figure, len(d.outputs)),
	}

	figs, err := d.RenderAll(s.state)
	if err != nil {
		return nil, err
	}
	for _, f := range figs {
		s.figures[f.Output] = f
	}
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// State returns the current control state.
func (s *Session) State() ControlState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Figures returns the current figure of every output, in layout order.
func (s *Session) Figures() []Figure {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Figure, 0, len(s.dash.outputs))
	for _, id := range s.dash.outputs {
		out = append(out, s.figures[id])
	}
	return out
}

// Figure returns the current figure for output.
func (s *Session) Figure(output string) (Figure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.figures[output]
	return f, ok
}

// Apply handles one control change.
//
// The resulting state is validated against the dataset bounds and every
// output bound to the control is re-rendered. Nothing is committed unless
// all of that succeeds; on error the previous state and figures stay in
// place and the error is logged and returned.
func (s *Session) Apply(ev Event) ([]Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.apply(ev)
	if err == nil {
		err = next.Validate(s.dash.bounds)
	}
	if err != nil {
		s.logger.Warn("control change rejected", "control", ev.Control, "value", ev.Value, "error", err)
		return nil, err
	}

	outputs := s.dash.Outputs(ev.Control)
	figs := make([]Figure, 0, len(outputs))
	for _, out := range outputs {
		fig, err := s.dash.Render(out, next)
		if err != nil {
			s.logger.Warn("render failed, keeping previous figure", "output", out, "error", err)
			return nil, err
		}
		figs = append(figs, fig)
	}

	s.state = next
	updates := make([]Update, 0, len(figs))
	for _, f := range figs {
		s.figures[f.Output] = f
		updates = append(updates, Update{Seq: s.clock.Next(), Figure: f})
	}

	s.logger.Debug("control change applied",
		"control", ev.Control,
		"site", next.SelectedSite,
		"range", next.PayloadRange.String(),
		"outputs", len(updates),
	)
	return updates, nil
}
