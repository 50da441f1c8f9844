package dashboard

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/launch"
)

// ControlState is the current value of both controls.
type ControlState struct {
	SelectedSite string             `json:"selected_site"`
	PayloadRange chart.PayloadRange `json:"payload_range"`
}

// DefaultState selects all sites and the full payload range.
func DefaultState(bounds launch.Bounds) ControlState {
	return ControlState{
		SelectedSite: chart.AllSites,
		PayloadRange: chart.FullRange(bounds),
	}
}

// Validate checks the state against the dataset bounds.
//
// The site must be chart.AllSites or one of bounds.Sites. The range must be
// well formed (see chart.PayloadRange.Validate) and lie within
// [MinPayload, MaxPayload].
func (s ControlState) Validate(bounds launch.Bounds) error {
	if s.SelectedSite != chart.AllSites && !bounds.HasSite(s.SelectedSite) {
		return &StateError{
			Code:    ErrCodeUnknownSite,
			Control: ControlSite,
			Message: fmt.Sprintf("unknown launch site %q", s.SelectedSite),
		}
	}
	if err := s.PayloadRange.Validate(); err != nil {
		return err
	}
	if !s.PayloadRange.Within(chart.FullRange(bounds)) {
		return &StateError{
			Code:    ErrCodeOutOfBounds,
			Control: ControlPayload,
			Message: fmt.Sprintf("payload range %s outside %s", s.PayloadRange, chart.FullRange(bounds)),
		}
	}
	return nil
}

// Event is a control change relayed from the page.
//
// Value is a string for ControlSite and a two-element numeric list (or a
// chart.PayloadRange) for ControlPayload. Numbers may be any Go numeric
// type or json.Number, as produced by JSON and YAML decoders.
type Event struct {
	Control string `json:"control" yaml:"control"`
	Value   any    `json:"value" yaml:"value"`
}

// apply returns the state that results from ev, without validating it
// against the dataset bounds.
func (s ControlState) apply(ev Event) (ControlState, error) {
	switch ev.Control {
	case ControlSite:
		site, ok := ev.Value.(string)
		if !ok {
			return s, &StateError{Code: ErrCodeBadValue, Control: ev.Control, Message: fmt.Sprintf("expected a site name, got %T", ev.Value)}
		}
		s.SelectedSite = site
		return s, nil
	case ControlPayload:
		r, err := toRange(ev.Value)
		if err != nil {
			return s, &StateError{Code: ErrCodeBadValue, Control: ev.Control, Message: err.Error()}
		}
		s.PayloadRange = r
		return s, nil
	default:
		return s, &StateError{Code: ErrCodeUnknownControl, Control: ev.Control, Message: "unknown control"}
	}
}

func toRange(v any) (chart.PayloadRange, error) {
	switch val := v.(type) {
	case chart.PayloadRange:
		return val, nil
	case []float64:
		if len(val) != 2 {
			return chart.PayloadRange{}, fmt.Errorf("expected [low, high], got %d values", len(val))
		}
		return chart.PayloadRange{Low: val[0], High: val[1]}, nil
	case []any:
		if len(val) != 2 {
			return chart.PayloadRange{}, fmt.Errorf("expected [low, high], got %d values", len(val))
		}
		low, err := toFloat(val[0])
		if err != nil {
			return chart.PayloadRange{}, fmt.Errorf("low: %w", err)
		}
		high, err := toFloat(val[1])
		if err != nil {
			return chart.PayloadRange{}, fmt.Errorf("high: %w", err)
		}
		return chart.PayloadRange{Low: low, High: high}, nil
	default:
		return chart.PayloadRange{}, fmt.Errorf("expected [low, high], got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("not a number: %v (%T)", v, v)
	}
}
