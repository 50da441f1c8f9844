package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/dashboard"
)

// SessionView is the JSON form of a session.
type SessionView struct {
	ID      string                 `json:"id"`
	State   dashboard.ControlState `json:"state"`
	Figures []dashboard.Figure     `json:"figures"`
}

// EventResult is the JSON form of an applied control change.
type EventResult struct {
	State   dashboard.ControlState `json:"state"`
	Updates []dashboard.Update     `json:"updates"`
}

func viewOf(s *dashboard.Session) SessionView {
	return SessionView{ID: s.ID(), State: s.State(), Figures: s.Figures()}
}

func (s *Server) handleLayout(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, s.dash.Layout())
}

func (s *Server) handleBounds(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, s.dash.Bounds())
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	site := siteParam(r)
	writeOK(w, chart.OutcomeProportions(s.dash.Dataset(), site))
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	site := siteParam(r)
	rng := chart.FullRange(s.dash.Bounds())

	var err error
	if rng.Low, err = floatParam(r, "low", rng.Low); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if rng.High, err = floatParam(r, "high", rng.High); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}

	sc, err := chart.ScatterSeries(s.dash.Dataset(), site, rng)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, sc)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess, err := s.sessions.Create()
	if err != nil {
		s.logger.Error("session create failed", "error", err)
		writeFailure(w, err)
		return
	}
	s.logger.Debug("session created", "session", sess.ID(), "live", s.sessions.Len())
	writeOK(w, viewOf(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, viewOf(sess))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxEventBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var ev dashboard.Event
	if err := dec.Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("decode event: %v", err))
		return
	}

	updates, err := sess.Apply(ev)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, EventResult{State: sess.State(), Updates: updates})
}

// siteParam returns the site query parameter, defaulting to chart.AllSites.
func siteParam(r *http.Request) string {
	if site := r.URL.Query().Get("site"); site != "" {
		return site
	}
	return chart.AllSites
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s: %q is not a number", name, raw)
	}
	return v, nil
}
