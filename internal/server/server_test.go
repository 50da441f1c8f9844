package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/roach88/launchdash/internal/chart"
	"github.com/roach88/launchdash/internal/dashboard"
	"github.com/roach88/launchdash/internal/launch"
	"github.com/roach88/launchdash/internal/logging"
	"github.com/roach88/launchdash/internal/testutil"
)

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *ResponseError  `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := testutil.WriteTemp(t, "launches.csv", testutil.ThreeLaunchCSV)
	ds, err := launch.Load(path)
	require.NoError(t, err)

	dash := dashboard.New(ds, dashboard.Options{Logger: logging.Discard()})
	return New(dash, Options{
		MaxSessions: 2,
		IDs:         testutil.NewSequentialIDGenerator("s"),
		Logger:      logging.Discard(),
	})
}

func do(t *testing.T, s *Server, method, target, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestServer_Page(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "plotly")
	assert.Contains(t, rec.Body.String(), `id="success-pie-chart"`)
	assert.Contains(t, rec.Body.String(), `id="success-payload-scatter-chart"`)
}

func TestServer_Layout(t *testing.T) {
	s := newTestServer(t)

	code, env := do(t, s, http.MethodGet, "/api/layout", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Status)

	l := decodeData[dashboard.Layout](t, env)
	assert.Equal(t, dashboard.DefaultHeading, l.Heading)
	assert.Equal(t, dashboard.ControlSite, l.Dropdown.ID)
	assert.Len(t, l.Dropdown.Options, 3)
	assert.Equal(t, chart.PayloadRange{Low: 500, High: 7000}, l.Slider.Value)
}

func TestServer_Bounds(t *testing.T) {
	s := newTestServer(t)

	code, env := do(t, s, http.MethodGet, "/api/bounds", "")
	require.Equal(t, http.StatusOK, code)

	b := decodeData[launch.Bounds](t, env)
	assert.Equal(t, launch.Bounds{MinPayload: 500, MaxPayload: 7000, Sites: []string{"SiteA", "SiteB"}}, b)
}

func TestServer_OutcomeChart(t *testing.T) {
	s := newTestServer(t)

	code, env := do(t, s, http.MethodGet, "/api/charts/outcome", "")
	require.Equal(t, http.StatusOK, code)
	all := decodeData[chart.Proportions](t, env)
	assert.Equal(t, chart.TitleProportionsAll, all.Title)
	assert.Equal(t, []chart.Slice{{Label: "SiteA", Value: 1}, {Label: "SiteB", Value: 1}}, all.Rows)

	code, env = do(t, s, http.MethodGet, "/api/charts/outcome?site=SiteA", "")
	require.Equal(t, http.StatusOK, code)
	site := decodeData[chart.Proportions](t, env)
	assert.Equal(t, []chart.Slice{{Label: "0", Value: 1}, {Label: "1", Value: 1}}, site.Rows)
}

func TestServer_ScatterChart(t *testing.T) {
	s := newTestServer(t)

	t.Run("defaults to bounds", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/api/charts/scatter", "")
		require.Equal(t, http.StatusOK, code)
		sc := decodeData[chart.Scatter](t, env)
		assert.Len(t, sc.Points, 3)
	})

	t.Run("site and range", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/api/charts/scatter?site=SiteA&low=1000&high=10000", "")
		require.Equal(t, http.StatusOK, code)
		sc := decodeData[chart.Scatter](t, env)
		assert.Equal(t, "Payload vs. Outcome for SiteA", sc.Title)
		assert.Equal(t, []chart.Point{{X: 2000, Y: 0, Color: "v1"}}, sc.Points)
	})

	t.Run("inverted range", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/api/charts/scatter?low=5000&high=1000", "")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "error", env.Status)
		require.NotNil(t, env.Error)
		assert.Equal(t, chart.ErrCodeInvalidRange, env.Error.Code)
	})

	t.Run("not a number", func(t *testing.T) {
		code, env := do(t, s, http.MethodGet, "/api/charts/scatter?low=heavy", "")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, ErrCodeBadRequest, env.Error.Code)
	})
}

func TestServer_SessionFlow(t *testing.T) {
	s := newTestServer(t)

	code, env := do(t, s, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusOK, code)
	view := decodeData[SessionView](t, env)
	assert.Equal(t, "s-1", view.ID)
	assert.Equal(t, chart.AllSites, view.State.SelectedSite)
	require.Len(t, view.Figures, 2)
	assert.Equal(t, dashboard.OutputPieChart, view.Figures[0].Output)

	code, env = do(t, s, http.MethodPost, "/api/sessions/s-1/events", `{"control":"site-dropdown","value":"SiteB"}`)
	require.Equal(t, http.StatusOK, code)
	res := decodeData[EventResult](t, env)
	assert.Equal(t, "SiteB", res.State.SelectedSite)
	require.Len(t, res.Updates, 2)
	assert.Equal(t, int64(1), res.Updates[0].Seq)
	assert.Equal(t, "Total Success Launches for site SiteB", res.Updates[0].Title())

	code, env = do(t, s, http.MethodPost, "/api/sessions/s-1/events", `{"control":"payload-slider","value":[500,6000]}`)
	require.Equal(t, http.StatusOK, code)
	res = decodeData[EventResult](t, env)
	require.Len(t, res.Updates, 1)
	assert.Equal(t, dashboard.OutputScatterChart, res.Updates[0].Output)
	assert.Equal(t, 0, res.Updates[0].Len())

	code, env = do(t, s, http.MethodGet, "/api/sessions/s-1", "")
	require.Equal(t, http.StatusOK, code)
	view = decodeData[SessionView](t, env)
	assert.Equal(t, chart.PayloadRange{Low: 500, High: 6000}, view.State.PayloadRange)
}

func TestServer_EventErrors(t *testing.T) {
	s := newTestServer(t)
	_, _ = do(t, s, http.MethodPost, "/api/sessions", "")

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"inverted range", "/api/sessions/s-1/events", `{"control":"payload-slider","value":[6000,1000]}`, http.StatusUnprocessableEntity, chart.ErrCodeInvalidRange},
		{"out of bounds", "/api/sessions/s-1/events", `{"control":"payload-slider","value":[0,1000]}`, http.StatusUnprocessableEntity, dashboard.ErrCodeOutOfBounds},
		{"unknown site", "/api/sessions/s-1/events", `{"control":"site-dropdown","value":"SiteZ"}`, http.StatusUnprocessableEntity, dashboard.ErrCodeUnknownSite},
		{"unknown control", "/api/sessions/s-1/events", `{"control":"booster","value":"v1"}`, http.StatusBadRequest, dashboard.ErrCodeUnknownControl},
		{"bad value", "/api/sessions/s-1/events", `{"control":"payload-slider","value":"wide"}`, http.StatusBadRequest, dashboard.ErrCodeBadValue},
		{"malformed body", "/api/sessions/s-1/events", `{"control":`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown field", "/api/sessions/s-1/events", `{"control":"site-dropdown","value":"ALL","extra":1}`, http.StatusBadRequest, ErrCodeBadRequest},
		{"unknown session", "/api/sessions/nope/events", `{"control":"site-dropdown","value":"ALL"}`, http.StatusNotFound, ErrCodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, s, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, code)
			assert.Equal(t, "error", env.Status)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}

	// Rejected events left the session in its default state
	_, env := do(t, s, http.MethodGet, "/api/sessions/s-1", "")
	view := decodeData[SessionView](t, env)
	assert.Equal(t, chart.AllSites, view.State.SelectedSite)
	assert.Equal(t, chart.PayloadRange{Low: 500, High: 7000}, view.State.PayloadRange)
}

func TestServer_SessionEviction(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		code, _ := do(t, s, http.MethodPost, "/api/sessions", "")
		require.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, 2, s.Sessions().Len())

	code, env := do(t, s, http.MethodGet, "/api/sessions/s-1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, ErrCodeSessionNotFound, env.Error.Code)
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/bounds")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	client.CloseIdleConnections()
}

func TestServer_RunReportsListenError(t *testing.T) {
	s := newTestServer(t)
	s.addr = "not-an-address"

	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen not-an-address")
}
