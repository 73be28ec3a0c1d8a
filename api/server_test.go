package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/scenario"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	preset    string
	duration  time.Duration
	scenario  *scenario.Scenario
	cancelled int
	err       error
}

func (p *fakePlayer) PlayPreset(name string, d time.Duration) error {
	if _, ok := anim.LookupPreset(name); !ok {
		return ErrUnknownPreset
	}
	p.preset = name
	p.duration = d
	return p.err
}

func (p *fakePlayer) PlayScenario(s *scenario.Scenario) error {
	p.scenario = s
	return p.err
}

func (p *fakePlayer) Cancel() { p.cancelled++ }

func newTestApi(t *testing.T) (*fakePlayer, http.Handler) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>led</h1>"), 0644))

	p := new(fakePlayer)
	metrics := promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	return p, NewApi(p, metrics, dir, zerolog.Nop()).Handler()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPresets(t *testing.T) {
	_, h := newTestApi(t)
	rec := do(h, http.MethodGet, "/api/presets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct{ Presets []string }
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, anim.Presets(), body.Presets)
}

func TestPlay(t *testing.T) {
	p, h := newTestApi(t)

	rec := do(h, http.MethodPost, "/api/play/tada?duration=750ms", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "tada", p.preset)
	assert.Equal(t, 750*time.Millisecond, p.duration)

	rec = do(h, http.MethodPost, "/api/play/wobble", "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, anim.DefaultDuration, p.duration)

	rec = do(h, http.MethodPost, "/api/play/moonwalk", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodPost, "/api/play/tada?duration=soon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	p.err = errors.New("boom")
	rec = do(h, http.MethodPost, "/api/play/tada", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestScenario(t *testing.T) {
	p, h := newTestApi(t)

	rec := do(h, http.MethodPost, "/api/scenario", "groups:\n  - play: on\n    targets: [s0]\n    presets: [pulse]\n")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.NotNil(t, p.scenario)
	assert.Equal(t, []string{"pulse"}, p.scenario.Groups[0].Presets)

	rec = do(h, http.MethodPost, "/api/scenario", "groups:\n  - play: then\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	p.err = scenario.ErrInvalid
	rec = do(h, http.MethodPost, "/api/scenario", "groups:\n  - play: on\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancel(t *testing.T) {
	p, h := newTestApi(t)
	rec := do(h, http.MethodPost, "/api/cancel", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, p.cancelled)
}

func TestStaticAndMetrics(t *testing.T) {
	_, h := newTestApi(t)

	rec := do(h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>led</h1>")

	rec = do(h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
