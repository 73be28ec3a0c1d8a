// Package api serves the HTTP control surface: presets, scenarios, metrics and
// the static client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/scenario"
	"github.com/rs/zerolog"
)

// ErrUnknownPreset is returned by a Player asked for a preset that does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

const maxScenarioBytes = 1 << 20

// Player plays timelines on the strip.
type Player interface {
	PlayPreset(name string, duration time.Duration) error
	PlayScenario(s *scenario.Scenario) error
	Cancel()
}

// Api routes HTTP requests to a Player.
type Api struct {
	player    Player
	metrics   http.Handler
	staticDir string
	logger    zerolog.Logger
}

// NewApi creates an instance of an Api. A nil metrics handler leaves /metrics unrouted.
func NewApi(player Player, metrics http.Handler, staticDir string, logger zerolog.Logger) *Api {
	a := new(Api)
	a.player = player
	a.metrics = metrics
	a.staticDir = staticDir
	a.logger = logger
	return a
}

// Handler builds the router.
func (a *Api) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Route("/api", func(r chi.Router) {
		r.Get("/presets", a.handlePresets)
		r.Post("/play/{preset}", a.handlePlay)
		r.Post("/scenario", a.handleScenario)
		r.Post("/cancel", a.handleCancel)
	})
	if a.metrics != nil {
		r.Handle("/metrics", a.metrics)
	}
	if a.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(a.staticDir)))
	}
	return r
}

// Serve listens on addr until ctx is done, then shuts the server down.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info().Str("addr", addr).Msg("Listening...")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}

func (a *Api) handlePresets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"presets": anim.Presets()})
}

func (a *Api) handlePlay(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "preset")
	duration := anim.DefaultDuration
	if v := r.URL.Query().Get("duration"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			writeError(w, http.StatusBadRequest, "duration must be a non-negative duration such as 750ms")
			return
		}
		duration = d
	}

	err := a.player.PlayPreset(name, duration)
	switch {
	case errors.Is(err, ErrUnknownPreset):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		a.logger.Error().Err(err).Str("preset", name).Msg("play failed")
		writeError(w, http.StatusInternalServerError, "play failed")
	default:
		writeJSON(w, http.StatusAccepted, map[string]string{"preset": name, "duration": duration.String()})
	}
}

func (a *Api) handleScenario(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxScenarioBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}
	s, err := scenario.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = a.player.PlayScenario(s)
	switch {
	case errors.Is(err, scenario.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		a.logger.Error().Err(err).Msg("scenario failed")
		writeError(w, http.StatusInternalServerError, "scenario failed")
	default:
		writeJSON(w, http.StatusAccepted, map[string]int{"groups": len(s.Groups)})
	}
}

func (a *Api) handleCancel(w http.ResponseWriter, _ *http.Request) {
	a.player.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
