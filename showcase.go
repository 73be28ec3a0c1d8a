package main

import (
	"context"
	"sync"
	"time"

	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/metrics"
	"github.com/matt-g-everett/ledanim/scenario"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/rs/zerolog"
)

// showcase plays one timeline at a time across the strip and, when given an
// interval, cycles through every preset.
type showcase struct {
	animator *anim.Animator
	strip    *stream.Strip
	looper   anim.Looper
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	interval time.Duration
	duration time.Duration

	mu      sync.Mutex
	current *anim.Timeline
	next    int
}

func newShowcase(a *anim.Animator, strip *stream.Strip, looper anim.Looper, m *metrics.Metrics,
	interval, duration time.Duration, logger zerolog.Logger) *showcase {

	s := new(showcase)
	s.animator = a
	s.strip = strip
	s.looper = looper
	s.metrics = m
	s.interval = interval
	s.duration = duration
	if s.duration <= 0 {
		s.duration = anim.DefaultDuration
	}
	s.logger = logger
	return s
}

// PlayPreset implements api.Player. Every segment plays the preset together.
func (s *showcase) PlayPreset(name string, d time.Duration) error {
	if _, ok := anim.LookupPreset(name); !ok {
		return api.ErrUnknownPreset
	}
	g := s.animator.PlayOn(s.targets()...).Apply(name).Duration(d)
	s.play(g.Timeline(), name)
	return nil
}

// PlayScenario implements api.Player. Targets are segment names.
func (s *showcase) PlayScenario(sc *scenario.Scenario) error {
	g, err := sc.Build(s.animator, s.resolve)
	if err != nil {
		return err
	}
	s.play(g.Timeline(), "scenario")
	return nil
}

// Cancel implements api.Player.
func (s *showcase) Cancel() {
	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	s.looper.Post(s.reset)
}

// Current returns the timeline played last.
func (s *showcase) Current() *anim.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Run cycles the presets every interval until ctx is done. A zero interval
// only waits for ctx.
func (s *showcase) Run(ctx context.Context) error {
	if s.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	cycleTimer := time.NewTicker(s.interval)
	defer cycleTimer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-cycleTimer.C:
			s.cycle()
		}
	}
}

func (s *showcase) cycle() {
	presets := anim.Presets()
	s.mu.Lock()
	name := presets[s.next%len(presets)]
	s.next++
	s.mu.Unlock()

	s.logger.Info().Str("preset", name).Msg("showcase")
	if err := s.PlayPreset(name, s.duration); err != nil {
		s.logger.Warn().Err(err).Str("preset", name).Msg("showcase preset failed")
	}
}

func (s *showcase) play(tl *anim.Timeline, source string) {
	if s.metrics != nil {
		tl.AddListener(s.metrics.Listener(source))
	}

	s.mu.Lock()
	prev := s.current
	s.current = tl
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}
	s.looper.Post(s.reset)
	tl.Start()
}

func (s *showcase) reset() {
	for _, seg := range s.strip.Segments() {
		seg.Reset()
	}
}

func (s *showcase) targets() []anim.Element {
	segs := s.strip.Segments()
	out := make([]anim.Element, len(segs))
	for i, seg := range segs {
		out[i] = seg
	}
	return out
}

func (s *showcase) resolve(name string) (anim.Element, bool) {
	seg, ok := s.strip.Segment(name)
	if !ok {
		return nil, false
	}
	return seg, true
}
