package main

import (
	"context"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/api"
	"github.com/matt-g-everett/ledanim/metrics"
	"github.com/matt-g-everett/ledanim/scenario"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestShowcase(interval time.Duration) (*showcase, *stream.Strip, *stream.Engine) {
	strip := stream.NewStrip(40, colorful.Color{})
	strip.Split(4, stream.Rainbow)
	strip.Layout()

	engine := stream.NewEngine(anim.Inline{}, 30, zerolog.Nop())
	a := anim.New(engine, anim.WithLayout(strip))
	m := metrics.New(prometheus.NewRegistry())
	return newShowcase(a, strip, anim.Inline{}, m, interval, 0, zerolog.Nop()), strip, engine
}

func TestShowcasePlayPreset(t *testing.T) {
	s, _, engine := newTestShowcase(0)

	require.NoError(t, s.PlayPreset("pulse", 200*time.Millisecond))
	first := s.Current()
	require.NotNil(t, first)
	assert.True(t, first.IsRunning())
	assert.Equal(t, 1, engine.Active())

	groups := first.Groups()
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Targets(), 4)
	assert.Equal(t, 200*time.Millisecond, groups[0].Timing().Duration)

	require.NoError(t, s.PlayPreset("tada", time.Second))
	assert.False(t, first.IsRunning())
	assert.True(t, s.Current().IsRunning())
	assert.Equal(t, 1, engine.Active())

	assert.ErrorIs(t, s.PlayPreset("moonwalk", time.Second), api.ErrUnknownPreset)
}

func TestShowcasePlayScenario(t *testing.T) {
	s, strip, _ := newTestShowcase(0)

	sc, err := scenario.Parse([]byte("groups:\n  - play: on\n    targets: [s0]\n    tracks:\n      translationX: [0, 5]\n  - play: then\n    targets: [s3]\n    presets: [fadeOut]\n"))
	require.NoError(t, err)
	require.NoError(t, s.PlayScenario(sc))
	assert.True(t, s.Current().IsRunning())

	bad := &scenario.Scenario{Groups: []scenario.Group{{Play: scenario.PlayOn, Targets: []string{"s7"}}}}
	assert.ErrorIs(t, s.PlayScenario(bad), scenario.ErrInvalid)

	seg, _ := strip.Segment("s0")
	seg.SetProperty(anim.TranslationX, 3)
	s.Cancel()
	assert.Nil(t, s.Current())
	assert.Zero(t, seg.Property(anim.TranslationX))
}

func TestShowcaseRunCycles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s, _, _ := newTestShowcase(10 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, s.Run(ctx), context.DeadlineExceeded)
	require.NotNil(t, s.Current())
	s.mu.Lock()
	assert.Positive(t, s.next)
	s.mu.Unlock()
}

func TestShowcaseRunDisabled(t *testing.T) {
	s, _, _ := newTestShowcase(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
	assert.Nil(t, s.Current())
}
