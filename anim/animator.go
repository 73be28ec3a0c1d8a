// Package anim composes per-element property animations into synchronized
// timelines.
//
// A timeline is started from a first group of targets with PlayOn. Further
// groups either play with the timeline's current chain point (PlayWith) or
// after everything scheduled so far (PlayThen):
//
//	a := anim.New(engine, anim.WithLayout(strip), anim.WithLooper(looper))
//	a.PlayOn(title).FadeIn().
//		PlayWith(icon).Pulse().
//		PlayThen(body).SlideLeftIn().Duration(300 * time.Millisecond).
//		Start()
//
// Measurement dependent keyframes are deferred until the first target has
// been laid out, then everything drains on the Looper in the order it was queued.
package anim

import (
	"github.com/rs/zerolog"
)

// Animator creates timelines that share the same engine and host capabilities.
type Animator struct {
	engine  Engine
	layout  Layout
	density Density
	looper  Looper
	logger  zerolog.Logger
}

// Option configures an Animator.
type Option func(*Animator)

// WithLayout sets the measurement capability. Without it every element is
// treated as measured.
func WithLayout(l Layout) Option {
	return func(a *Animator) { a.layout = l }
}

// WithDensity sets the scale used for device independent translations.
func WithDensity(d Density) Option {
	return func(a *Animator) { a.density = d }
}

// WithLooper sets the home execution context. Defaults to Inline.
func WithLooper(l Looper) Option {
	return func(a *Animator) { a.looper = l }
}

// WithLogger sets the logger used for absorbed failures and run tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(a *Animator) { a.logger = l }
}

// New creates an Animator driving engine. It panics if engine is nil.
func New(engine Engine, opts ...Option) *Animator {
	if engine == nil {
		panic("anim: nil engine")
	}
	a := new(Animator)
	a.engine = engine
	a.layout = measuredLayout{}
	a.density = FixedDensity(1)
	a.looper = Inline{}
	a.logger = zerolog.Nop()
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// PlayOn creates a new timeline whose first group animates targets.
func (a *Animator) PlayOn(targets ...Element) *Group {
	return a.PlayOnLifecycle(nil, targets...)
}

// PlayOnLifecycle is PlayOn with the timeline bound to lc: once a run starts it is
// cancelled when lc is destroyed.
func (a *Animator) PlayOnLifecycle(lc Lifecycle, targets ...Element) *Group {
	t := newTimeline(a, lc)
	return t.add(false, targets)
}

type measuredLayout struct{}

func (measuredLayout) Bounds(Element) Rect { return Rect{Right: 1, Bottom: 1} }

func (measuredLayout) NotifyMeasured(_ Element, fn func()) { fn() }
