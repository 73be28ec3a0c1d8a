package anim

import (
	"context"
	"sync"
	"time"
)

// An Element is a target of property animations. Elements key the per-group track
// store, so implementations must be comparable; pointers are the usual choice.
type Element interface {
	SetProperty(p Property, value float64)
}

// Rect is an element's laid out box.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width of the box.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height of the box.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Empty reports whether the box has no measured size yet.
func (r Rect) Empty() bool { return r.Width() == 0 && r.Height() == 0 }

// Layout measures elements.
type Layout interface {
	// Bounds returns the element's current box. A zero-sized box means the
	// element has not been measured yet.
	Bounds(e Element) Rect
	// NotifyMeasured calls fn once, after e has been measured. fn may run on
	// any goroutine.
	NotifyMeasured(e Element, fn func())
}

// Density converts device independent units to element units.
type Density interface {
	Scale() float64
}

// FixedDensity is a Density with a constant scale.
type FixedDensity float64

// Scale returns d.
func (d FixedDensity) Scale() float64 { return float64(d) }

// Looper is the home execution context. Deferred actions drain on it and
// composites are started on it.
type Looper interface {
	// Post queues fn to run on the looper.
	Post(fn func())
	// Current reports whether the caller is already running on the looper.
	Current() bool
}

// Inline is a Looper for single threaded hosts: posted work runs immediately on
// the calling goroutine.
type Inline struct{}

// Post runs fn.
func (Inline) Post(fn func()) { fn() }

// Current always reports true.
func (Inline) Current() bool { return true }

// Lifecycle is an external owner whose teardown cancels running timelines.
type Lifecycle interface {
	// OnDestroy registers fn to run when the owner is destroyed and returns a
	// function that removes the registration.
	OnDestroy(fn func()) (unsubscribe func())
}

type contextLifecycle struct {
	ctx context.Context
}

// ContextLifecycle adapts ctx to a Lifecycle: the owner is destroyed when ctx is done.
func ContextLifecycle(ctx context.Context) Lifecycle {
	return &contextLifecycle{ctx: ctx}
}

func (c *contextLifecycle) OnDestroy(fn func()) func() {
	stop := make(chan struct{})
	var once sync.Once
	go func() {
		select {
		case <-c.ctx.Done():
			fn()
		case <-stop:
		}
	}()
	return func() { once.Do(func() { close(stop) }) }
}

// Interpolator maps linear progress in [0,1] to eased progress.
type Interpolator func(t float64) float64

// Track is the keyframe sequence of one property.
type Track struct {
	Property Property
	Values   []float64
}

// Animation is one runnable unit handed to the Engine: every track of one element
// together with the owning group's timing.
type Animation struct {
	Target       Element
	Tracks       []Track
	Delay        time.Duration
	Duration     time.Duration
	RepeatCount  int
	RepeatMode   RepeatMode
	Interpolator Interpolator
}

// ComposeOptions apply to a whole composite.
type ComposeOptions struct {
	// Interpolator, when set, overrides the interpolator of every animation.
	Interpolator Interpolator
	// Listener receives the composite's lifecycle events.
	Listener Listener
}

// Engine is the tween engine that interpolates tracks and mutates elements.
type Engine interface {
	Compose(animations []Animation, opts ComposeOptions) Composite
}

// Composite is a set of animations that play together.
type Composite interface {
	Start()
	Cancel()
	Running() bool
}
