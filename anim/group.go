package anim

import (
	"sort"
	"sync"
	"time"
)

// DefaultDuration is the duration of a group that never set one.
const DefaultDuration = 500 * time.Millisecond

// Timing holds a group's shared timing parameters.
type Timing struct {
	Delay       time.Duration
	Duration    time.Duration
	RepeatCount int
	RepeatMode  RepeatMode
}

// Span is the time a group occupies on its timeline, ignoring repeats.
func (t Timing) Span() time.Duration {
	return t.Delay + t.Duration
}

// Group is a set of targets with their keyframe tracks and shared timing.
// Keyframe calls replace any earlier sequence for the same property on the
// same element.
type Group struct {
	timeline *Timeline
	chained  bool

	mu           sync.Mutex
	targets      []Element
	tracks       map[Element]map[Property][]float64
	timing       Timing
	interpolator Interpolator
}

func newGroup(t *Timeline, chained bool, targets []Element) *Group {
	g := new(Group)
	g.timeline = t
	g.chained = chained
	g.tracks = make(map[Element]map[Property][]float64)
	g.timing.Duration = DefaultDuration
	for _, e := range targets {
		if e == nil {
			continue
		}
		if _, ok := g.tracks[e]; ok {
			continue
		}
		g.targets = append(g.targets, e)
		g.tracks[e] = make(map[Property][]float64)
	}
	return g
}

// Timeline returns the timeline the group belongs to.
func (g *Group) Timeline() *Timeline {
	return g.timeline
}

// Chained reports whether the group was added with PlayThen.
func (g *Group) Chained() bool {
	return g.chained
}

// Targets returns the group's elements in the order they were given.
func (g *Group) Targets() []Element {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Element, len(g.targets))
	copy(out, g.targets)
	return out
}

// Timing returns the group's timing parameters.
func (g *Group) Timing() Timing {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timing
}

// PlayWith adds a group that starts at the timeline's current chain point.
func (g *Group) PlayWith(targets ...Element) *Group {
	return g.timeline.PlayWith(targets...)
}

// PlayThen adds a group that starts after everything scheduled so far.
func (g *Group) PlayThen(targets ...Element) *Group {
	return g.timeline.PlayThen(targets...)
}

// Start starts the whole timeline.
func (g *Group) Start() *Subscription {
	return g.timeline.Start()
}

// Delay sets the time to wait before the group starts. Negative values are clamped to 0.
func (g *Group) Delay(d time.Duration) *Group {
	g.mu.Lock()
	g.timing.Delay = clampDuration(d)
	g.mu.Unlock()
	return g
}

// Duration sets the length of one iteration. Negative values are clamped to 0.
func (g *Group) Duration(d time.Duration) *Group {
	g.mu.Lock()
	g.timing.Duration = clampDuration(d)
	g.mu.Unlock()
	return g
}

// RepeatCount sets how many extra iterations play. Use Infinite to repeat until cancelled.
func (g *Group) RepeatCount(n int) *Group {
	g.mu.Lock()
	g.timing.RepeatCount = n
	g.mu.Unlock()
	return g
}

// RepeatMode sets how iterations after the first one play.
func (g *Group) RepeatMode(m RepeatMode) *Group {
	g.mu.Lock()
	g.timing.RepeatMode = m
	g.mu.Unlock()
	return g
}

// Interpolator sets the group's easing curve.
func (g *Group) Interpolator(fn Interpolator) *Group {
	g.mu.Lock()
	g.interpolator = fn
	g.mu.Unlock()
	return g
}

// Set records the keyframes of p on e, or on every target when e is nil.
// Elements that are not targets of the group are ignored.
func (g *Group) Set(e Element, p Property, values ...float64) *Group {
	log := g.timeline.logger
	if !p.Valid() {
		log.Warn().Int("property", int(p)).Msg("ignoring keyframes for unknown property")
		return g
	}
	if len(values) == 0 {
		log.Warn().Stringer("property", p).Msg("ignoring keyframes without samples")
		return g
	}

	seq := make([]float64, len(values))
	copy(seq, values)

	g.mu.Lock()
	defer g.mu.Unlock()
	if e == nil {
		for _, t := range g.targets {
			g.tracks[t][p] = seq
		}
		return g
	}
	props, ok := g.tracks[e]
	if !ok {
		log.Warn().Stringer("property", p).Msg("ignoring keyframes for element outside the group")
		return g
	}
	props[p] = seq
	return g
}

// Alpha animates opacity.
func (g *Group) Alpha(values ...float64) *Group {
	return g.Set(nil, Alpha, values...)
}

// Pivot animates both pivot coordinates with the same values.
func (g *Group) Pivot(values ...float64) *Group {
	return g.PivotX(values...).PivotY(values...)
}

func (g *Group) PivotX(values ...float64) *Group {
	return g.Set(nil, PivotX, values...)
}

func (g *Group) PivotY(values ...float64) *Group {
	return g.Set(nil, PivotY, values...)
}

// Rotation animates rotation around the Z axis, in degrees.
func (g *Group) Rotation(values ...float64) *Group {
	return g.Set(nil, Rotation, values...)
}

func (g *Group) RotationX(values ...float64) *Group {
	return g.Set(nil, RotationX, values...)
}

func (g *Group) RotationY(values ...float64) *Group {
	return g.Set(nil, RotationY, values...)
}

// Scale animates both scale axes with the same values.
func (g *Group) Scale(values ...float64) *Group {
	return g.ScaleX(values...).ScaleY(values...)
}

func (g *Group) ScaleX(values ...float64) *Group {
	return g.Set(nil, ScaleX, values...)
}

func (g *Group) ScaleY(values ...float64) *Group {
	return g.Set(nil, ScaleY, values...)
}

// TranslationX animates horizontal offset in device independent units.
func (g *Group) TranslationX(values ...float64) *Group {
	return g.Set(nil, TranslationX, g.timeline.dp(values)...)
}

// TranslationY animates vertical offset in device independent units.
func (g *Group) TranslationY(values ...float64) *Group {
	return g.Set(nil, TranslationY, g.timeline.dp(values)...)
}

// TranslationXPx animates horizontal offset in element units.
func (g *Group) TranslationXPx(values ...float64) *Group {
	return g.Set(nil, TranslationX, values...)
}

// TranslationYPx animates vertical offset in element units.
func (g *Group) TranslationYPx(values ...float64) *Group {
	return g.Set(nil, TranslationY, values...)
}

// Customize queues fn as a deferred action. It runs on the looper once the
// timeline's targets are measured, before the timeline is built.
func (g *Group) Customize(fn func()) *Group {
	if fn != nil {
		g.timeline.post(fn)
	}
	return g
}

// Flatten produces one Animation per target that has at least one track. offset
// is added to the group's own delay.
func (g *Group) Flatten(offset time.Duration) []Animation {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out []Animation
	for _, e := range g.targets {
		props := g.tracks[e]
		if len(props) == 0 {
			continue
		}
		tracks := make([]Track, 0, len(props))
		for p, values := range props {
			tracks = append(tracks, Track{Property: p, Values: values})
		}
		sort.Slice(tracks, func(i, j int) bool {
			return tracks[i].Property < tracks[j].Property
		})
		out = append(out, Animation{
			Target:       e,
			Tracks:       tracks,
			Delay:        offset + g.timing.Delay,
			Duration:     g.timing.Duration,
			RepeatCount:  g.timing.RepeatCount,
			RepeatMode:   g.timing.RepeatMode,
			Interpolator: g.interpolator,
		})
	}
	return out
}

func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
