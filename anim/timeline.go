package anim

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State of a timeline.
type State int

const (
	// Idle: nothing scheduled or running.
	Idle State = iota
	// Scheduling: started, waiting for targets to be measured.
	Scheduling
	// Running: the composite is playing.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduling:
		return "scheduling"
	case Running:
		return "running"
	}
	return "unknown"
}

// Timeline sequences groups into one composite animation. It owns the groups,
// the deferred action queue and at most one running composite.
type Timeline struct {
	id        uuid.UUID
	animator  *Animator
	lifecycle Lifecycle
	logger    zerolog.Logger

	mu           sync.Mutex
	groups       []*Group
	listeners    []Listener
	interpolator Interpolator
	actions      []func()
	gen          uint64
	state        State
	running      Composite
	unsubscribe  func()
}

func newTimeline(a *Animator, lc Lifecycle) *Timeline {
	t := new(Timeline)
	t.id = uuid.New()
	t.animator = a
	t.lifecycle = lc
	t.logger = a.logger.With().Str("timeline", t.id.String()).Logger()
	return t
}

// ID identifies the timeline in logs.
func (t *Timeline) ID() uuid.UUID {
	return t.id
}

// PlayWith adds a group that starts at the current chain point.
func (t *Timeline) PlayWith(targets ...Element) *Group {
	return t.add(false, targets)
}

// PlayThen adds a group that starts after everything scheduled so far.
func (t *Timeline) PlayThen(targets ...Element) *Group {
	return t.add(true, targets)
}

func (t *Timeline) add(chained bool, targets []Element) *Group {
	g := newGroup(t, chained, targets)
	t.mu.Lock()
	t.groups = append(t.groups, g)
	t.mu.Unlock()
	return g
}

// Groups returns the groups in authorship order.
func (t *Timeline) Groups() []*Group {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// AddListener registers l for every later run. nil is ignored.
func (t *Timeline) AddListener(l Listener) *Timeline {
	if l == nil {
		return t
	}
	t.mu.Lock()
	t.listeners = append(t.listeners, l)
	t.mu.Unlock()
	return t
}

// SetInterpolator overrides the interpolator of every group for later runs.
func (t *Timeline) SetInterpolator(fn Interpolator) *Timeline {
	t.mu.Lock()
	t.interpolator = fn
	t.mu.Unlock()
	return t
}

// State returns the current state.
func (t *Timeline) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsRunning reports whether a composite is currently playing.
func (t *Timeline) IsRunning() bool {
	t.mu.Lock()
	c := t.running
	t.mu.Unlock()
	return c != nil && c.Running()
}

// Start cancels any current run and schedules a new one. The composite is built
// and started on the looper once the targets are measured. Start never blocks.
func (t *Timeline) Start() *Subscription {
	t.mu.Lock()
	prev, unsub := t.detachLocked()
	t.gen++
	gen := t.gen
	t.state = Scheduling
	t.actions = append(t.actions, func() { t.run(gen) })
	t.mu.Unlock()

	stop(prev, unsub)
	t.logger.Debug().Uint64("run", gen).Msg("timeline scheduled")
	t.flush()
	return &Subscription{t: t, gen: gen}
}

// Cancel stops the running composite and drops every pending deferred action.
// Cancelling an idle timeline does nothing.
func (t *Timeline) Cancel() {
	t.mu.Lock()
	prev, unsub := t.detachLocked()
	t.gen++
	t.state = Idle
	t.actions = nil
	t.mu.Unlock()

	if prev != nil {
		t.logger.Debug().Msg("timeline cancelled")
	}
	stop(prev, unsub)
}

// Duration reports the total duration to cb, once the targets are measured.
// It does not start anything.
func (t *Timeline) Duration(cb func(time.Duration)) {
	if cb == nil {
		return
	}
	t.post(func() {
		cb(Plan(t.Groups()).Total)
	})
	t.flush()
}

// Subscription ties a caller to one run of a timeline.
type Subscription struct {
	t   *Timeline
	gen uint64
}

// Dispose cancels the run the subscription was returned for. It does nothing if
// the timeline has been restarted or cancelled since.
func (s *Subscription) Dispose() {
	if s == nil || s.t == nil {
		return
	}
	s.t.cancelRun(s.gen)
}

func (t *Timeline) cancelRun(gen uint64) {
	t.mu.Lock()
	current := gen == t.gen
	t.mu.Unlock()
	if current {
		t.Cancel()
	}
}

// detachLocked removes the running composite and lifecycle registration. The
// caller stops them after releasing the lock: cancelling fires listeners.
func (t *Timeline) detachLocked() (Composite, func()) {
	c, unsub := t.running, t.unsubscribe
	t.running = nil
	t.unsubscribe = nil
	return c, unsub
}

func stop(c Composite, unsub func()) {
	if unsub != nil {
		unsub()
	}
	if c != nil {
		c.Cancel()
	}
}

func (t *Timeline) post(fn func()) {
	t.mu.Lock()
	t.actions = append(t.actions, fn)
	t.mu.Unlock()
}

// flush drains the action queue on the looper, now if the timeline's first
// target is measured or else once it reports being measured.
func (t *Timeline) flush() {
	a := t.animator
	e := t.probe()
	if e != nil && a.layout.Bounds(e).Empty() {
		a.layout.NotifyMeasured(e, func() {
			a.looper.Post(t.drain)
		})
		return
	}
	if a.looper.Current() {
		t.drain()
		return
	}
	a.looper.Post(t.drain)
}

// probe returns the first target of the first group that has one.
func (t *Timeline) probe() Element {
	for _, g := range t.Groups() {
		if targets := g.Targets(); len(targets) > 0 {
			return targets[0]
		}
	}
	return nil
}

// drain runs queued actions in order until the queue is empty, including
// actions queued by the actions themselves.
func (t *Timeline) drain() {
	for {
		t.mu.Lock()
		if len(t.actions) == 0 {
			t.mu.Unlock()
			return
		}
		fn := t.actions[0]
		t.actions[0] = nil
		t.actions = t.actions[1:]
		t.mu.Unlock()

		fn()
	}
}

// run builds and starts the composite for run gen. It executes on the looper.
func (t *Timeline) run(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	groups := make([]*Group, len(t.groups))
	copy(groups, t.groups)
	listeners := make([]Listener, len(t.listeners))
	copy(listeners, t.listeners)
	interp := t.interpolator
	t.mu.Unlock()

	s := Plan(groups)
	animations := s.Animations()
	c := t.animator.engine.Compose(animations, ComposeOptions{
		Interpolator: interp,
		Listener:     &runListener{t: t, gen: gen, listeners: listeners},
	})

	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.running = c
	t.state = Running
	t.mu.Unlock()

	t.logger.Debug().
		Uint64("run", gen).
		Int("animations", len(animations)).
		Dur("total", s.Total).
		Msg("timeline started")
	c.Start()

	t.mu.Lock()
	current := gen == t.gen && t.running == c
	t.mu.Unlock()
	if !current {
		// Cancelled, restarted or already finished while starting.
		c.Cancel()
		return
	}
	if t.lifecycle == nil {
		return
	}
	unsub := t.lifecycle.OnDestroy(func() { t.cancelRun(gen) })
	t.mu.Lock()
	if gen == t.gen && t.running == c {
		t.unsubscribe = unsub
		unsub = nil
	}
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// finish records the natural or cancelled end of run gen.
func (t *Timeline) finish(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.running == nil {
		t.mu.Unlock()
		return
	}
	_, unsub := t.detachLocked()
	t.state = Idle
	t.mu.Unlock()
	if unsub != nil {
		unsub()
	}
	t.logger.Debug().Uint64("run", gen).Msg("timeline finished")
}

func (t *Timeline) dp(values []float64) []float64 {
	scale := t.animator.density.Scale()
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * scale
	}
	return out
}
