package stream

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/util"
	"github.com/rs/zerolog"
)

// DefaultInterpolator accelerates then decelerates, used when neither the
// composite nor the animation sets one.
var DefaultInterpolator anim.Interpolator = ease.InOutSine

// Engine is a tween engine driven by a frame ticker. Frame steps are posted to
// the looper, so elements are only mutated on the home context.
type Engine struct {
	looper    anim.Looper
	frameRate float64
	logger    zerolog.Logger
	now       func() time.Time

	mu     sync.Mutex
	active []*composite
}

// NewEngine creates an instance of an Engine ticking frameRate times a second.
func NewEngine(looper anim.Looper, frameRate float64, logger zerolog.Logger) *Engine {
	e := new(Engine)
	e.looper = looper
	e.frameRate = frameRate
	if e.frameRate <= 0 {
		e.frameRate = 30
	}
	e.logger = logger
	e.now = time.Now
	return e
}

// Compose implements anim.Engine.
func (e *Engine) Compose(animations []anim.Animation, opts anim.ComposeOptions) anim.Composite {
	c := new(composite)
	c.engine = e
	c.animations = animations
	c.interpolator = opts.Interpolator
	c.listener = opts.Listener
	if c.listener == nil {
		c.listener = anim.NopListener{}
	}
	return c
}

// Active returns the number of running composites.
func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}

// Run posts a frame step to the looper on every tick until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / e.frameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.logger.Info().Float64("fps", e.frameRate).Msg("engine running")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			e.looper.Post(e.Step)
		}
	}
}

// Step advances every running composite to the current time.
func (e *Engine) Step() {
	now := e.now()
	e.mu.Lock()
	active := make([]*composite, len(e.active))
	copy(active, e.active)
	e.mu.Unlock()

	for _, c := range active {
		c.step(now)
	}
}

func (e *Engine) add(c *composite) {
	e.mu.Lock()
	e.active = append(e.active, c)
	e.mu.Unlock()
}

func (e *Engine) remove(c *composite) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, a := range e.active {
		if a == c {
			e.active = append(e.active[:i], e.active[i+1:]...)
			return
		}
	}
}

type composite struct {
	engine       *Engine
	animations   []anim.Animation
	interpolator anim.Interpolator
	listener     anim.Listener

	mu         sync.Mutex
	running    bool
	done       bool
	startedAt  time.Time
	iterations []int
}

func (c *composite) Start() {
	c.mu.Lock()
	if c.running || c.done {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.startedAt = c.engine.now()
	c.iterations = make([]int, len(c.animations))
	c.mu.Unlock()

	c.engine.add(c)
	c.listener.OnStart()
	if len(c.animations) == 0 {
		c.end()
	}
}

func (c *composite) Cancel() {
	if !c.stop() {
		return
	}
	c.listener.OnCancel()
	c.listener.OnEnd()
}

func (c *composite) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// stop marks the composite finished and reports whether it was running.
func (c *composite) stop() bool {
	c.mu.Lock()
	was := c.running
	c.running = false
	c.done = true
	c.mu.Unlock()
	if was {
		c.engine.remove(c)
	}
	return was
}

func (c *composite) end() {
	if c.stop() {
		c.listener.OnEnd()
	}
}

func (c *composite) step(now time.Time) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	elapsed := now.Sub(c.startedAt)
	c.mu.Unlock()

	finished := true
	repeated := false
	for i, a := range c.animations {
		t := elapsed - a.Delay
		if t < 0 {
			finished = false
			continue
		}
		iter, frac, done := progress(a, t)
		if !done {
			finished = false
		}
		if iter > c.iterations[i] {
			c.iterations[i] = iter
			repeated = true
		}

		fn := c.interpolator
		if fn == nil {
			fn = a.Interpolator
		}
		if fn == nil {
			fn = DefaultInterpolator
		}
		eased := fn(frac)
		for _, tr := range a.Tracks {
			if len(tr.Values) < 2 {
				continue
			}
			a.Target.SetProperty(tr.Property, Sample(tr.Values, eased))
		}
	}

	if repeated {
		c.listener.OnRepeat()
	}
	if finished {
		c.end()
	}
}

// progress returns the iteration and the linear progress within it at time t
// after the animation's delay, and whether the animation has completed.
func progress(a anim.Animation, t time.Duration) (int, float64, bool) {
	if a.Duration <= 0 {
		return 0, 1, true
	}
	iter := int(t / a.Duration)
	frac := float64(t%a.Duration) / float64(a.Duration)
	done := false
	if a.RepeatCount != anim.Infinite && iter > a.RepeatCount {
		iter = a.RepeatCount
		frac = 1
		done = true
	}
	if a.RepeatMode == anim.Reverse && iter%2 == 1 {
		frac = 1 - frac
	}
	return iter, frac, done
}

// Sample reads keyframes spaced evenly over [0,1] at f, linearly between
// neighbours. Values of f outside [0,1] extrapolate the first or last interval.
func Sample(values []float64, f float64) float64 {
	n := len(values)
	switch n {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	pos := f * float64(n-1)
	i := int(math.Floor(pos))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return util.Lerp(values[i], values[i+1], pos-float64(i))
}
