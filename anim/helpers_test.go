package anim

import (
	"sync"
)

type fakeElement struct {
	name string

	mu     sync.Mutex
	values map[Property]float64
}

func newElement(name string) *fakeElement {
	return &fakeElement{name: name, values: make(map[Property]float64)}
}

func (e *fakeElement) SetProperty(p Property, v float64) {
	e.mu.Lock()
	e.values[p] = v
	e.mu.Unlock()
}

type fakeComposite struct {
	animations []Animation
	opts       ComposeOptions

	mu      sync.Mutex
	started bool
	running bool
}

func (c *fakeComposite) Start() {
	c.mu.Lock()
	c.started = true
	c.running = true
	c.mu.Unlock()
	if c.opts.Listener != nil {
		c.opts.Listener.OnStart()
	}
}

func (c *fakeComposite) Cancel() {
	c.mu.Lock()
	was := c.running
	c.running = false
	c.mu.Unlock()
	if was && c.opts.Listener != nil {
		c.opts.Listener.OnCancel()
		c.opts.Listener.OnEnd()
	}
}

func (c *fakeComposite) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// complete simulates the natural end of the composite.
func (c *fakeComposite) complete() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
	if c.opts.Listener != nil {
		c.opts.Listener.OnEnd()
	}
}

type fakeEngine struct {
	mu         sync.Mutex
	composites []*fakeComposite
}

func (f *fakeEngine) Compose(animations []Animation, opts ComposeOptions) Composite {
	c := &fakeComposite{animations: animations, opts: opts}
	f.mu.Lock()
	f.composites = append(f.composites, c)
	f.mu.Unlock()
	return c
}

func (f *fakeEngine) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.composites)
}

func (f *fakeEngine) last() *fakeComposite {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.composites) == 0 {
		return nil
	}
	return f.composites[len(f.composites)-1]
}

// fakeLayout reports every element with the same bounds and lets tests flip
// elements from unmeasured to measured.
type fakeLayout struct {
	mu       sync.Mutex
	bounds   Rect
	measured bool
	pending  []func()
}

func (l *fakeLayout) Bounds(Element) Rect {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.measured {
		return Rect{}
	}
	return l.bounds
}

func (l *fakeLayout) NotifyMeasured(_ Element, fn func()) {
	l.mu.Lock()
	if l.measured {
		l.mu.Unlock()
		fn()
		return
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()
}

func (l *fakeLayout) measure(r Rect) {
	l.mu.Lock()
	l.bounds = r
	l.measured = true
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()
	for _, fn := range pending {
		fn()
	}
}

// queueLooper collects posted work until the test runs it.
type queueLooper struct {
	mu    sync.Mutex
	tasks []func()
}

func (q *queueLooper) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

func (q *queueLooper) Current() bool { return false }

func (q *queueLooper) runAll() {
	for {
		q.mu.Lock()
		if len(q.tasks) == 0 {
			q.mu.Unlock()
			return
		}
		fn := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()
		fn()
	}
}

type fakeLifecycle struct {
	mu        sync.Mutex
	observers map[int]func()
	next      int
}

func (l *fakeLifecycle) OnDestroy(fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.observers == nil {
		l.observers = make(map[int]func())
	}
	id := l.next
	l.next++
	l.observers[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.observers, id)
		l.mu.Unlock()
	}
}

func (l *fakeLifecycle) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.observers)
}

func (l *fakeLifecycle) destroy() {
	l.mu.Lock()
	var fns []func()
	for _, fn := range l.observers {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func tracksOf(animations []Animation, e Element) map[Property][]float64 {
	for _, a := range animations {
		if a.Target == e {
			out := make(map[Property][]float64)
			for _, t := range a.Tracks {
				out[t.Property] = t.Values
			}
			return out
		}
	}
	return nil
}
