package stream

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// Looper runs posted work one task at a time on a single goroutine. It is the
// home execution context of the engine: frame steps, timeline drains and
// element updates all happen on it.
type Looper struct {
	mu     sync.Mutex
	tasks  []func()
	notify chan struct{}
	owner  atomic.Uint64 // goroutine running Run, 0 when stopped
}

// NewLooper creates an instance of a Looper. Nothing runs until Run is called.
func NewLooper() *Looper {
	l := new(Looper)
	l.notify = make(chan struct{}, 1)
	return l
}

// Post queues fn without blocking.
func (l *Looper) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Current reports whether the caller is the goroutine inside Run, so work
// started from a running task can proceed in place.
func (l *Looper) Current() bool {
	owner := l.owner.Load()
	return owner != 0 && owner == goroutineID()
}

// Pending returns the number of queued tasks.
func (l *Looper) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks)
}

// Run executes tasks in post order until ctx is done.
func (l *Looper) Run(ctx context.Context) error {
	l.owner.Store(goroutineID())
	defer l.owner.Store(0)

	for {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.notify:
		}
	}
}

func (l *Looper) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tasks) == 0 {
		return nil, false
	}
	fn := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	return fn, true
}

// goroutineID parses the id from the "goroutine N [" header of the caller's stack.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
