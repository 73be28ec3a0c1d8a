package anim

// Listener observes a timeline run.
type Listener interface {
	OnStart()
	OnEnd()
	OnCancel()
	OnRepeat()
}

// NopListener implements every hook as a no-op. Embed it to implement only the
// hooks you need.
type NopListener struct{}

func (NopListener) OnStart()  {}
func (NopListener) OnEnd()    {}
func (NopListener) OnCancel() {}
func (NopListener) OnRepeat() {}

// ListenerFuncs is a Listener built from optional functions.
type ListenerFuncs struct {
	Start  func()
	End    func()
	Cancel func()
	Repeat func()
}

func (l ListenerFuncs) OnStart() {
	if l.Start != nil {
		l.Start()
	}
}

func (l ListenerFuncs) OnEnd() {
	if l.End != nil {
		l.End()
	}
}

func (l ListenerFuncs) OnCancel() {
	if l.Cancel != nil {
		l.Cancel()
	}
}

func (l ListenerFuncs) OnRepeat() {
	if l.Repeat != nil {
		l.Repeat()
	}
}

// runListener forwards engine events for one run to the timeline and its listeners.
type runListener struct {
	t         *Timeline
	gen       uint64
	listeners []Listener
}

func (r *runListener) OnStart() {
	for _, l := range r.listeners {
		l.OnStart()
	}
}

func (r *runListener) OnEnd() {
	r.t.finish(r.gen)
	for _, l := range r.listeners {
		l.OnEnd()
	}
}

func (r *runListener) OnCancel() {
	r.t.finish(r.gen)
	for _, l := range r.listeners {
		l.OnCancel()
	}
}

func (r *runListener) OnRepeat() {
	for _, l := range r.listeners {
		l.OnRepeat()
	}
}
