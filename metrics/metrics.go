// Package metrics exposes Prometheus counters for timelines and frame streaming.
package metrics

import (
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Timeline lifecycle events.
const (
	EventStarted   = "started"
	EventEnded     = "ended"
	EventCancelled = "cancelled"
	EventRepeated  = "repeated"
)

// Metrics holds the collectors registered by New.
type Metrics struct {
	timelineEvents *prometheus.CounterVec
	timelineActive prometheus.Gauge
	frames         *prometheus.CounterVec
}

// New creates an instance of Metrics registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := new(Metrics)
	m.timelineEvents = f.NewCounterVec(prometheus.CounterOpts{
		Name: "ledanim_timeline_events_total",
		Help: "Timeline lifecycle events by source and event",
	}, []string{"source", "event"})
	m.timelineActive = f.NewGauge(prometheus.GaugeOpts{
		Name: "ledanim_timelines_running",
		Help: "Number of timelines currently running",
	})
	m.frames = f.NewCounterVec(prometheus.CounterOpts{
		Name: "ledanim_frames_total",
		Help: "Frames handed to the sink by result",
	}, []string{"result"})
	return m
}

// Listener returns a timeline listener counting events under source.
func (m *Metrics) Listener(source string) anim.Listener {
	if source == "" {
		source = "unknown"
	}
	return &listener{m: m, source: source}
}

// FramePublished records the outcome of a frame publish.
func (m *Metrics) FramePublished(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.frames.WithLabelValues(result).Inc()
}

type listener struct {
	m      *Metrics
	source string
}

func (l *listener) OnStart() {
	l.m.timelineEvents.WithLabelValues(l.source, EventStarted).Inc()
	l.m.timelineActive.Inc()
}

func (l *listener) OnEnd() {
	l.m.timelineEvents.WithLabelValues(l.source, EventEnded).Inc()
	l.m.timelineActive.Dec()
}

func (l *listener) OnCancel() {
	l.m.timelineEvents.WithLabelValues(l.source, EventCancelled).Inc()
}

func (l *listener) OnRepeat() {
	l.m.timelineEvents.WithLabelValues(l.source, EventRepeated).Inc()
}
