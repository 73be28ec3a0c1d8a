package stream

import (
	"fmt"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
)

// A Segment is a run of pixels on the strip that animates as one element.
type Segment struct {
	Name   string
	Colour colorful.Color
	Start  int
	Length int

	mu     sync.Mutex
	values []float64
}

// NewSegment creates an instance of a Segment at rest: opaque, unscaled, with its
// pivot in the middle.
func NewSegment(name string, colour colorful.Color, start, length int) *Segment {
	s := new(Segment)
	s.Name = name
	s.Colour = colour
	s.Start = start
	s.Length = length
	s.values = make([]float64, len(anim.Properties()))
	s.Reset()
	return s
}

// Reset puts every property back to its resting value.
func (s *Segment) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.values {
		s.values[i] = 0
	}
	s.values[anim.Alpha] = 1
	s.values[anim.ScaleX] = 1
	s.values[anim.ScaleY] = 1
	s.values[anim.PivotX] = float64(s.Length) / 2
	s.values[anim.PivotY] = 0.5
}

// SetProperty implements anim.Element.
func (s *Segment) SetProperty(p anim.Property, v float64) {
	if !p.Valid() {
		return
	}
	s.mu.Lock()
	s.values[p] = v
	s.mu.Unlock()
}

// Property returns the current value of p.
func (s *Segment) Property(p anim.Property) float64 {
	if !p.Valid() {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[p]
}

// Strip holds the segments of an led strip and measures them once laid out.
type Strip struct {
	Pixels     int
	Background colorful.Color

	mu       sync.Mutex
	segments []*Segment
	laidOut  bool
	pending  []func()
}

// NewStrip creates an instance of a Strip.
func NewStrip(pixels int, background colorful.Color) *Strip {
	s := new(Strip)
	s.Pixels = pixels
	s.Background = background
	return s
}

// Split adds count equal segments covering the strip, coloured along gradient.
func (s *Strip) Split(count int, gradient GradientTable) []*Segment {
	if count <= 0 {
		return nil
	}
	length := s.Pixels / count
	out := make([]*Segment, 0, count)
	for i := 0; i < count; i++ {
		pos := (float64(i) + 0.5) / float64(count)
		seg := NewSegment(fmt.Sprintf("s%d", i), gradient.GetColor(pos, 0.8, 0.5), i*length, length)
		s.Add(seg)
		out = append(out, seg)
	}
	return out
}

// Add places seg on the strip.
func (s *Strip) Add(seg *Segment) {
	s.mu.Lock()
	s.segments = append(s.segments, seg)
	s.mu.Unlock()
}

// Segments returns the segments in the order they were added.
func (s *Strip) Segments() []*Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// Segment finds a segment by name.
func (s *Strip) Segment(name string) (*Segment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seg := range s.segments {
		if seg.Name == name {
			return seg, true
		}
	}
	return nil, false
}

// Layout marks the strip as laid out and releases every pending measurement callback.
func (s *Strip) Layout() {
	s.mu.Lock()
	s.laidOut = true
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Bounds implements anim.Layout. Segments have a height of one pixel.
func (s *Strip) Bounds(e anim.Element) anim.Rect {
	seg, ok := e.(*Segment)
	if !ok {
		return anim.Rect{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.laidOut {
		return anim.Rect{}
	}
	return anim.Rect{
		Left:   float64(seg.Start),
		Right:  float64(seg.Start + seg.Length),
		Bottom: 1,
	}
}

// NotifyMeasured implements anim.Layout.
func (s *Strip) NotifyMeasured(_ anim.Element, fn func()) {
	s.mu.Lock()
	if !s.laidOut {
		s.pending = append(s.pending, fn)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	fn()
}
