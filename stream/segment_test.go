package stream

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type foreign struct{}

func (foreign) SetProperty(anim.Property, float64) {}

func TestSegmentRest(t *testing.T) {
	s := NewSegment("a", colorful.Color{R: 1}, 4, 10)
	assert.Equal(t, 1.0, s.Property(anim.Alpha))
	assert.Equal(t, 1.0, s.Property(anim.ScaleX))
	assert.Equal(t, 5.0, s.Property(anim.PivotX))
	assert.Zero(t, s.Property(anim.TranslationX))

	s.SetProperty(anim.TranslationX, 3)
	s.SetProperty(anim.Property(99), 3)
	assert.Equal(t, 3.0, s.Property(anim.TranslationX))
	assert.Zero(t, s.Property(anim.Property(99)))

	s.Reset()
	assert.Zero(t, s.Property(anim.TranslationX))
}

func TestStripSplit(t *testing.T) {
	strip := NewStrip(30, colorful.Color{})
	segs := strip.Split(3, Rainbow)
	require.Len(t, segs, 3)
	assert.Nil(t, strip.Split(0, Rainbow))

	for i, s := range segs {
		assert.Equal(t, i*10, s.Start)
		assert.Equal(t, 10, s.Length)
	}
	got, ok := strip.Segment("s1")
	require.True(t, ok)
	assert.Same(t, segs[1], got)
	_, ok = strip.Segment("nope")
	assert.False(t, ok)
	assert.Len(t, strip.Segments(), 3)
}

func TestStripMeasurement(t *testing.T) {
	strip := NewStrip(20, colorful.Color{})
	segs := strip.Split(2, Rainbow)

	assert.True(t, strip.Bounds(segs[1]).Empty())

	measured := 0
	strip.NotifyMeasured(segs[1], func() { measured++ })
	assert.Zero(t, measured)

	strip.Layout()
	assert.Equal(t, 1, measured)
	assert.Equal(t, anim.Rect{Left: 10, Right: 20, Bottom: 1}, strip.Bounds(segs[1]))
	assert.True(t, strip.Bounds(foreign{}).Empty())

	strip.NotifyMeasured(segs[0], func() { measured++ })
	assert.Equal(t, 2, measured)
}
