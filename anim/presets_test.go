package anim

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsCatalog(t *testing.T) {
	names := Presets()
	assert.Len(t, names, 39)
	assert.IsIncreasing(t, names)
	for _, name := range []string{"bounce", "fadeIn", "tada", "slideBottomOut", "flipY2"} {
		_, ok := LookupPreset(name)
		assert.True(t, ok, name)
	}
}

func TestEveryPresetProducesTracks(t *testing.T) {
	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			eng := &fakeEngine{}
			layout := &fakeLayout{}
			layout.measure(Rect{Left: 10, Top: 20, Right: 110, Bottom: 60})
			e := newElement("a")

			New(eng, WithLayout(layout)).PlayOn(e).Apply(name).Start()

			require.Equal(t, 1, eng.count())
			assert.NotEmpty(t, tracksOf(eng.last().animations, e))
		})
	}
}

func TestApplyUnknownPreset(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	e := newElement("a")

	g := New(&fakeEngine{}, WithLogger(logger)).PlayOn(e).Alpha(0, 1).Apply("moonwalk")

	assert.Contains(t, buf.String(), "moonwalk")
	assert.Contains(t, buf.String(), `"level":"warn"`)
	tracks := tracksOf(g.Flatten(0), e)
	assert.Equal(t, []float64{0, 1}, tracks[Alpha])
	assert.Len(t, tracks, 1)
}

func TestMeasuredPresetsWaitForLayout(t *testing.T) {
	layout := &fakeLayout{}
	e := newElement("a")
	g := New(&fakeEngine{}, WithLayout(layout)).PlayOn(e).SlideRightIn()

	assert.Empty(t, g.Flatten(0), "nothing recorded before the element is measured")

	g.Start()
	layout.measure(Rect{Left: 40, Right: 140, Bottom: 30})
	tracks := tracksOf(g.Flatten(0), e)
	assert.Equal(t, []float64{140, 0}, tracks[TranslationX])
	assert.Equal(t, []float64{0, 1}, tracks[Alpha])
}

func TestStandUpPivotsOnBottomCentre(t *testing.T) {
	layout := &fakeLayout{}
	layout.measure(Rect{Right: 80, Bottom: 40})
	e := newElement("a")
	g := New(&fakeEngine{}, WithLayout(layout)).PlayOn(e).StandUp()
	g.Start()

	tracks := tracksOf(g.Flatten(0), e)
	assert.Equal(t, []float64{40, 40, 40, 40, 40}, tracks[PivotX])
	assert.Equal(t, []float64{40, 40, 40, 40, 40}, tracks[PivotY])
	assert.Equal(t, []float64{55, -30, 15, -15, 0}, tracks[RotationX])
}

func TestShakeUsesDensity(t *testing.T) {
	e := newElement("a")
	g := New(&fakeEngine{}, WithDensity(FixedDensity(2))).PlayOn(e).ShakeX()
	assert.Equal(t, []float64{0, 16, -16, 16, -16, 10, -10, 4, -4, 0}, tracksOf(g.Flatten(0), e)[TranslationX])
}
