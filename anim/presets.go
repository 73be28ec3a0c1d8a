package anim

import "sort"

// Preset applies a named, pre-built set of keyframes to a group.
type Preset func(g *Group) *Group

var presets = map[string]Preset{
	"bounce":         (*Group).Bounce,
	"bounceIn":       (*Group).BounceIn,
	"bounceOut":      (*Group).BounceOut,
	"fadeIn":         (*Group).FadeIn,
	"fadeOut":        (*Group).FadeOut,
	"flash":          (*Group).Flash,
	"pulse":          (*Group).Pulse,
	"rollLeftIn":     (*Group).RollLeftIn,
	"rollRightIn":    (*Group).RollRightIn,
	"rollLeftOut":    (*Group).RollLeftOut,
	"rollRightOut":   (*Group).RollRightOut,
	"rubber":         (*Group).Rubber,
	"shakeX":         (*Group).ShakeX,
	"shakeY":         (*Group).ShakeY,
	"standUp":        (*Group).StandUp,
	"swing":          (*Group).Swing,
	"tada":           (*Group).Tada,
	"wave":           (*Group).Wave,
	"wobble":         (*Group).Wobble,
	"zoomIn":         (*Group).ZoomIn,
	"zoomOut":        (*Group).ZoomOut,
	"fall":           (*Group).Fall,
	"fallRotate":     (*Group).FallRotate,
	"flipX":          (*Group).FlipX,
	"flipX2":         (*Group).FlipX2,
	"flipY":          (*Group).FlipY,
	"flipY2":         (*Group).FlipY2,
	"newsPaper":      (*Group).NewsPaper,
	"slitX":          (*Group).SlitX,
	"slitY":          (*Group).SlitY,
	"jelly":          (*Group).Jelly,
	"slideLeftIn":    (*Group).SlideLeftIn,
	"slideLeftOut":   (*Group).SlideLeftOut,
	"slideRightIn":   (*Group).SlideRightIn,
	"slideRightOut":  (*Group).SlideRightOut,
	"slideTopIn":     (*Group).SlideTopIn,
	"slideTopOut":    (*Group).SlideTopOut,
	"slideBottomIn":  (*Group).SlideBottomIn,
	"slideBottomOut": (*Group).SlideBottomOut,
}

// Presets returns the names accepted by Group.Apply, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[name]
	return p, ok
}

// Apply runs the preset registered under name. An unknown name is logged and
// leaves the group unchanged.
func (g *Group) Apply(name string) *Group {
	p, ok := presets[name]
	if !ok {
		g.timeline.logger.Warn().Str("preset", name).Msg("unknown preset, no animation applied")
		return g
	}
	return p(g)
}

// measured queues fn to run for every target once the targets are measured.
func (g *Group) measured(fn func(e Element, r Rect)) *Group {
	layout := g.timeline.animator.layout
	g.timeline.post(func() {
		for _, e := range g.Targets() {
			fn(e, layout.Bounds(e))
		}
	})
	return g
}

func (g *Group) Bounce() *Group {
	return g.TranslationY(0, 0, -10, 0, -5, 0, 0)
}

func (g *Group) BounceIn() *Group {
	return g.ScaleX(0.3, 1.05, 0.9, 1).ScaleY(0.3, 1.05, 0.9, 1).Alpha(0, 1, 1, 1)
}

func (g *Group) BounceOut() *Group {
	return g.ScaleX(1, 0.9, 1.05, 0.3).ScaleY(1, 0.9, 1.05, 0.3).Alpha(1, 1, 1, 0)
}

func (g *Group) FadeIn() *Group {
	return g.Alpha(0, 0.25, 0.5, 0.75, 1)
}

func (g *Group) FadeOut() *Group {
	return g.Alpha(1, 0.75, 0.5, 0.25, 0)
}

func (g *Group) Flash() *Group {
	return g.Alpha(1, 0, 1, 0, 1)
}

func (g *Group) Pulse() *Group {
	return g.ScaleX(1, 1.1, 1).ScaleY(1, 1.1, 1)
}

// RollLeftIn rolls in from one element width to the left.
func (g *Group) RollLeftIn() *Group {
	return g.roll(0, 1, -120, 0, func(w float64) (float64, float64) { return -w, 0 })
}

func (g *Group) RollRightIn() *Group {
	return g.roll(0, 1, 120, 0, func(w float64) (float64, float64) { return w, 0 })
}

func (g *Group) RollLeftOut() *Group {
	return g.roll(1, 0, 0, -120, func(w float64) (float64, float64) { return 0, -w })
}

func (g *Group) RollRightOut() *Group {
	return g.roll(1, 0, 0, 120, func(w float64) (float64, float64) { return 0, w })
}

func (g *Group) roll(a0, a1, r0, r1 float64, offset func(width float64) (float64, float64)) *Group {
	g.Customize(func() {
		g.Alpha(a0, a1).Rotation(r0, r1)
	})
	return g.measured(func(e Element, r Rect) {
		from, to := offset(r.Width())
		g.Set(e, TranslationX, from, to)
	})
}

func (g *Group) Rubber() *Group {
	return g.ScaleX(1, 1.25, 0.75, 1.15, 1).ScaleY(1, 0.75, 1.25, 0.85, 1)
}

func (g *Group) ShakeX() *Group {
	return g.TranslationX(0, 8, -8, 8, -8, 5, -5, 2, -2, 0)
}

func (g *Group) ShakeY() *Group {
	return g.TranslationY(0, 8, -8, 8, -8, 5, -5, 2, -2, 0)
}

// StandUp tilts the element up around its bottom centre.
func (g *Group) StandUp() *Group {
	return g.measured(func(e Element, r Rect) {
		x, y := r.Width()/2, r.Height()
		g.Set(e, RotationX, 55, -30, 15, -15, 0)
		g.Set(e, PivotX, x, x, x, x, x)
		g.Set(e, PivotY, y, y, y, y, y)
	})
}

func (g *Group) Swing() *Group {
	return g.Rotation(0, 10, -10, 6, -6, 3, -3, 0)
}

func (g *Group) Tada() *Group {
	g.ScaleX(1, 0.9, 0.9, 1.1, 1.1, 1.1, 1.1, 1.1, 1.1, 1)
	g.ScaleY(1, 0.9, 0.9, 1.1, 1.1, 1.1, 1.1, 1.1, 1.1, 1)
	return g.Rotation(0, -3, -3, 3, -3, 3, -3, 3, -3, 0)
}

// Wave rocks the element around its bottom centre.
func (g *Group) Wave() *Group {
	return g.measured(func(e Element, r Rect) {
		x, y := r.Width()/2, r.Height()
		g.Set(e, Rotation, 12, -12, 3, -3, 0)
		g.Set(e, PivotX, x, x, x, x, x)
		g.Set(e, PivotY, y, y, y, y, y)
	})
}

// Wobble shakes the element by fractions of its width.
func (g *Group) Wobble() *Group {
	return g.measured(func(e Element, r Rect) {
		one := r.Width() / 100
		g.Set(e, TranslationX, 0, -25*one, 20*one, -15*one, 10*one, -5*one, 0, 0)
		g.Set(e, Rotation, 0, -5, 3, -3, 2, -1, 0)
	})
}

func (g *Group) ZoomIn() *Group {
	return g.ScaleX(0.45, 1).ScaleY(0.45, 1).Alpha(0, 1)
}

func (g *Group) ZoomOut() *Group {
	return g.ScaleX(1, 0.3, 0).ScaleY(1, 0.3, 0).Alpha(1, 0, 0)
}

func (g *Group) Fall() *Group {
	return g.Scale(2, 1.5, 1).Alpha(0, 1)
}

func (g *Group) FallRotate() *Group {
	return g.Scale(2, 1.5, 1).Alpha(0, 1).Rotation(45, 0)
}

func (g *Group) FlipX() *Group {
	return g.RotationX(-90, 0)
}

func (g *Group) FlipX2() *Group {
	return g.RotationX(90, 0)
}

func (g *Group) FlipY() *Group {
	return g.RotationY(-90, 0)
}

func (g *Group) FlipY2() *Group {
	return g.RotationY(90, 0)
}

func (g *Group) NewsPaper() *Group {
	return g.ScaleX(0.1, 0.5, 1).ScaleY(0.1, 0.5, 1).Alpha(0, 1)
}

func (g *Group) SlitX() *Group {
	g.Alpha(0, 0.4, 0.8, 1)
	g.Scale(0, 0.5, 0.9, 0.9, 1)
	return g.RotationX(90, 88, 88, 45, 0)
}

func (g *Group) SlitY() *Group {
	g.Alpha(0, 0.4, 0.8, 1)
	g.Scale(0, 0.5, 0.9, 0.9, 1)
	return g.RotationY(90, 88, 88, 45, 0)
}

func (g *Group) Jelly() *Group {
	return g.Scale(0.3, 0.5, 0.9, 0.8, 0.9, 1).Alpha(0.2, 1)
}

func (g *Group) SlideLeftIn() *Group {
	return g.slide(0, 1, TranslationX, func(r Rect) (float64, float64) { return -r.Right, 0 })
}

func (g *Group) SlideLeftOut() *Group {
	return g.slide(1, 0, TranslationX, func(r Rect) (float64, float64) { return 0, -r.Right })
}

func (g *Group) SlideRightIn() *Group {
	return g.slide(0, 1, TranslationX, func(r Rect) (float64, float64) { return r.Right, 0 })
}

func (g *Group) SlideRightOut() *Group {
	return g.slide(1, 0, TranslationX, func(r Rect) (float64, float64) { return 0, r.Right })
}

func (g *Group) SlideTopIn() *Group {
	return g.slide(0, 1, TranslationY, func(r Rect) (float64, float64) { return -r.Bottom, 0 })
}

func (g *Group) SlideTopOut() *Group {
	return g.slide(1, 0, TranslationY, func(r Rect) (float64, float64) { return 0, -r.Bottom })
}

func (g *Group) SlideBottomIn() *Group {
	return g.slide(0, 1, TranslationY, func(r Rect) (float64, float64) { return r.Bottom, 0 })
}

func (g *Group) SlideBottomOut() *Group {
	return g.slide(1, 0, TranslationY, func(r Rect) (float64, float64) { return 0, r.Bottom })
}

func (g *Group) slide(a0, a1 float64, p Property, offset func(r Rect) (float64, float64)) *Group {
	g.Customize(func() {
		g.Alpha(a0, a1)
	})
	return g.measured(func(e Element, r Rect) {
		from, to := offset(r)
		g.Set(e, p, from, to)
	})
}
