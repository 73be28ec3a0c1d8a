package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientTable stores a look-up table of hues keyed by position along the strip.
type GradientTable []struct {
	Hue float64
	Pos float64
}

// Rainbow runs from pink through red, orange, yellow, green and blue back to pink.
var Rainbow = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquoise
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}

// GetColor gets a colour at position t with chroma c and luminance l.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Hcl(0, c, l)
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			// We are in between c1 and c2. Go blend them!
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l)
		}
	}

	// Nothing found? Means we're at (or past) the last gradient keypoint.
	return colorful.Hcl(g[len(g)-1].Hue, c, l)
}
