package stream

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/anim"
	"github.com/matt-g-everett/ledanim/util"
)

// MaxPixels is the largest strip a Frame can encode.
const MaxPixels = math.MaxUint16

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a new Frame instance with numPixels black pixels.
func NewFrame(numPixels int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// Render draws the strip: the background, then every segment in order. A
// segment is scaled around its pivot along the strip, shifted by its
// translation and hue rotated by its rotation. Its one pixel row is scaled and
// shifted the same way vertically, and the share of the row still on the strip
// multiplies its alpha. RotationY narrows the segment and RotationX flattens
// the row, as a flip seen edge on.
func (f *Frame) Render(s *Strip) {
	for i := range f.pixels {
		f.pixels[i] = s.Background
	}

	for _, seg := range s.Segments() {
		alpha := util.Clamp01(seg.Property(anim.Alpha)) * rowCoverage(seg)
		if alpha == 0 {
			continue
		}
		sx := seg.Property(anim.ScaleX) * math.Cos(radians(seg.Property(anim.RotationY)))
		tx := seg.Property(anim.TranslationX)
		pivot := float64(seg.Start) + seg.Property(anim.PivotX)

		left := pivot + (float64(seg.Start)-pivot)*sx + tx
		right := pivot + (float64(seg.Start+seg.Length)-pivot)*sx + tx
		if left > right {
			left, right = right, left
		}

		colour := seg.Colour
		if rot := seg.Property(anim.Rotation); rot != 0 {
			h, c, l := colour.Hcl()
			colour = colorful.Hcl(math.Mod(h+rot+360, 360), c, l)
		}

		start := int(math.Max(0, math.Ceil(left)))
		end := int(math.Min(float64(len(f.pixels)), math.Floor(right)))
		for i := start; i < end; i++ {
			f.pixels[i] = f.pixels[i].BlendHcl(colour, alpha)
		}
	}
}

// rowCoverage returns how much of the segment's row, transformed by scaleY,
// rotationX, pivotY and translationY, still overlaps the strip's row [0,1].
func rowCoverage(seg *Segment) float64 {
	sy := seg.Property(anim.ScaleY) * math.Cos(radians(seg.Property(anim.RotationX)))
	pivot := seg.Property(anim.PivotY)
	ty := seg.Property(anim.TranslationY)

	top := pivot - pivot*sy + ty
	bottom := pivot + (1-pivot)*sy + ty
	if top > bottom {
		top, bottom = bottom, top
	}
	return util.Clamp01(math.Min(bottom, 1) - math.Max(top, 0))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// MarshalBinary converts a Frame into binary data.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > MaxPixels {
		return nil, errors.New("frame has too many pixels")
	}
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
