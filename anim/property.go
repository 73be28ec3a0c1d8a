package anim

import (
	"fmt"
	"strings"
)

// Property identifies an animatable field of an Element.
type Property int

const (
	Alpha Property = iota
	PivotX
	PivotY
	Rotation
	RotationX
	RotationY
	ScaleX
	ScaleY
	TranslationX
	TranslationY

	numProperties
)

var propertyNames = [numProperties]string{
	"alpha",
	"pivotX",
	"pivotY",
	"rotation",
	"rotationX",
	"rotationY",
	"scaleX",
	"scaleY",
	"translationX",
	"translationY",
}

// Properties lists every Property in declaration order.
func Properties() []Property {
	out := make([]Property, numProperties)
	for i := range out {
		out[i] = Property(i)
	}
	return out
}

// String returns the name of the field the property drives.
func (p Property) String() string {
	if p < 0 || p >= numProperties {
		return fmt.Sprintf("Property(%d)", int(p))
	}
	return propertyNames[p]
}

// Valid reports whether p is one of the declared properties.
func (p Property) Valid() bool {
	return p >= 0 && p < numProperties
}

// ParseProperty resolves a field name such as "translationX". Matching ignores case.
func ParseProperty(name string) (Property, error) {
	for i, n := range propertyNames {
		if strings.EqualFold(n, name) {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("unknown property %q", name)
}

// RepeatMode selects what happens when an animation reaches its end and repeats.
type RepeatMode int

const (
	// Restart plays every iteration from the first keyframe.
	Restart RepeatMode = iota
	// Reverse alternates direction on every iteration.
	Reverse
)

// Infinite repeats an animation until it is cancelled.
const Infinite = -1

func (m RepeatMode) String() string {
	switch m {
	case Restart:
		return "restart"
	case Reverse:
		return "reverse"
	}
	return fmt.Sprintf("RepeatMode(%d)", int(m))
}

// ParseRepeatMode resolves "restart" or "reverse". An empty name means Restart.
func ParseRepeatMode(name string) (RepeatMode, error) {
	switch strings.ToLower(name) {
	case "", "restart":
		return Restart, nil
	case "reverse":
		return Reverse, nil
	}
	return Restart, fmt.Errorf("unknown repeat mode %q", name)
}
