// Package util provides the named easing curves accepted in config and scenario files.
package util

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

var easings = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// aliases for the platform interpolator names people tend to type.
var aliases = map[string]string{
	"accelerate":           "inQuad",
	"decelerate":           "outQuad",
	"accelerateDecelerate": "inOutSine",
	"anticipate":           "inBack",
	"overshoot":            "outBack",
	"bounce":               "outBounce",
}

// Easing returns the curve registered under name. Matching ignores case.
func Easing(name string) (func(float64) float64, error) {
	for n, fn := range easings {
		if strings.EqualFold(n, name) {
			return fn, nil
		}
	}
	for alias, n := range aliases {
		if strings.EqualFold(alias, name) {
			return easings[n], nil
		}
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}

// Easings lists the registered curve names, sorted.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
