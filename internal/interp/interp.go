package interp

import (
	"fmt"
	"math"
)

// Easing maps a linear progress value in [0, 1] onto the curve used
// between two keyframes.
type Easing func(t float64) float64

// Linear is the default easing: progress is used as is.
func Linear(t float64) float64 {
	return t
}

// EaseInOutCubic applies smooth easing function
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// At interpolates the value of a scalar sampled as a at frame from and b at
// frame to. Frames outside [from, to] are clamped, so both endpoints are
// reproduced exactly. A nil ease means Linear.
func At(a, b float64, from, to, frame int, ease Easing) float64 {
	if frame <= from || to <= from {
		return a
	}
	if frame >= to {
		return b
	}
	if ease == nil {
		ease = Linear
	}
	// Spans are taken in float64; int differences overflow for far-apart frames
	t := (float64(frame) - float64(from)) / (float64(to) - float64(from))
	return Lerp(a, b, ease(t))
}

// ParseEasing resolves an easing by name. The empty name means linear.
func ParseEasing(name string) (Easing, error) {
	switch name {
	case "", "linear":
		return Linear, nil
	case "cubic", "ease-in-out-cubic":
		return EaseInOutCubic, nil
	default:
		return nil, fmt.Errorf("unknown easing: %s", name)
	}
}
