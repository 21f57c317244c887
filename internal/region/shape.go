package region

import (
	"slices"

	"github.com/ivlev/keypoly/internal/interp"
	"github.com/ivlev/keypoly/internal/keyframe"
)

// Shape is the effective polygon geometry of a region at one frame
type Shape struct {
	Points   []keyframe.Point `yaml:"points" json:"points"`
	Rotation float64          `yaml:"rotation" json:"rotation"`
	Enabled  bool             `yaml:"enabled" json:"enabled"`
}

// Patch is a partial shape payload. Nil fields are left as they are.
type Patch struct {
	Points   []keyframe.Point
	Rotation *float64
}

// Rotation returns a pointer to r, for building a Patch inline.
func Rotation(r float64) *float64 {
	return &r
}

func shapeOf(kf keyframe.Keyframe) Shape {
	return Shape{
		Points:   slices.Clone(kf.Points),
		Rotation: kf.Rotation,
		Enabled:  kf.Enabled,
	}
}

// ResolveShapeAt returns the shape of the timeline at frame.
//
// A keyframe at exactly frame is returned verbatim. Past the last keyframe
// the last shape is held. Between two keyframes every x, y and the rotation
// are interpolated independently. When the bounding keyframes have a
// different number of points the earlier one is held. ok is false if the
// timeline is empty or frame precedes the first keyframe.
func ResolveShapeAt(seq *keyframe.Sequence, frame int, ease interp.Easing) (shape Shape, ok bool) {
	prevIdx, nextIdx := seq.Bounds(frame)
	if prevIdx < 0 {
		return Shape{}, false
	}

	prev := seq.At(prevIdx)
	if prev.Frame == frame || nextIdx < 0 {
		return shapeOf(prev), true
	}

	next := seq.At(nextIdx)
	if len(prev.Points) != len(next.Points) {
		return shapeOf(prev), true
	}

	points := make([]keyframe.Point, len(prev.Points))
	for i, p := range prev.Points {
		q := next.Points[i]
		points[i] = keyframe.Point{
			interp.At(p[0], q[0], prev.Frame, next.Frame, frame, ease),
			interp.At(p[1], q[1], prev.Frame, next.Frame, frame, ease),
		}
	}

	return Shape{
		Points:   points,
		Rotation: interp.At(prev.Rotation, next.Rotation, prev.Frame, next.Frame, frame, ease),
		Enabled:  prev.Enabled,
	}, true
}

// CommitShapeAt writes patch as the authoritative keyframe at frame and
// reports whether the timeline changed.
//
// Fields missing from patch are taken from the keyframe at the insertion
// point (the first keyframe at or after frame). Enabled is inherited from
// the nearest keyframe at or before frame and defaults to true.
func CommitShapeAt(seq *keyframe.Sequence, patch Patch, frame int) bool {
	enabled := true
	if closest, ok := seq.Closest(frame); ok {
		enabled = closest.Enabled
	}

	kf := keyframe.Keyframe{Frame: frame, Enabled: enabled}
	if i := seq.Search(frame); i < seq.Len() {
		base := seq.At(i)
		kf.Points = base.Points
		kf.Rotation = base.Rotation
	}

	if patch.Points != nil {
		kf.Points = slices.Clone(patch.Points)
	}
	if patch.Rotation != nil {
		kf.Rotation = *patch.Rotation
	}

	return seq.Put(kf)
}
