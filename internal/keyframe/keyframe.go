package keyframe

import (
	"math"
	"slices"

	"golang.org/x/image/math/f64"
)

// Point is a single polygon vertex as (x, y).
type Point = f64.Vec2

// Keyframe pins the polygon geometry of a region to one frame
type Keyframe struct {
	Frame    int     `yaml:"frame" json:"frame" cbor:"frame"`
	Points   []Point `yaml:"points" json:"points" cbor:"points"`
	Rotation float64 `yaml:"rotation" json:"rotation" cbor:"rotation"`
	Enabled  bool    `yaml:"enabled" json:"enabled" cbor:"enabled"`
}

// Clone returns a copy that shares no memory with kf.
func (kf Keyframe) Clone() Keyframe {
	kf.Points = slices.Clone(kf.Points)
	return kf
}

// Equal reports whether two keyframes carry the same data. NaN
// coordinates and rotations compare equal to NaN.
func (kf Keyframe) Equal(o Keyframe) bool {
	return kf.Frame == o.Frame &&
		sameFloat(kf.Rotation, o.Rotation) &&
		kf.Enabled == o.Enabled &&
		slices.EqualFunc(kf.Points, o.Points, func(a, b Point) bool {
			return sameFloat(a[0], b[0]) && sameFloat(a[1], b[1])
		})
}

// sameFloat is == except that NaN matches NaN.
func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
