package region

import (
	"slices"

	"github.com/ivlev/keypoly/internal/interp"
	"github.com/ivlev/keypoly/internal/keyframe"
)

// TimelineKeyframed is implemented by regions whose geometry lives on a
// keyframe timeline.
type TimelineKeyframed interface {
	Keyframes() []keyframe.Keyframe
	Version() uint64
	UpdateShape(patch Patch, frame int) bool
}

// PolygonGeometry is implemented by regions that expose editable polygon
// points.
type PolygonGeometry interface {
	GetShapeAtFrame(frame int) (Shape, bool)
	AddPoint(pt keyframe.Point, frame int) bool
	RemovePoint(idx int, frame int) bool
	InsertPoint(idx int, pt keyframe.Point, frame int) bool
	IsClosed() bool
}

var (
	_ TimelineKeyframed = (*Region)(nil)
	_ PolygonGeometry   = (*Region)(nil)
)

// Region is a video polygon annotation. It owns its keyframe sequence
// exclusively; all writes go through the commit path.
type Region struct {
	ID       string
	Kind     Kind
	Closed   bool
	ReadOnly bool

	// SelectedPoint is UI state carried along untouched; -1 means none.
	SelectedPoint int

	// Easing used between keyframes; nil means linear.
	Easing interp.Easing

	seq *keyframe.Sequence
}

func newRegion(kind Kind, id string, kfs []keyframe.Keyframe) *Region {
	return &Region{
		ID:            id,
		Kind:          kind,
		Closed:        true,
		SelectedPoint: -1,
		seq:           keyframe.NewSequence(kfs...),
	}
}

// Keyframes returns a copy of the authored timeline, ascending by frame.
func (r *Region) Keyframes() []keyframe.Keyframe {
	return r.seq.Keyframes()
}

// Len returns the number of keyframes.
func (r *Region) Len() int {
	return r.seq.Len()
}

// Version changes whenever a write altered the timeline, so callers can
// decide whether to redraw.
func (r *Region) Version() uint64 {
	return r.seq.Version()
}

// Mismatches lists adjacent keyframes that cannot be interpolated.
func (r *Region) Mismatches() []keyframe.Mismatch {
	return r.seq.Mismatches()
}

// IsClosed reports whether the last point connects back to the first.
func (r *Region) IsClosed() bool {
	return r.Closed
}

// GetShapeAtFrame resolves the polygon at frame. ok is false when the
// region does not exist yet at that frame.
func (r *Region) GetShapeAtFrame(frame int) (Shape, bool) {
	return ResolveShapeAt(r.seq, frame, r.Easing)
}

// UpdateShape commits patch as the keyframe at frame.
func (r *Region) UpdateShape(patch Patch, frame int) bool {
	if r.ReadOnly {
		return false
	}
	return CommitShapeAt(r.seq, patch, frame)
}

// AddPoint appends pt to the shape at frame. On an empty timeline it
// starts a single-point keyframe.
func (r *Region) AddPoint(pt keyframe.Point, frame int) bool {
	shape, ok := r.GetShapeAtFrame(frame)
	if !ok {
		return r.UpdateShape(Patch{Points: []keyframe.Point{pt}, Rotation: Rotation(0)}, frame)
	}

	points := append(shape.Points, pt)
	return r.UpdateShape(Patch{Points: points, Rotation: Rotation(shape.Rotation)}, frame)
}

// RemovePoint drops the point at idx from the shape at frame. Nothing
// happens if there is no shape or idx is out of range.
func (r *Region) RemovePoint(idx int, frame int) bool {
	shape, ok := r.GetShapeAtFrame(frame)
	if !ok || idx < 0 || idx >= len(shape.Points) {
		return false
	}

	points := slices.Delete(shape.Points, idx, idx+1)
	return r.UpdateShape(Patch{Points: points, Rotation: Rotation(shape.Rotation)}, frame)
}

// InsertPoint splices pt into the shape at frame before idx. An index past
// the end appends, a negative one inserts at the start.
func (r *Region) InsertPoint(idx int, pt keyframe.Point, frame int) bool {
	shape, ok := r.GetShapeAtFrame(frame)
	if !ok {
		return false
	}

	idx = max(0, min(idx, len(shape.Points)))
	points := slices.Insert(shape.Points, idx, pt)
	return r.UpdateShape(Patch{Points: points, Rotation: Rotation(shape.Rotation)}, frame)
}
