package keyframe

import (
	"iter"
	"slices"
	"sort"
)

// Sequence is the ordered, frame-unique keyframe timeline of one region.
//
// Keyframes are kept strictly ascending by Frame. Writing a keyframe at a
// frame that already exists replaces that record in place. A Sequence is
// not safe for concurrent use; callers serialize access per region.
type Sequence struct {
	items   []Keyframe
	version uint64
}

// NewSequence builds a sequence from keyframes in any order. When two
// keyframes share a frame the later one wins.
func NewSequence(kfs ...Keyframe) *Sequence {
	s := &Sequence{}
	for _, kf := range kfs {
		s.Put(kf)
	}
	s.version = 0
	return s
}

// Len returns the number of keyframes.
func (s *Sequence) Len() int {
	return len(s.items)
}

// At returns a copy of the keyframe at index i.
func (s *Sequence) At(i int) Keyframe {
	return s.items[i].Clone()
}

// Version is incremented on every write that changed the sequence.
func (s *Sequence) Version() uint64 {
	return s.version
}

// Search returns the index of the first keyframe whose frame is >= frame,
// or Len() if there is none.
func (s *Sequence) Search(frame int) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.items[i].Frame >= frame
	})
}

// Get returns the keyframe pinned exactly at frame.
func (s *Sequence) Get(frame int) (Keyframe, bool) {
	i := s.Search(frame)
	if i < len(s.items) && s.items[i].Frame == frame {
		return s.items[i].Clone(), true
	}
	return Keyframe{}, false
}

// Bounds locates the keyframes around frame. prev is the index of the last
// keyframe with Frame <= frame and next the index of the first keyframe with
// Frame > frame; either is -1 when absent.
func (s *Sequence) Bounds(frame int) (prev, next int) {
	i := s.Search(frame)
	if i < len(s.items) && s.items[i].Frame == frame {
		i++
	}
	prev, next = i-1, i
	if next >= len(s.items) {
		next = -1
	}
	return prev, next
}

// Closest returns the nearest keyframe at or before frame.
func (s *Sequence) Closest(frame int) (Keyframe, bool) {
	prev, _ := s.Bounds(frame)
	if prev < 0 {
		return Keyframe{}, false
	}
	return s.items[prev].Clone(), true
}

// Put stores kf, replacing an existing keyframe at the same frame or
// inserting it at its sorted position. It reports whether the sequence
// changed. The updated timeline is swapped in as a whole.
func (s *Sequence) Put(kf Keyframe) bool {
	kf = kf.Clone()
	i := s.Search(kf.Frame)

	var next []Keyframe
	if i < len(s.items) && s.items[i].Frame == kf.Frame {
		if s.items[i].Equal(kf) {
			return false
		}
		next = slices.Clone(s.items)
		next[i] = kf
	} else {
		next = slices.Insert(slices.Clone(s.items), i, kf)
	}

	s.items = next
	s.version++
	return true
}

// All iterates keyframes in ascending frame order.
func (s *Sequence) All() iter.Seq2[int, Keyframe] {
	return func(yield func(int, Keyframe) bool) {
		for i, kf := range s.items {
			if !yield(i, kf.Clone()) {
				return
			}
		}
	}
}

// Keyframes returns a copy of the whole timeline, suitable for persisting.
func (s *Sequence) Keyframes() []Keyframe {
	out := make([]Keyframe, len(s.items))
	for i, kf := range s.items {
		out[i] = kf.Clone()
	}
	return out
}

// Mismatch describes two adjacent keyframes whose vertex counts differ and
// therefore cannot be interpolated.
type Mismatch struct {
	From, To       int
	FromLen, ToLen int
}

// Mismatches lists every adjacent pair with differing vertex counts.
func (s *Sequence) Mismatches() []Mismatch {
	var out []Mismatch
	for i := 1; i < len(s.items); i++ {
		a, b := s.items[i-1], s.items[i]
		if len(a.Points) != len(b.Points) {
			out = append(out, Mismatch{
				From: a.Frame, To: b.Frame,
				FromLen: len(a.Points), ToLen: len(b.Points),
			})
		}
	}
	return out
}
