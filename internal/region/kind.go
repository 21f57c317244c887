package region

import (
	"errors"
	"fmt"

	"github.com/ivlev/keypoly/internal/keyframe"
)

// ErrUnknownKind is returned for region type names that have no
// implementation.
var ErrUnknownKind = errors.New("unknown region kind")

// Kind enumerates the supported region variants.
type Kind int

const (
	KindUnknown Kind = iota
	KindVideoPolygon
)

type kindInfo struct {
	name    string // persisted region type
	control string // control tag that produces it
	source  string // object tag it is attached to
	props   []string
}

var kinds = map[Kind]kindInfo{
	KindVideoPolygon: {
		name:    "videopolygonregion",
		control: "videopolygon",
		source:  "video",
		props:   []string{"points", "rotation"},
	},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Control returns the control tag name for the kind.
func (k Kind) Control() string {
	return kinds[k].control
}

// Source returns the object tag the kind annotates.
func (k Kind) Source() string {
	return kinds[k].source
}

// Props lists the keyframe properties that are interpolated for the kind.
func (k Kind) Props() []string {
	return append([]string(nil), kinds[k].props...)
}

// ParseKind resolves a region type or control tag name.
func ParseKind(name string) (Kind, error) {
	for k, info := range kinds {
		if name == info.name || name == info.control {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New creates an empty or preloaded region of the given kind.
func New(kind Kind, id string, kfs ...keyframe.Keyframe) (*Region, error) {
	switch kind {
	case KindVideoPolygon:
		return newRegion(kind, id, kfs), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}
