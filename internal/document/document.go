package document

import (
	"fmt"

	"github.com/ivlev/keypoly/internal/keyframe"
	"github.com/ivlev/keypoly/internal/region"
)

// Document is an annotation of one video with any number of polygon regions
type Document struct {
	Version string         `yaml:"version" json:"version" cbor:"version"`
	Video   Video          `yaml:"video" json:"video" cbor:"video"`
	Control Control        `yaml:"control" json:"control" cbor:"control"`
	Regions []RegionRecord `yaml:"regions" json:"regions" cbor:"regions"`
}

// Video describes the annotated source
type Video struct {
	Name       string  `yaml:"name" json:"name" cbor:"name"`
	FPS        float64 `yaml:"fps" json:"fps" cbor:"fps"`
	FrameCount int     `yaml:"frame_count" json:"frame_count" cbor:"frame_count"`
}

// Control holds the VideoPolygon tag attributes. They only matter to the
// renderer and are carried through unchanged.
type Control struct {
	Name        string  `yaml:"name" json:"name" cbor:"name"`
	ToName      string  `yaml:"to_name" json:"to_name" cbor:"to_name"`
	Opacity     float64 `yaml:"opacity" json:"opacity" cbor:"opacity"`
	FillColor   string  `yaml:"fill_color" json:"fill_color" cbor:"fill_color"`
	StrokeColor string  `yaml:"stroke_color" json:"stroke_color" cbor:"stroke_color"`
	StrokeWidth float64 `yaml:"stroke_width" json:"stroke_width" cbor:"stroke_width"`
	PointSize   string  `yaml:"point_size" json:"point_size" cbor:"point_size"`
	PointStyle  string  `yaml:"point_style" json:"point_style" cbor:"point_style"`
}

// RegionRecord is the persisted form of a region
type RegionRecord struct {
	ID       string              `yaml:"id" json:"id" cbor:"id"`
	Type     string              `yaml:"type" json:"type" cbor:"type"`
	Closed   bool                `yaml:"closed" json:"closed" cbor:"closed"`
	Sequence []keyframe.Keyframe `yaml:"sequence" json:"sequence" cbor:"sequence"`
}

// DefaultControl returns the tag attributes used when a document does not
// specify them.
func DefaultControl() Control {
	return Control{
		Name:        region.KindVideoPolygon.Control(),
		ToName:      region.KindVideoPolygon.Source(),
		Opacity:     0.6,
		FillColor:   "#f48a42",
		StrokeColor: "#f48a42",
		StrokeWidth: 1,
		PointSize:   "small",
		PointStyle:  "circle",
	}
}

// New creates an empty document for the named video.
func New(video string, fps float64) *Document {
	return &Document{
		Version: "1.0",
		Video:   Video{Name: video, FPS: fps},
		Control: DefaultControl(),
	}
}

// Region materialises the region with the given id.
func (d *Document) Region(id string) (*region.Region, error) {
	for _, rec := range d.Regions {
		if rec.ID == id {
			return rec.Region()
		}
	}
	return nil, fmt.Errorf("region %q not found", id)
}

// AllRegions materialises every region in document order.
func (d *Document) AllRegions() ([]*region.Region, error) {
	out := make([]*region.Region, 0, len(d.Regions))
	for _, rec := range d.Regions {
		r, err := rec.Region()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Put stores r, replacing a record with the same id.
func (d *Document) Put(r *region.Region) {
	rec := Record(r)
	for i := range d.Regions {
		if d.Regions[i].ID == rec.ID {
			d.Regions[i] = rec
			return
		}
	}
	d.Regions = append(d.Regions, rec)
}

// Region builds a live region from the record.
func (rec RegionRecord) Region() (*region.Region, error) {
	kind, err := region.ParseKind(rec.Type)
	if err != nil {
		return nil, fmt.Errorf("region %q: %w", rec.ID, err)
	}
	r, err := region.New(kind, rec.ID, rec.Sequence...)
	if err != nil {
		return nil, err
	}
	r.Closed = rec.Closed
	return r, nil
}

// Record captures the persisted form of r.
func Record(r *region.Region) RegionRecord {
	return RegionRecord{
		ID:       r.ID,
		Type:     r.Kind.String(),
		Closed:   r.Closed,
		Sequence: r.Keyframes(),
	}
}
