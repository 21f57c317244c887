package export

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/keypoly/internal/document"
	"github.com/ivlev/keypoly/internal/interp"
	"github.com/ivlev/keypoly/internal/region"
)

// Sample is the resolved shape of one region at one frame
type Sample struct {
	Region string       `yaml:"region"`
	Frame  int          `yaml:"frame"`
	Shape  region.Shape `yaml:",inline"`
}

// Track resolves every region of doc at every frame in [from, to]. Frames
// before a region's first keyframe are skipped. Regions are resolved in
// parallel, each by a single goroutine; the result keeps document order.
func Track(ctx context.Context, doc *document.Document, from, to, workers int, ease interp.Easing) ([]Sample, error) {
	if to < from {
		return nil, fmt.Errorf("invalid frame range %d..%d", from, to)
	}

	regions, err := doc.AllRegions()
	if err != nil {
		return nil, err
	}

	perRegion := make([][]Sample, len(regions))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, r := range regions {
		r.Easing = ease
		g.Go(func() error {
			var samples []Sample
			for frame := from; frame <= to; frame++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				shape, ok := r.GetShapeAtFrame(frame)
				if !ok {
					continue
				}
				samples = append(samples, Sample{Region: r.ID, Frame: frame, Shape: shape})
			}
			perRegion[i] = samples
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Sample
	for _, samples := range perRegion {
		out = append(out, samples...)
	}
	return out, nil
}

// WriteTrack writes samples to a YAML file
func WriteTrack(samples []Sample, path string) error {
	data, err := yaml.Marshal(samples)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
