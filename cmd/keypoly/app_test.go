package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/keypoly/internal/config"
	"github.com/ivlev/keypoly/internal/document"
	"github.com/ivlev/keypoly/internal/keyframe"
)

func TestParsePoints(t *testing.T) {
	tests := []struct {
		in      string
		want    []keyframe.Point
		wantErr bool
	}{
		{"1,2;3,4", []keyframe.Point{{1, 2}, {3, 4}}, false},
		{" 1.5 , -2 ; ", []keyframe.Point{{1.5, -2}}, false},
		{";", []keyframe.Point{}, false},
		{"1;2", nil, true},
		{"a,b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoints(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parsePoints (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParsePatch(t *testing.T) {
	patch, err := parsePatch("", "45")
	if err != nil {
		t.Fatalf("parsePatch failed: %v", err)
	}
	if patch.Points != nil || patch.Rotation == nil || *patch.Rotation != 45 {
		t.Errorf("Unexpected patch: %+v", patch)
	}

	if _, err := parsePatch("", "abc"); err == nil {
		t.Error("Expected error for bad rotation")
	}
}

func newApp(t *testing.T, docPath string, params config.EditParams) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.Default()
	cfg.DocumentPath = docPath
	cfg.OutputDir = t.TempDir()
	var out bytes.Buffer
	return &App{Config: &cfg, Params: params, Video: "clip.mp4", FPS: 25, Out: &out}, &out
}

func TestEditWorkflow(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "clip.yaml")

	app, _ := newApp(t, docPath, config.EditParams{})
	if err := app.Run("new"); err != nil {
		t.Fatalf("new failed: %v", err)
	}

	steps := []struct {
		command string
		params  config.EditParams
	}{
		{"set", config.EditParams{RegionID: "car", Frame: 0, Points: "0,0;10,0;10,10", Rotation: "0"}},
		{"set", config.EditParams{RegionID: "car", Frame: 20, Points: "20,0;30,0;30,10", Rotation: "90"}},
		{"insert-point", config.EditParams{RegionID: "car", Frame: 20, Index: 1, X: 25, Y: -5}},
		{"remove-point", config.EditParams{RegionID: "car", Frame: 20, Index: 1}},
		{"add-point", config.EditParams{RegionID: "person", Frame: 5, X: 1, Y: 1}},
	}
	for _, step := range steps {
		app, _ := newApp(t, docPath, step.params)
		if err := app.Run(step.command); err != nil {
			t.Fatalf("%s failed: %v", step.command, err)
		}
	}

	doc, err := document.Read(docPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(doc.Regions) != 2 {
		t.Fatalf("Expected 2 regions, got %d", len(doc.Regions))
	}

	app, out := newApp(t, docPath, config.EditParams{RegionID: "car", Frame: 10})
	if err := app.Run("show"); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out.String(), "Поворот: 45") || !strings.Contains(out.String(), "[0] 10, 0") {
		t.Errorf("Unexpected show output:\n%s", out.String())
	}

	app, out = newApp(t, docPath, config.EditParams{})
	if err := app.Run("validate"); err != nil {
		t.Errorf("validate failed: %v\n%s", err, out.String())
	}
}

func TestNoOpEditLeavesFile(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "clip.json")
	app, _ := newApp(t, docPath, config.EditParams{})
	app.Run("new")
	before, _ := os.ReadFile(docPath)

	app, out := newApp(t, docPath, config.EditParams{RegionID: "ghost", Frame: 3})
	if err := app.Run("remove-point"); err == nil {
		t.Error("Expected error for missing region")
	}

	app, out = newApp(t, docPath, config.EditParams{RegionID: "car", Frame: 3, Points: "1,1"})
	app.Run("set")
	app, out = newApp(t, docPath, config.EditParams{RegionID: "car", Frame: 1, Index: 0, X: 5, Y: 5})
	before, _ = os.ReadFile(docPath)
	if err := app.Run("insert-point"); err != nil {
		t.Fatalf("insert-point failed: %v", err)
	}
	after, _ := os.ReadFile(docPath)

	if !bytes.Equal(before, after) {
		t.Error("Insert before the first keyframe must not touch the document")
	}
	if !strings.Contains(out.String(), "Без изменений") {
		t.Errorf("Expected no-op message, got:\n%s", out.String())
	}
}

func TestExportAndConvert(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "clip.yaml")

	doc := document.New("clip.mp4", 25)
	doc.Video.FrameCount = 10
	doc.Regions = []document.RegionRecord{{
		ID: "a", Type: "videopolygonregion", Closed: true,
		Sequence: []keyframe.Keyframe{{Frame: 2, Points: []keyframe.Point{{0, 0}}, Enabled: true}},
	}}
	if err := document.Write(doc, docPath); err != nil {
		t.Fatal(err)
	}

	app, out := newApp(t, docPath, config.EditParams{})
	if err := app.Run("export"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if app.Stats.Samples != 8 {
		t.Errorf("Expected 8 samples for frames 2..9, got %d", app.Stats.Samples)
	}
	t.Log(out.String())

	cborPath := filepath.Join(dir, "clip.cbor")
	app, _ = newApp(t, docPath, config.EditParams{})
	app.Config.OutputPath = cborPath
	if err := app.Run("convert"); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	got, err := document.Read(cborPath)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("Converted document mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateReportsUnsortedRecords(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "clip.yaml")

	doc := document.New("clip.mp4", 25)
	doc.Regions = []document.RegionRecord{{
		ID: "a", Type: "videopolygonregion",
		Sequence: []keyframe.Keyframe{
			{Frame: 10, Points: []keyframe.Point{{0, 0}}},
			{Frame: 5, Points: []keyframe.Point{{0, 0}}},
		},
	}}
	document.Write(doc, docPath)

	app, _ := newApp(t, docPath, config.EditParams{})
	if err := app.Run("validate"); err == nil {
		t.Error("Expected validation error")
	}
}

func TestExportRangeEndingAtFrameZero(t *testing.T) {
	docPath := filepath.Join(t.TempDir(), "clip.yaml")

	doc := document.New("clip.mp4", 25)
	doc.Video.FrameCount = 10
	doc.Regions = []document.RegionRecord{{
		ID: "a", Type: "videopolygonregion", Closed: true,
		Sequence: []keyframe.Keyframe{{Frame: -3, Points: []keyframe.Point{{0, 0}}, Enabled: true}},
	}}
	if err := document.Write(doc, docPath); err != nil {
		t.Fatal(err)
	}

	app, _ := newApp(t, docPath, config.EditParams{})
	app.From = -5
	to := 0
	app.To = &to
	if err := app.Run("export"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if app.Stats.Samples != 4 {
		t.Errorf("Expected 4 samples for frames -3..0, got %d", app.Stats.Samples)
	}
}
