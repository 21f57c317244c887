package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOutputPath(t *testing.T) {
	path := OutputPath("output", "input/my clip.yaml", "track", "yaml")

	if filepath.Dir(path) != "output" {
		t.Errorf("Expected output dir, got %s", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "my_clip_track_") || !strings.HasSuffix(path, ".yaml") {
		t.Errorf("Unexpected name: %s", path)
	}
	t.Logf("Generated path: %s", path)
}

func TestEnsureDirs(t *testing.T) {
	root := t.TempDir()
	dirs := []string{filepath.Join(root, "input"), filepath.Join(root, "output", "nested")}

	if err := EnsureDirs(dirs...); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	for _, d := range dirs {
		if fi, err := os.Stat(d); err != nil || !fi.IsDir() {
			t.Errorf("Directory %s was not created", d)
		}
	}
}

func TestReportAndLog(t *testing.T) {
	stats := RunStats{
		BuildVersion: "test",
		Command:      "export",
		Document:     "/tmp/doc.yaml",
		Regions:      2,
		Keyframes:    5,
		Samples:      40,
		Start:        time.Now().Add(-time.Second),
	}

	var buf bytes.Buffer
	Report(&buf, stats)
	for _, want := range []string{"PERFORMANCE REPORT", "Command: export", "Regions: 2 | Keyframes: 5 | Samples: 40", "Host Memory:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Report missing %q:\n%s", want, buf.String())
		}
	}

	logPath := filepath.Join(t.TempDir(), "benchmark.log")
	AppendLog(logPath, stats)
	if err := AppendLog(logPath, stats); err != nil {
		t.Fatalf("AppendLog failed: %v", err)
	}
	data, _ := os.ReadFile(logPath)
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Errorf("Expected 2 log lines, got %d", n)
	}
	if !strings.Contains(string(data), "Document: doc.yaml") {
		t.Errorf("Log line should name the document: %s", data)
	}
}
