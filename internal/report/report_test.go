package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "video.mp4")
	if err := os.WriteFile(outputPath, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatalf("failed to write output file: %v", err)
	}

	summary := Generate(5, 10*time.Second, 512*1024, outputPath)

	for _, want := range []string{
		"Download Complete!",
		"Total Segments: 5",
		"Time Taken: 00:00:10",
		"File Size: 2.00 MB",
		"Average Speed: 512.0 KB/s",
		"0.5 segments/s",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("report missing %q:\n%s", want, summary)
		}
	}
}

func TestGenerate_MissingOutputFile(t *testing.T) {
	summary := Generate(3, 5*time.Second, 0, filepath.Join(t.TempDir(), "absent.mp4"))

	if !strings.Contains(summary, "File Size: 0.00 MB") {
		t.Errorf("report should treat a missing file as size 0:\n%s", summary)
	}
	if !strings.Contains(summary, "Total Segments: 3") {
		t.Errorf("report missing segment count:\n%s", summary)
	}
}
