package model

import "testing"

func TestNewManifest(t *testing.T) {
	segments := []Segment{
		{Name: "seg1.ts", URI: "http://example.com/seg1.ts", Duration: 2.0},
		{Name: "seg2.ts", URI: "http://example.com/seg2.ts", Duration: 2.0},
		{Name: "seg3.ts", URI: "http://example.com/seg3.ts", Duration: 1.5},
	}

	manifest, err := NewManifest(segments)
	if err != nil {
		t.Fatalf("NewManifest() returned error: %v", err)
	}

	if manifest.Count() != 3 {
		t.Errorf("Count() = %d, expected 3", manifest.Count())
	}

	if manifest.TotalDuration != 5.5 {
		t.Errorf("TotalDuration = %v, expected 5.5", manifest.TotalDuration)
	}

	// Order must be preserved from the source playlist
	for i, name := range []string{"seg1.ts", "seg2.ts", "seg3.ts"} {
		if manifest.Segments[i].Name != name {
			t.Errorf("Segments[%d].Name = %s, expected %s", i, manifest.Segments[i].Name, name)
		}
	}
}

func TestNewManifest_Empty(t *testing.T) {
	if _, err := NewManifest(nil); err == nil {
		t.Error("NewManifest(nil) expected error, got nil")
	}

	if _, err := NewManifest([]Segment{}); err == nil {
		t.Error("NewManifest(empty) expected error, got nil")
	}
}

func TestDownloadJob_Percent(t *testing.T) {
	job := &DownloadJob{ID: "job-1"}

	// No manifest yet
	if job.Percent() != 0 {
		t.Errorf("Percent() without manifest = %v, expected 0", job.Percent())
	}

	manifest, err := NewManifest([]Segment{
		{Name: "a.ts", Duration: 2},
		{Name: "b.ts", Duration: 2},
		{Name: "c.ts", Duration: 2},
		{Name: "d.ts", Duration: 2},
	})
	if err != nil {
		t.Fatalf("NewManifest() returned error: %v", err)
	}
	job.Manifest = manifest
	job.Completed = 3

	if job.Percent() != 75 {
		t.Errorf("Percent() = %v, expected 75", job.Percent())
	}
}
