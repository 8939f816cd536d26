package model

import "fmt"

// Segment is one media chunk of a playlist. Name is the original segment
// filename from the playlist, preserved verbatim: the merge step reconstructs
// ordering purely from manifest order plus filename match, so renaming a
// segment on disk would break concatenation.
type Segment struct {
	Name     string  // original filename, used as the local filename
	URI      string  // resolved absolute URI to fetch from
	Duration float64 // declared duration in seconds
}

// Manifest is the ordered segment list of one media playlist. The order is
// the source playlist order and is never reordered.
type Manifest struct {
	Segments      []Segment
	TotalDuration float64 // sum of declared segment durations, seconds
}

// NewManifest builds a manifest from an ordered segment slice
func NewManifest(segments []Segment) (*Manifest, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("manifest contains no segments")
	}

	total := 0.0
	for _, seg := range segments {
		total += seg.Duration
	}

	return &Manifest{
		Segments:      segments,
		TotalDuration: total,
	}, nil
}

// Count returns the number of segments
func (m *Manifest) Count() int {
	return len(m.Segments)
}
