package model

import "time"

// DownloadJob represents a single in-flight download. The job owns its
// scratch directory exclusively; it is removed when the job ends regardless
// of outcome.
type DownloadJob struct {
	ID          string
	PlaylistURL string
	Filename    string    // caller-supplied output filename
	ScratchDir  string    // {base}/temp/{id}
	OutputPath  string    // {base}/uploads/{filename}
	State       JobState
	Manifest    *Manifest // set once the playlist has been resolved
	Completed   int       // segments fetched successfully so far
	Workers     int       // current worker count
	LastError   string    // last error message if any
	StartedAt   time.Time
	FinishedAt  time.Time
}

// TotalSegments returns the manifest segment count, or 0 before resolution
func (j *DownloadJob) TotalSegments() int {
	if j.Manifest == nil {
		return 0
	}
	return j.Manifest.Count()
}

// Percent returns completion as 0-100 based on fetched segments
func (j *DownloadJob) Percent() float64 {
	total := j.TotalSegments()
	if total == 0 {
		return 0
	}
	return float64(j.Completed) / float64(total) * 100
}
