package download

import (
	"context"

	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
	"github.com/saurabh-krishan/mp4-video-processor/internal/platform"
)

// Resolver turns a playlist URL into a segment manifest plus the raw media
// playlist bytes to be saved into the job's scratch directory.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*model.Manifest, []byte, error)
}

// Fetcher downloads one segment to a local path. The boolean reports
// per-segment success: network, timeout and HTTP-status failures return
// false with a nil error and are merely counted by the orchestrator. A
// non-nil error is unrecoverable and aborts the whole job.
type Fetcher interface {
	Fetch(ctx context.Context, uri, destPath string) (bool, error)
}

// LoadMonitor exposes host utilization to the worker-pool policy
type LoadMonitor interface {
	Sample() (platform.LoadSample, error)
	Resources() (cpuCount int, availableBytes uint64, err error)
}

// Merger assembles downloaded segments into the final container from the
// locally saved playlist
type Merger interface {
	Merge(ctx context.Context, playlistPath, outputPath string) error
}

// ProgressSink receives job progress updates. Calls are fire-and-forget:
// the engine never blocks on a sink and only the latest snapshot per job
// matters.
type ProgressSink interface {
	UpdateProgress(jobID string, snapshot model.ProgressSnapshot)
}
