package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saurabh-krishan/mp4-video-processor/internal/config"
	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
	"github.com/saurabh-krishan/mp4-video-processor/internal/platform"
	"github.com/saurabh-krishan/mp4-video-processor/internal/playlist"
	"github.com/saurabh-krishan/mp4-video-processor/internal/report"
)

const (
	// SegmentSuffix identifies downloaded segment files for byte accounting
	SegmentSuffix = ".ts"

	// MergeProgressPercent is reported while the remux runs
	MergeProgressPercent = 95
)

// IncompleteError is returned when the queue drains without every segment
// downloaded. The job is all-or-nothing: a partial segment set never reaches
// the merge step.
type IncompleteError struct {
	Completed int
	Total     int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("download incomplete: %d/%d segments", e.Completed, e.Total)
}

// fetchResult is one worker's report back to the control loop
type fetchResult struct {
	ok  bool
	err error
}

// Service drives segmented video downloads: it resolves the playlist,
// fetches all segments through an adaptive worker pool, and merges them into
// the final output file. All pool state (queue, in-flight count, worker
// count) is owned by a single control goroutine per job.
type Service struct {
	cfg      *config.Config
	resolver Resolver
	fetcher  Fetcher
	monitor  LoadMonitor
	merger   Merger
	sink     ProgressSink
	log      *logrus.Logger

	jobs      map[string]*model.DownloadJob
	jobsMutex sync.RWMutex
}

// NewService creates a download service with the given collaborators
func NewService(cfg *config.Config, resolver Resolver, fetcher Fetcher, monitor LoadMonitor, merger Merger, sink ProgressSink, log *logrus.Logger) *Service {
	return &Service{
		cfg:      cfg,
		resolver: resolver,
		fetcher:  fetcher,
		monitor:  monitor,
		merger:   merger,
		sink:     sink,
		log:      log,
		jobs:     make(map[string]*model.DownloadJob),
	}
}

// GetJob returns a job by ID
func (s *Service) GetJob(id string) (*model.DownloadJob, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[id]
	return job, exists
}

// Download runs one complete job: resolve, fetch all segments, merge, and
// report. It returns the output filename on success. On any failure the
// partial output file is removed; the scratch directory is removed
// unconditionally on exit.
func (s *Service) Download(ctx context.Context, playlistURL, filename, jobID string) (string, error) {
	job := &model.DownloadJob{
		ID:          jobID,
		PlaylistURL: playlistURL,
		Filename:    filename,
		ScratchDir:  platform.ScratchDir(s.cfg.BaseDir, jobID),
		OutputPath:  platform.UploadPath(s.cfg.BaseDir, filename),
		State:       model.JobStateIdle,
		StartedAt:   time.Now(),
	}

	s.jobsMutex.Lock()
	if existing, ok := s.jobs[jobID]; ok && !existing.State.IsTerminal() {
		s.jobsMutex.Unlock()
		state := "registered"
		if existing.State.IsActive() {
			state = "running"
		}
		return "", fmt.Errorf("job %s is already %s", jobID, state)
	}
	s.jobs[jobID] = job
	s.jobsMutex.Unlock()

	defer func() {
		if err := platform.RemoveScratch(job.ScratchDir); err != nil {
			s.log.WithError(err).Warn("failed to remove scratch directory")
		}
		s.jobsMutex.Lock()
		job.FinishedAt = time.Now()
		s.jobsMutex.Unlock()
	}()

	if err := s.run(ctx, job); err != nil {
		s.setState(job, model.JobStateError)
		s.jobsMutex.Lock()
		job.LastError = err.Error()
		s.jobsMutex.Unlock()

		// Never leave a partial output behind
		os.Remove(job.OutputPath)

		s.log.WithError(err).WithField("job", jobID).Error("download failed")
		s.sink.UpdateProgress(jobID, model.ProgressSnapshot{
			Status:  model.ProgressError,
			Message: fmt.Sprintf("Error: %v", err),
		})
		return "", err
	}

	return job.Filename, nil
}

func (s *Service) run(ctx context.Context, job *model.DownloadJob) error {
	if err := platform.CreateDirectoryIfNotExists(job.ScratchDir); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(job.OutputPath)); err != nil {
		return fmt.Errorf("create uploads dir: %w", err)
	}

	s.log.WithField("job", job.ID).Info("downloading playlist")
	manifest, rawPlaylist, err := s.resolver.Resolve(ctx, job.PlaylistURL)
	if err != nil {
		return err
	}

	localPlaylist := filepath.Join(job.ScratchDir, playlist.LocalFilename)
	if err := os.WriteFile(localPlaylist, rawPlaylist, 0644); err != nil {
		return fmt.Errorf("save playlist: %w", err)
	}

	s.jobsMutex.Lock()
	job.Manifest = manifest
	s.jobsMutex.Unlock()

	s.log.WithFields(logrus.Fields{
		"job":      job.ID,
		"segments": manifest.Count(),
		"duration": model.FormatClock(int(manifest.TotalDuration)),
	}).Info("playlist resolved")

	s.setState(job, model.JobStateDownloading)
	finalSpeed, err := s.downloadSegments(ctx, job)
	if err != nil {
		return err
	}

	s.setState(job, model.JobStateMerging)
	s.sink.UpdateProgress(job.ID, model.ProgressSnapshot{
		Status:   model.ProgressProcessing,
		Progress: MergeProgressPercent,
		Message:  "Merging segments...",
	})

	if err := s.merger.Merge(ctx, localPlaylist, job.OutputPath); err != nil {
		return err
	}

	s.setState(job, model.JobStateComplete)

	elapsed := time.Since(job.StartedAt)
	summary := report.Generate(manifest.Count(), elapsed, finalSpeed, job.OutputPath)
	s.log.Info("\n" + summary)

	s.sink.UpdateProgress(job.ID, model.ProgressSnapshot{
		Status:   model.ProgressComplete,
		Progress: 100,
		Elapsed:  model.FormatClock(int(elapsed.Seconds())),
		Speed:    model.FormatSpeed(finalSpeed),
		Message:  summary,
	})

	return nil
}

// downloadSegments is the control loop. It owns the pending queue, the
// in-flight count and the worker count; fetches run in parallel goroutines
// and report back over a channel, so no fetch ever blocks the loop. When the
// pool shrinks, in-flight fetches run to completion under the old capacity;
// only new dispatches observe the new count. It returns the average
// throughput in bytes per second for the final report.
func (s *Service) downloadSegments(ctx context.Context, job *model.DownloadJob) (float64, error) {
	total := job.Manifest.Count()
	pending := make([]model.Segment, total)
	copy(pending, job.Manifest.Segments)

	workers := s.initialWorkers()
	s.setWorkers(job, workers)
	s.log.WithFields(logrus.Fields{"job": job.ID, "workers": workers}).Info("starting segment downloads")

	// Buffered so aborted workers never block on a send nobody receives
	results := make(chan fetchResult, total)

	progressTicker := time.NewTicker(s.cfg.ProgressInterval)
	defer progressTicker.Stop()
	retargetTicker := time.NewTicker(s.cfg.RetargetInterval)
	defer retargetTicker.Stop()

	var fatal error
	inflight := 0
	completed := 0
	done := ctx.Done()
	start := job.StartedAt

	for inflight > 0 || (len(pending) > 0 && fatal == nil) {
		for fatal == nil && len(pending) > 0 && inflight < workers {
			seg := pending[0]
			pending = pending[1:]
			inflight++

			go func(seg model.Segment) {
				ok, err := s.fetcher.Fetch(ctx, seg.URI, filepath.Join(job.ScratchDir, seg.Name))
				results <- fetchResult{ok: ok, err: err}
			}(seg)
		}

		select {
		case res := <-results:
			inflight--
			if fatal != nil {
				// Results of fetches in flight at abort time are discarded
				continue
			}
			if res.err != nil {
				fatal = res.err
				pending = nil
				continue
			}
			if res.ok {
				completed++
				s.setCompleted(job, completed)
			}

		case <-retargetTicker.C:
			sample, err := s.monitor.Sample()
			if err != nil {
				s.log.WithError(err).Debug("load sample failed, keeping worker count")
				continue
			}
			if next := Retarget(workers, sample.CPUPercent, sample.MemPercent); next != workers {
				s.log.WithFields(logrus.Fields{
					"job":  job.ID,
					"from": workers,
					"to":   next,
					"cpu":  fmt.Sprintf("%.1f%%", sample.CPUPercent),
					"mem":  fmt.Sprintf("%.1f%%", sample.MemPercent),
				}).Info("retargeting worker pool")
				workers = next
				s.setWorkers(job, workers)
			}

		case <-progressTicker.C:
			s.emitDownloadProgress(job, workers, time.Since(start))

		case <-done:
			fatal = ctx.Err()
			pending = nil
			done = nil
		}
	}

	elapsed := time.Since(start)
	speed := 0.0
	if elapsed.Seconds() > 0 {
		speed = float64(platform.DirSizeBySuffix(job.ScratchDir, SegmentSuffix)) / elapsed.Seconds()
	}

	if fatal != nil {
		return speed, fatal
	}
	if completed < total {
		return speed, &IncompleteError{Completed: completed, Total: total}
	}
	return speed, nil
}

func (s *Service) emitDownloadProgress(job *model.DownloadJob, workers int, elapsed time.Duration) {
	s.jobsMutex.RLock()
	completed := job.Completed
	total := job.TotalSegments()
	progress := job.Percent()
	s.jobsMutex.RUnlock()

	bytes := platform.DirSizeBySuffix(job.ScratchDir, SegmentSuffix)
	speed := 0.0
	if elapsed.Seconds() > 0 {
		speed = float64(bytes) / elapsed.Seconds()
	}

	remaining := 0.0
	if completed > 0 {
		remaining = elapsed.Seconds() / float64(completed) * float64(total-completed)
	}

	message := fmt.Sprintf("Segments: %d/%d | Workers: %d", completed, total, workers)
	if sample, err := s.monitor.Sample(); err == nil {
		message = fmt.Sprintf("%s | CPU: %.1f%% | RAM: %.1f%%", message, sample.CPUPercent, sample.MemPercent)
	}

	s.sink.UpdateProgress(job.ID, model.ProgressSnapshot{
		Status:    model.ProgressDownloading,
		Progress:  progress,
		Elapsed:   model.FormatClock(int(elapsed.Seconds())),
		Remaining: model.FormatClock(int(remaining)),
		Speed:     model.FormatSpeed(speed),
		Message:   message,
	})
}

func (s *Service) initialWorkers() int {
	cpus, available, err := s.monitor.Resources()
	if err != nil {
		s.log.WithError(err).Warn("system resources unavailable, using fallback worker count")
		return FallbackWorkers
	}
	return InitialWorkers(cpus, available)
}

func (s *Service) setState(job *model.DownloadJob, state model.JobState) {
	s.jobsMutex.Lock()
	job.State = state
	s.jobsMutex.Unlock()
}

func (s *Service) setCompleted(job *model.DownloadJob, completed int) {
	s.jobsMutex.Lock()
	job.Completed = completed
	s.jobsMutex.Unlock()
}

func (s *Service) setWorkers(job *model.DownloadJob, workers int) {
	s.jobsMutex.Lock()
	job.Workers = workers
	s.jobsMutex.Unlock()
}
