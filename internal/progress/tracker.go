// Package progress implements the reporter capability consumed by the
// download and media services. Sinks are fire-and-forget: callers never
// block and only the latest snapshot per job id is retained.
package progress

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
)

// Tracker keeps the last-known snapshot per job id
type Tracker struct {
	mutex     sync.RWMutex
	snapshots map[string]model.ProgressSnapshot
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		snapshots: make(map[string]model.ProgressSnapshot),
	}
}

// UpdateProgress records the latest snapshot for a job
func (t *Tracker) UpdateProgress(jobID string, snapshot model.ProgressSnapshot) {
	t.mutex.Lock()
	t.snapshots[jobID] = snapshot
	t.mutex.Unlock()
}

// Latest returns the last-known snapshot for a job
func (t *Tracker) Latest(jobID string) (model.ProgressSnapshot, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	snapshot, exists := t.snapshots[jobID]
	return snapshot, exists
}

// LogSink forwards snapshots to a logger
type LogSink struct {
	log *logrus.Logger
}

// NewLogSink creates a sink that logs each snapshot
func NewLogSink(log *logrus.Logger) *LogSink {
	return &LogSink{log: log}
}

// UpdateProgress logs the snapshot at a level matching its status
func (s *LogSink) UpdateProgress(jobID string, snapshot model.ProgressSnapshot) {
	entry := s.log.WithFields(logrus.Fields{
		"job":      jobID,
		"status":   snapshot.Status,
		"progress": snapshot.Progress,
	})

	if snapshot.Status == model.ProgressError {
		entry.Error(snapshot.Message)
		return
	}
	entry.Info(snapshot.Message)
}

// MultiSink fans one update out to several sinks
type MultiSink []interface {
	UpdateProgress(jobID string, snapshot model.ProgressSnapshot)
}

// UpdateProgress forwards the snapshot to every sink in order
func (m MultiSink) UpdateProgress(jobID string, snapshot model.ProgressSnapshot) {
	for _, sink := range m {
		sink.UpdateProgress(jobID, snapshot)
	}
}
