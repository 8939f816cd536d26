package model

// JobState represents the lifecycle state of a download job
type JobState string

const (
	// JobStateIdle means the job has been created but not started
	JobStateIdle JobState = "idle"

	// JobStateDownloading means segment downloads are in progress
	JobStateDownloading JobState = "downloading"

	// JobStateMerging means all segments are present and the remux is running
	JobStateMerging JobState = "merging"

	// JobStateComplete means the job finished successfully
	JobStateComplete JobState = "complete"

	// JobStateError means the job failed
	JobStateError JobState = "error"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsActive returns true if the job is in a running state
func (js JobState) IsActive() bool {
	return js == JobStateDownloading || js == JobStateMerging
}

// IsTerminal returns true if the job is in a finished state (complete or error)
func (js JobState) IsTerminal() bool {
	return js == JobStateComplete || js == JobStateError
}

// ProgressStatus is the status field carried on progress updates. It is the
// vocabulary consumed by progress sinks, distinct from JobState: merging and
// cropping both report as "processing".
type ProgressStatus string

const (
	ProgressDownloading ProgressStatus = "downloading"
	ProgressProcessing  ProgressStatus = "processing"
	ProgressComplete    ProgressStatus = "complete"
	ProgressError       ProgressStatus = "error"
)

// String returns the string representation of ProgressStatus
func (ps ProgressStatus) String() string {
	return string(ps)
}
