package download

// Package download implements the adaptive parallel segment-download engine:
// an HTTP segment fetcher, the worker-pool sizing policy, and the
// orchestrator that drives a job from playlist resolution through merge with
// all-or-nothing completion semantics. Pool state is single-writer: only the
// per-job control goroutine mutates the queue and worker count, while
// individual fetches run in parallel and write disjoint files.
