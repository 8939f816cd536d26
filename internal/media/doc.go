package media

// Package media is the boundary to the external encoder: stream-copy
// merging of downloaded segments, metadata probes, and the two-output
// crop/trim pipeline. Every operation shells out to ffmpeg/ffprobe with
// explicitly built argument lists; nothing here re-implements codec work.
