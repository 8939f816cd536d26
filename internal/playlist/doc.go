package playlist

// Package playlist resolves a playlist URL to an ordered segment manifest,
// including master-playlist variant selection by maximum declared bandwidth.
// Resolution failures are fatal to the job; there is no retry here.
