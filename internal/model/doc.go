package model

// Package model defines domain data structures used across the app: segment
// manifests, download jobs, progress snapshots, crop geometry, and status
// enums. Structures are designed for explicit state transitions and carry no
// behavior beyond derived accessors.
