package platform

// Package platform provides OS-facing helpers: the on-disk directory layout
// for jobs and outputs, and host load sampling via gopsutil. Nothing here
// knows about playlists or jobs beyond their directory names.
