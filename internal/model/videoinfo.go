package model

// VideoInfo holds read-only facts about a media file's first video stream,
// obtained on demand via ffprobe and never cached.
type VideoInfo struct {
	Codec       string
	Width       int
	Height      int
	FPS         float64
	BitrateKbps float64
}
