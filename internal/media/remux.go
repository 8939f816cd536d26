package media

import (
	"context"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// FFmpeg constants
const (
	VideoCodec    = "libx264"
	AudioCodec    = "aac"
	ScreenPreset  = "slow"
	ScreenCRF     = "33"
	FastStartFlag = "+faststart"

	// AACBitstreamFilter fixes ADTS framing when copying AAC into MP4
	AACBitstreamFilter = "aac_adtstoasc"

	// ProtocolWhitelist lets ffmpeg read a local playlist whose segments
	// sit next to it on disk
	ProtocolWhitelist = "file,http,https,tcp,tls"
)

// Remuxer drives ffmpeg for the merge step
type Remuxer struct {
	ffmpegPath string
	log        *logrus.Logger
}

// NewRemuxer creates a remuxer using the given ffmpeg binary
func NewRemuxer(ffmpegPath string, log *logrus.Logger) *Remuxer {
	return &Remuxer{ffmpegPath: ffmpegPath, log: log}
}

// Merge stream-copies the playlist's segments into one MP4, without
// re-encoding
func (r *Remuxer) Merge(ctx context.Context, playlistPath, outputPath string) error {
	args := BuildMergeArgs(playlistPath, outputPath)

	cmd := exec.CommandContext(ctx, r.ffmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &RemuxError{
			Output: outputPath,
			Detail: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}

	r.log.WithField("output", outputPath).Info("MP4 conversion successful")
	return nil
}

// BuildMergeArgs builds the ffmpeg arguments for the stream-copy merge
func BuildMergeArgs(playlistPath, outputPath string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-protocol_whitelist", ProtocolWhitelist,
		"-i", playlistPath,
		"-c", "copy",
		"-bsf:a", AACBitstreamFilter,
		"-movflags", FastStartFlag,
		"-y", outputPath,
	}
}
