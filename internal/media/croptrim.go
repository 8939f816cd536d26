package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saurabh-krishan/mp4-video-processor/internal/config"
	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
)

// Region names used in errors, logs and progress messages
const (
	RegionScreen = "screen"
	RegionWebcam = "webcam"
)

// TimeRange is a trim window in ffmpeg time syntax (HH:MM:SS or seconds)
type TimeRange struct {
	Start string
	End   string
}

// ProgressSink receives editing progress updates
type ProgressSink interface {
	UpdateProgress(jobID string, snapshot model.ProgressSnapshot)
}

// Editor trims and crops a recording into separate screen and webcam
// outputs
type Editor struct {
	cfg    *config.Config
	prober *Prober
	sink   ProgressSink
	log    *logrus.Logger
}

// NewEditor creates an editor using the configured encoder binaries
func NewEditor(cfg *config.Config, prober *Prober, sink ProgressSink, log *logrus.Logger) *Editor {
	return &Editor{cfg: cfg, prober: prober, sink: sink, log: log}
}

// CropTrim cuts the window out of inputPath twice: once per crop region.
// The screen output keeps audio re-encoded to AAC; the webcam output has no
// audio track. Frame rate and bitrate are capped only when the source
// exceeds the configured limits. Failure of either encode removes any
// already-produced output before the error propagates.
func (e *Editor) CropTrim(ctx context.Context, inputPath string, window TimeRange, regions model.CropRegions, screenOutput, webcamOutput, jobID string) ([]string, error) {
	outputs, err := e.cropTrim(ctx, inputPath, window, regions, screenOutput, webcamOutput, jobID)
	if err != nil {
		for _, path := range outputs {
			os.Remove(path)
		}
		e.log.WithError(err).Error("video processing failed")
		e.sink.UpdateProgress(jobID, model.ProgressSnapshot{
			Status:  model.ProgressError,
			Message: fmt.Sprintf("Error: %v", err),
		})
		return nil, err
	}
	return outputs, nil
}

// cropTrim returns the outputs produced so far together with the error, so
// the caller can delete partial results.
func (e *Editor) cropTrim(ctx context.Context, inputPath string, window TimeRange, regions model.CropRegions, screenOutput, webcamOutput, jobID string) ([]string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, &CropError{Region: RegionScreen, Err: fmt.Errorf("input file not found: %s", inputPath)}
	}
	if err := regions.Validate(); err != nil {
		return nil, &CropError{Region: RegionScreen, Err: err}
	}

	info, err := e.prober.Probe(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"range":   fmt.Sprintf("%s to %s", window.Start, window.End),
		"codec":   info.Codec,
		"fps":     info.FPS,
		"bitrate": info.BitrateKbps,
	}).Info("starting video processing")

	var outputs []string

	if err := e.encodeRegion(ctx, inputPath, screenOutput, window, regions.Screen, info, true, e.cfg.ScreenBitrateKbps); err != nil {
		return outputs, err
	}
	outputs = append(outputs, screenOutput)
	e.verifyBitrate(ctx, RegionScreen, screenOutput, e.cfg.ScreenBitrateKbps)

	e.sink.UpdateProgress(jobID, model.ProgressSnapshot{
		Status:   model.ProgressProcessing,
		Progress: 50,
		Message:  "Processing webcam video...",
	})

	if err := e.encodeRegion(ctx, inputPath, webcamOutput, window, regions.Webcam, info, false, e.cfg.WebcamBitrateKbps); err != nil {
		return outputs, err
	}
	outputs = append(outputs, webcamOutput)
	e.verifyBitrate(ctx, RegionWebcam, webcamOutput, e.cfg.WebcamBitrateKbps)

	e.sink.UpdateProgress(jobID, model.ProgressSnapshot{
		Status:   model.ProgressComplete,
		Progress: 100,
		Message:  "Processing complete",
	})

	return outputs, nil
}

func (e *Editor) encodeRegion(ctx context.Context, inputPath, outputPath string, window TimeRange, rect model.CropRect, info model.VideoInfo, withAudio bool, bitrateCapKbps int) error {
	filter := CropFilter(rect, info.FPS, e.cfg.MaxFrameRate)

	// Cap the bitrate only when the source exceeds the target
	bitrateCap := 0
	if info.BitrateKbps > float64(bitrateCapKbps) {
		bitrateCap = bitrateCapKbps
	}

	region := RegionWebcam
	if withAudio {
		region = RegionScreen
	}

	args := BuildCropArgs(inputPath, outputPath, window, filter, bitrateCap, withAudio)
	e.log.WithFields(logrus.Fields{"region": region, "output": outputPath}).Info("encoding region")

	cmd := exec.CommandContext(ctx, e.cfg.FFmpegPath, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return &CropError{
			Region: region,
			Detail: strings.TrimSpace(string(output)),
			Err:    err,
		}
	}
	return nil
}

// verifyBitrate warns when the encoded output still exceeds the cap.
// CRF-based encoding does not guarantee a bitrate ceiling, so this is
// informational only.
func (e *Editor) verifyBitrate(ctx context.Context, region, outputPath string, capKbps int) {
	bitrate := e.prober.BitrateKbps(ctx, outputPath)
	entry := e.log.WithFields(logrus.Fields{"region": region, "bitrate": fmt.Sprintf("%.1f Kbps", bitrate)})
	if bitrate > float64(capKbps) {
		entry.Warnf("encoded bitrate exceeds the %d Kbps target", capKbps)
		return
	}
	entry.Info("region processed successfully")
}

// CropFilter builds the video filter chain for a region, appending an fps
// cap when the source frame rate exceeds maxFPS
func CropFilter(region model.CropRect, sourceFPS, maxFPS float64) string {
	filters := []string{region.Filter()}
	if sourceFPS > maxFPS {
		filters = append(filters, fmt.Sprintf("fps=%d", int(maxFPS)))
	}
	return strings.Join(filters, ",")
}

// BuildCropArgs builds the ffmpeg arguments for one region encode. A
// bitrateCapKbps of 0 means no cap; withAudio selects AAC audio for the
// screen output versus no audio track for the webcam output.
func BuildCropArgs(inputPath, outputPath string, window TimeRange, filter string, bitrateCapKbps int, withAudio bool) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-ss", window.Start,
		"-to", window.End,
		"-filter:v", filter,
	}

	if bitrateCapKbps > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrateCapKbps))
	}

	args = append(args, "-c:v", VideoCodec)

	if withAudio {
		args = append(args,
			"-preset", ScreenPreset,
			"-crf", ScreenCRF,
			"-movflags", FastStartFlag,
			"-c:a", AudioCodec,
		)
	} else {
		args = append(args, "-an")
	}

	return append(args, "-y", outputPath)
}
