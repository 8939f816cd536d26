package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
)

// FFprobe constants
const (
	FFprobeLogLevel     = "error"
	FFprobeStreamSelect = "v:0"
	FFprobeVideoEntries = "stream=codec_name,width,height,r_frame_rate,bit_rate"
	FFprobeDuration     = "format=duration"
	FFprobeCSVFormat    = "csv=p=0"
	FFprobeJSONFormat   = "json"
)

// Prober reads media metadata through ffprobe
type Prober struct {
	ffprobePath string
}

// NewProber creates a prober using the given ffprobe binary
func NewProber(ffprobePath string) *Prober {
	return &Prober{ffprobePath: ffprobePath}
}

// Probe returns codec, dimensions, frame rate and bitrate of the first
// video stream
func (p *Prober) Probe(ctx context.Context, path string) (model.VideoInfo, error) {
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", FFprobeLogLevel,
		"-select_streams", FFprobeStreamSelect,
		"-show_entries", FFprobeVideoEntries,
		"-of", FFprobeJSONFormat,
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return model.VideoInfo{}, &ProbeError{Path: path, Err: err}
	}

	info, err := parseProbeOutput(output)
	if err != nil {
		return model.VideoInfo{}, &ProbeError{Path: path, Err: err}
	}
	return info, nil
}

// Duration returns the container duration in seconds
func (p *Prober) Duration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeDuration,
		"-of", FFprobeCSVFormat,
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, &ProbeError{Path: path, Err: err}
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, &ProbeError{Path: path, Err: fmt.Errorf("parse duration: %w", err)}
	}
	return duration, nil
}

// BitrateKbps returns the first video stream's bitrate in Kbps, or 0 when
// it cannot be determined. Used for post-encode verification, where a
// missing value only suppresses the warning.
func (p *Prober) BitrateKbps(ctx context.Context, path string) float64 {
	info, err := p.Probe(ctx, path)
	if err != nil {
		return 0
	}
	return info.BitrateKbps
}

type probeStream struct {
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	BitRate    string `json:"bit_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
}

func parseProbeOutput(data []byte) (model.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return model.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return model.VideoInfo{}, fmt.Errorf("no video stream found")
	}
	stream := out.Streams[0]

	fps, err := parseFrameRate(stream.RFrameRate)
	if err != nil {
		return model.VideoInfo{}, err
	}

	// bit_rate may be absent for some containers; report it as 0 rather
	// than failing the whole probe
	bitrate := 0.0
	if stream.BitRate != "" {
		bps, err := strconv.ParseFloat(stream.BitRate, 64)
		if err != nil {
			return model.VideoInfo{}, fmt.Errorf("parse bit_rate %q: %w", stream.BitRate, err)
		}
		bitrate = bps / 1000
	}

	return model.VideoInfo{
		Codec:       stream.CodecName,
		Width:       stream.Width,
		Height:      stream.Height,
		FPS:         fps,
		BitrateKbps: bitrate,
	}, nil
}

// parseFrameRate parses ffprobe's fractional rate, e.g. "30000/1001"
func parseFrameRate(raw string) (float64, error) {
	parts := strings.Split(raw, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse r_frame_rate %q", raw)
	}

	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse r_frame_rate %q: %w", raw, err)
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("parse r_frame_rate %q", raw)
	}

	return num / den, nil
}
