package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/saurabh-krishan/mp4-video-processor/internal/platform"
)

// Default values
const (
	DefaultFFmpegPath  = "ffmpeg"
	DefaultFFprobePath = "ffprobe"

	DefaultHTTPTimeout      = 10 * time.Second
	DefaultProgressInterval = 500 * time.Millisecond
	DefaultRetargetInterval = 2 * time.Second

	DefaultScreenBitrateKbps = 250
	DefaultWebcamBitrateKbps = 100
	DefaultMaxFrameRate      = 30.0
)

// Config holds application settings. Zero-value fields are filled with
// defaults by Default and Load.
type Config struct {
	// BaseDir is the root under which temp/{job} and uploads/ live
	BaseDir string `yaml:"base_dir"`

	// External encoder binaries
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// HTTPTimeout bounds playlist and segment requests
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Cadences of the download control loop
	ProgressInterval time.Duration `yaml:"progress_interval"`
	RetargetInterval time.Duration `yaml:"retarget_interval"`

	// Bitrate caps (Kbps) applied when the source exceeds them
	ScreenBitrateKbps int `yaml:"screen_bitrate_kbps"`
	WebcamBitrateKbps int `yaml:"webcam_bitrate_kbps"`

	// MaxFrameRate caps the crop output frame rate
	MaxFrameRate float64 `yaml:"max_frame_rate"`
}

// Default returns a config populated with compiled defaults. The base
// directory resolves to the user's Downloads folder with a working-directory
// fallback.
func Default() *Config {
	return &Config{
		BaseDir:           platform.AppDownloadsDir(),
		FFmpegPath:        DefaultFFmpegPath,
		FFprobePath:       DefaultFFprobePath,
		HTTPTimeout:       DefaultHTTPTimeout,
		ProgressInterval:  DefaultProgressInterval,
		RetargetInterval:  DefaultRetargetInterval,
		ScreenBitrateKbps: DefaultScreenBitrateKbps,
		WebcamBitrateKbps: DefaultWebcamBitrateKbps,
		MaxFrameRate:      DefaultMaxFrameRate,
	}
}

// UnmarshalYAML decodes durations from strings like "10s"; yaml.v3 has no
// native time.Duration support.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		BaseDir           *string  `yaml:"base_dir"`
		FFmpegPath        *string  `yaml:"ffmpeg_path"`
		FFprobePath       *string  `yaml:"ffprobe_path"`
		HTTPTimeout       *string  `yaml:"http_timeout"`
		ProgressInterval  *string  `yaml:"progress_interval"`
		RetargetInterval  *string  `yaml:"retarget_interval"`
		ScreenBitrateKbps *int     `yaml:"screen_bitrate_kbps"`
		WebcamBitrateKbps *int     `yaml:"webcam_bitrate_kbps"`
		MaxFrameRate      *float64 `yaml:"max_frame_rate"`
	}

	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	if raw.BaseDir != nil {
		c.BaseDir = *raw.BaseDir
	}
	if raw.FFmpegPath != nil {
		c.FFmpegPath = *raw.FFmpegPath
	}
	if raw.FFprobePath != nil {
		c.FFprobePath = *raw.FFprobePath
	}
	if raw.ScreenBitrateKbps != nil {
		c.ScreenBitrateKbps = *raw.ScreenBitrateKbps
	}
	if raw.WebcamBitrateKbps != nil {
		c.WebcamBitrateKbps = *raw.WebcamBitrateKbps
	}
	if raw.MaxFrameRate != nil {
		c.MaxFrameRate = *raw.MaxFrameRate
	}

	for _, field := range []struct {
		raw  *string
		dest *time.Duration
		name string
	}{
		{raw.HTTPTimeout, &c.HTTPTimeout, "http_timeout"},
		{raw.ProgressInterval, &c.ProgressInterval, "progress_interval"},
		{raw.RetargetInterval, &c.RetargetInterval, "retarget_interval"},
	} {
		if field.raw == nil {
			continue
		}
		d, err := time.ParseDuration(*field.raw)
		if err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
		*field.dest = d
	}

	return nil
}

// Load reads a YAML config file and overlays it on the defaults. Fields
// omitted from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects settings the download engine cannot run with
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base_dir must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	if c.ProgressInterval <= 0 || c.RetargetInterval <= 0 {
		return fmt.Errorf("progress and retarget intervals must be positive")
	}
	return nil
}
