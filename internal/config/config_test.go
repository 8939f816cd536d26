package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.BaseDir == "" {
		t.Error("Default() BaseDir is empty")
	}
	if cfg.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("FFmpegPath = %s, expected %s", cfg.FFmpegPath, DefaultFFmpegPath)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v, expected 10s", cfg.HTTPTimeout)
	}
	if cfg.ProgressInterval != 500*time.Millisecond {
		t.Errorf("ProgressInterval = %v, expected 500ms", cfg.ProgressInterval)
	}
	if cfg.RetargetInterval != 2*time.Second {
		t.Errorf("RetargetInterval = %v, expected 2s", cfg.RetargetInterval)
	}
	if cfg.ScreenBitrateKbps != 250 || cfg.WebcamBitrateKbps != 100 {
		t.Errorf("bitrate caps = %d/%d, expected 250/100", cfg.ScreenBitrateKbps, cfg.WebcamBitrateKbps)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults returned error: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := strings.Join([]string{
		"base_dir: /srv/videos",
		"http_timeout: 30s",
		"screen_bitrate_kbps: 500",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.BaseDir != "/srv/videos" {
		t.Errorf("BaseDir = %s, expected /srv/videos", cfg.BaseDir)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, expected 30s", cfg.HTTPTimeout)
	}
	if cfg.ScreenBitrateKbps != 500 {
		t.Errorf("ScreenBitrateKbps = %d, expected 500", cfg.ScreenBitrateKbps)
	}

	// Omitted fields keep defaults
	if cfg.WebcamBitrateKbps != DefaultWebcamBitrateKbps {
		t.Errorf("WebcamBitrateKbps = %d, expected default %d", cfg.WebcamBitrateKbps, DefaultWebcamBitrateKbps)
	}
	if cfg.FFmpegPath != DefaultFFmpegPath {
		t.Errorf("FFmpegPath = %s, expected default %s", cfg.FFmpegPath, DefaultFFmpegPath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of missing file expected error, got nil")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("http_timeout: -1s\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with negative timeout expected error, got nil")
	}
}
