package logging

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConsoleFormatter(t *testing.T) {
	tests := []struct {
		name     string
		level    logrus.Level
		message  string
		fields   logrus.Fields
		expected string
	}{
		{
			name:     "info with no fields",
			level:    logrus.InfoLevel,
			message:  "playlist resolved",
			expected: "[i] playlist resolved\n",
		},
		{
			name:     "error glyph",
			level:    logrus.ErrorLevel,
			message:  "download failed",
			expected: "[x] download failed\n",
		},
		{
			name:     "warning glyph",
			level:    logrus.WarnLevel,
			message:  "bitrate above cap",
			expected: "[!] bitrate above cap\n",
		},
		{
			name:     "fields sorted by key",
			level:    logrus.InfoLevel,
			message:  "retargeting worker pool",
			fields:   logrus.Fields{"to": 12, "from": 16},
			expected: "[i] retargeting worker pool from=16 to=12\n",
		},
	}

	formatter := &ConsoleFormatter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := &logrus.Entry{
				Level:   tt.level,
				Message: tt.message,
				Data:    tt.fields,
			}
			out, err := formatter.Format(entry)
			if err != nil {
				t.Fatalf("Format() returned error: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("Format() = %q, expected %q", out, tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	log := New(logrus.DebugLevel)
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("logger level = %v, expected debug", log.GetLevel())
	}
	if _, ok := log.Formatter.(*ConsoleFormatter); !ok {
		t.Errorf("logger formatter = %T, expected *ConsoleFormatter", log.Formatter)
	}

	var sb strings.Builder
	log.SetOutput(&sb)
	log.Info("hello")
	if !strings.HasPrefix(sb.String(), "[i] hello") {
		t.Errorf("logged line = %q, expected glyph prefix", sb.String())
	}
}
