// Package report formats the human-readable summary of a finished download.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/saurabh-krishan/mp4-video-processor/internal/model"
	"github.com/saurabh-krishan/mp4-video-processor/internal/platform"
)

const separatorWidth = 50

// Generate formats a multi-line download summary from orchestration
// statistics. It is a pure function of its inputs except for reading the
// output file's size; a missing file is reported as 0 bytes.
func Generate(totalSegments int, elapsed time.Duration, finalSpeed float64, outputPath string) string {
	fileSize := platform.FileSize(outputPath)
	fileSizeMB := float64(fileSize) / (1024 * 1024)
	speedMB := finalSpeed / (1024 * 1024)

	segmentsPerSecond := 0.0
	if elapsed.Seconds() > 0 {
		segmentsPerSecond = float64(totalSegments) / elapsed.Seconds()
	}

	separator := strings.Repeat("=", separatorWidth)
	lines := []string{
		"",
		separator,
		"Download Complete!",
		separator,
		"",
		"Download Statistics:",
		fmt.Sprintf("   |- Total Segments: %d", totalSegments),
		fmt.Sprintf("   |- Time Taken: %s", model.FormatClock(int(elapsed.Seconds()))),
		fmt.Sprintf("   |- File Size: %.2f MB", fileSizeMB),
		fmt.Sprintf("   |- Average Speed: %s", model.FormatSpeed(finalSpeed)),
		fmt.Sprintf("   `- Efficiency: %.1f MB/s (%.1f segments/s)", speedMB, segmentsPerSecond),
		separator,
		"",
	}
	return strings.Join(lines, "\n")
}
