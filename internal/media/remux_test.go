package media

import (
	"strings"
	"testing"
)

func TestBuildMergeArgs(t *testing.T) {
	args := BuildMergeArgs("/tmp/job/playlist.m3u8", "/data/uploads/out.mp4")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-protocol_whitelist file,http,https,tcp,tls",
		"-i /tmp/job/playlist.m3u8",
		"-c copy",
		"-bsf:a aac_adtstoasc",
		"-movflags +faststart",
		"-y /data/uploads/out.mp4",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("merge args missing %q: %s", want, joined)
		}
	}

	// Stream copy must never re-encode
	if strings.Contains(joined, VideoCodec) {
		t.Errorf("merge args must not select a video codec: %s", joined)
	}
}
