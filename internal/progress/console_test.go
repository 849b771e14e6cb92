package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestConsoleResultLines(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut, false)

	c.Result(Result{JobID: "job-1", OutputPath: "out/clip.mp4", Bytes: 2 * 1024 * 1024})
	c.Result(Result{JobID: "job-2", OutputPath: "out/clip2_h264.mp4", Bytes: 3 * 1024 * 1024, Transcoded: true})
	c.Result(Result{JobID: "job-3", Err: errors.New("download failed: boom")})

	stdout := out.String()
	if !strings.Contains(stdout, "Saved: out/clip.mp4 (2.0 MB)") {
		t.Errorf("missing plain saved line, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Saved: out/clip2_h264.mp4 (3.0 MB, transcoded to H.264)") {
		t.Errorf("missing transcoded saved line, got:\n%s", stdout)
	}
	if !strings.Contains(errOut.String(), "Failed: download failed: boom") {
		t.Errorf("missing failed line, got:\n%s", errOut.String())
	}
}

func TestConsoleCollapsesStageTicks(t *testing.T) {
	var out, errOut bytes.Buffer
	c := NewConsole(&out, &errOut, false)

	c.Update(Update{JobID: "job-1", Stage: StageDownloading, Percent: 1, Message: "Downloading"})
	c.Update(Update{JobID: "job-1", Stage: StageDownloading, Percent: 50, Message: "Downloading"})
	c.Update(Update{JobID: "job-1", Stage: StageTranscoding, Percent: -1, Message: "Transcoding to H.264"})

	got := out.String()
	if n := strings.Count(got, "Downloading"); n != 1 {
		t.Errorf("want one Downloading line, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, "Transcoding to H.264") {
		t.Errorf("missing transcoding line:\n%s", got)
	}
}

func TestConsoleLogVerboseOnly(t *testing.T) {
	var out, errOut bytes.Buffer

	quiet := NewConsole(&out, &errOut, false)
	quiet.Log(Log{JobID: "job-1", Stream: StreamStderr, Line: "frame=10"})
	if errOut.Len() != 0 {
		t.Errorf("quiet reporter should drop logs, got %q", errOut.String())
	}

	verbose := NewConsole(&out, &errOut, true)
	verbose.Log(Log{JobID: "job-1", Stream: StreamStderr, Line: "frame=10"})
	if !strings.Contains(errOut.String(), "frame=10") {
		t.Errorf("verbose reporter should forward logs, got %q", errOut.String())
	}
}
