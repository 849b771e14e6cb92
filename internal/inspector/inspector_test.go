package inspector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"yt2mp4/internal/util"
)

type fakeRunner struct {
	calls  []util.CmdSpec
	stdout string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, spec util.CmdSpec) (util.CmdResult, error) {
	f.calls = append(f.calls, spec)
	if f.err != nil {
		return util.CmdResult{Code: 1, Err: f.err}, f.err
	}
	return util.CmdResult{Stdout: []byte(f.stdout), Code: 0}, nil
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name       string
		stdout     string
		wantCodec  string
		wantDurSec float64
		wantErr    string
	}{
		{
			name:       "h264 with duration",
			stdout:     "codec_name=h264\nduration=123.456\n",
			wantCodec:  "h264",
			wantDurSec: 123.456,
		},
		{
			name:      "vp9 without duration",
			stdout:    "codec_name=vp9\n",
			wantCodec: "vp9",
		},
		{
			name:       "duration before codec",
			stdout:     "duration=60.0\ncodec_name=av1\n",
			wantCodec:  "av1",
			wantDurSec: 60.0,
		},
		{
			name:      "not-available duration",
			stdout:    "codec_name=h264\nduration=N/A\n",
			wantCodec: "h264",
		},
		{
			name:       "uppercase codec normalized",
			stdout:     "codec_name=H264\nduration=10\n",
			wantCodec:  "h264",
			wantDurSec: 10,
		},
		{
			name:    "no video stream",
			stdout:  "duration=42.0\n",
			wantErr: "no video stream",
		},
		{
			name:    "blank output",
			stdout:  "\n",
			wantErr: "no video stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeRunner{stdout: tt.stdout}
			info, err := Inspect(context.Background(), "/tmp/clip.webm", Options{
				BinaryPath: "/bin/ffprobe",
				Runner:     fr,
			})
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Inspect error: %v", err)
			}
			if info.VideoCodec != tt.wantCodec {
				t.Errorf("VideoCodec = %q, want %q", info.VideoCodec, tt.wantCodec)
			}
			if info.DurationSec != tt.wantDurSec {
				t.Errorf("DurationSec = %v, want %v", info.DurationSec, tt.wantDurSec)
			}
		})
	}
}

func TestInspectArgs(t *testing.T) {
	fr := &fakeRunner{stdout: "codec_name=h264\n"}
	if _, err := Inspect(context.Background(), "/tmp/clip.mp4", Options{
		BinaryPath: "/bin/ffprobe",
		Runner:     fr,
	}); err != nil {
		t.Fatalf("Inspect error: %v", err)
	}
	if len(fr.calls) != 1 {
		t.Fatalf("runner calls = %d, want 1", len(fr.calls))
	}
	spec := fr.calls[0]
	if spec.Path != "/bin/ffprobe" {
		t.Errorf("Path = %q", spec.Path)
	}
	joined := strings.Join(spec.Args, " ")
	for _, want := range []string{
		"-v error",
		"-select_streams v:0",
		"stream=codec_name",
		"format=duration",
		"default=noprint_wrappers=1",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %v", want, spec.Args)
		}
	}
	if spec.Args[len(spec.Args)-1] != "/tmp/clip.mp4" {
		t.Errorf("media path should be the last argument, got %v", spec.Args)
	}
	if !spec.CaptureStdout {
		t.Error("probe output must be captured")
	}
}

func TestInspectProbeFailure(t *testing.T) {
	fr := &fakeRunner{err: errors.New("moov atom not found")}
	_, err := Inspect(context.Background(), "/tmp/broken.mp4", Options{
		BinaryPath: "/bin/ffprobe",
		Runner:     fr,
	})
	if err == nil || !strings.Contains(err.Error(), "ffprobe failed") {
		t.Errorf("want ffprobe failed error, got %v", err)
	}
}

func TestInspectOptionValidation(t *testing.T) {
	if _, err := Inspect(context.Background(), "/tmp/a.mp4", Options{}); err == nil {
		t.Error("missing ffprobe path: want error, got nil")
	}
	if _, err := Inspect(context.Background(), "", Options{BinaryPath: "/bin/ffprobe"}); err == nil {
		t.Error("missing media path: want error, got nil")
	}
}
