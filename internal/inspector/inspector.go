// Package inspector probes downloaded media with ffprobe.
package inspector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"yt2mp4/internal/util"
)

// Options controls inspector behavior.
type Options struct {
	BinaryPath string // Path to ffprobe
	Verbose    bool

	Runner util.CmdRunner // Process runner; nil = real subprocesses
}

// Info holds the probe results the pipeline cares about.
type Info struct {
	VideoCodec  string  // e.g. "h264", "vp9"
	DurationSec float64 // 0 when unknown
}

// Inspect runs ffprobe against path and returns the codec of the first
// video stream plus the container duration. A file without a video stream
// is an error; duration is best-effort and may stay 0.
func Inspect(ctx context.Context, path string, opts Options) (Info, error) {
	if opts.BinaryPath == "" {
		return Info{}, errors.New("ffprobe path is required")
	}
	if path == "" {
		return Info{}, errors.New("media path is required")
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}

	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1",
		path,
	}
	res, runErr := runner.Run(ctx, util.CmdSpec{
		Path:          opts.BinaryPath,
		Args:          args,
		Verbose:       opts.Verbose,
		CaptureStdout: true,
	})
	if runErr != nil {
		return Info{}, fmt.Errorf("ffprobe failed: %w", runErr)
	}

	info := parseProbeOutput(string(res.Stdout))
	if info.VideoCodec == "" {
		return Info{}, fmt.Errorf("no video stream found in %q", path)
	}
	return info, nil
}

// parseProbeOutput reads ffprobe's flat key=value output. Line order is not
// guaranteed across ffprobe versions, so keys are matched individually.
func parseProbeOutput(out string) Info {
	var info Info
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		key, val, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch key {
		case "codec_name":
			info.VideoCodec = strings.ToLower(strings.TrimSpace(val))
		case "duration":
			// "N/A" for some streamed containers.
			if d, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && d > 0 {
				info.DurationSec = d
			}
		}
	}
	return info
}
