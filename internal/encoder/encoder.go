package encoder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"yt2mp4/internal/model"
	"yt2mp4/internal/progress"
	"yt2mp4/internal/util"
	"yt2mp4/internal/util/media"
)

// Options control ffmpeg execution.
type Options struct {
	FFmpegPath string
	Verbose    bool

	Runner   util.CmdRunner    // Process runner; nil = real subprocesses
	Reporter progress.Reporter // Progress sink; nil = discard
	JobID    string            // Job ID attached to progress events
}

// EnsureH264 delivers an H.264 file for the probed input. A file whose
// video is already H.264 is returned unchanged without spawning ffmpeg;
// anything else is transcoded into a "_h264.mp4" sibling, leaving the
// original in place. The bool result reports whether ffmpeg ran.
func EnsureH264(ctx context.Context, in model.MediaFile, opts Options) (model.MediaFile, bool, error) {
	if in.Path == "" {
		return model.MediaFile{}, false, errors.New("input path is required")
	}
	if in.IsH264() {
		return in, false, nil
	}
	if opts.FFmpegPath == "" {
		return model.MediaFile{}, false, errors.New("ffmpeg path is required")
	}
	if !util.FileExists(in.Path) {
		return model.MediaFile{}, false, fmt.Errorf("input file %q does not exist", in.Path)
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	outputPath := media.TranscodeOutputPath(in.Path)
	args := BuildTranscodeArgs(in.Path, outputPath, true)

	state := &ProgressState{}
	onStdout := func(line string) {
		if u, ok := state.UpdateFromLine(line, opts.JobID, in.DurationSec); ok {
			rep.Update(u)
		}
	}
	onStderr := func(line string) {
		rep.Log(progress.Log{JobID: opts.JobID, Stream: progress.StreamStderr, Line: line})
	}

	if err := util.EnsureDir(filepath.Dir(outputPath)); err != nil {
		return model.MediaFile{}, false, fmt.Errorf("ensure output dir: %w", err)
	}

	rep.Update(progress.Update{
		JobID:   opts.JobID,
		Stage:   progress.StageTranscoding,
		Percent: -1,
		Message: "Transcoding to H.264",
	})

	_, runErr := runner.Run(ctx, util.CmdSpec{
		Path:          opts.FFmpegPath,
		Args:          args,
		Verbose:       opts.Verbose,
		StdoutLine:    onStdout,
		StderrLine:    onStderr,
		CaptureStdout: false,
	})
	if runErr != nil {
		// Never leave a truncated partial behind.
		_ = util.RemoveIfExists(outputPath)
		return model.MediaFile{}, false, fmt.Errorf("ffmpeg failed: %w", runErr)
	}

	fi, err := os.Stat(outputPath)
	if err != nil {
		return model.MediaFile{}, false, fmt.Errorf("stat output: %w", err)
	}
	if fi.Size() == 0 {
		_ = util.RemoveIfExists(outputPath)
		return model.MediaFile{}, false, fmt.Errorf("ffmpeg produced empty output %q", outputPath)
	}

	return model.MediaFile{
		Path:        outputPath,
		Container:   model.ContainerMP4,
		VideoCodec:  "h264",
		DurationSec: in.DurationSec,
	}, true, nil
}
