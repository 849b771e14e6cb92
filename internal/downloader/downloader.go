package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"yt2mp4/internal/model"
	"yt2mp4/internal/progress"
	"yt2mp4/internal/util"
)

// Options controls downloader behavior.
type Options struct {
	BinaryPath string // Path to yt-dlp or youtube-dl
	Selector   string // yt-dlp format selector for -f
	OutputDir  string // Directory the final file lands in
	Verbose    bool

	Runner   util.CmdRunner    // Process runner; nil = real subprocesses
	Reporter progress.Reporter // Progress sink; nil = discard
	JobID    string            // Job ID attached to progress events
}

// Download fetches the media behind url into opts.OutputDir and returns the
// file yt-dlp actually wrote. The path comes from yt-dlp itself via
// "--print after_move:filepath", which names the merged file after all
// post-processing moves, so there is no directory scanning or guessing of
// extensions here.
func Download(ctx context.Context, url string, opts Options) (model.MediaFile, error) {
	if opts.BinaryPath == "" {
		return model.MediaFile{}, errors.New("downloader path is required")
	}
	if opts.Selector == "" {
		return model.MediaFile{}, errors.New("format selector is required")
	}
	runner := opts.Runner
	if runner == nil {
		runner = util.NewDefaultRunner()
	}
	rep := opts.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	outTemplate := filepath.Join(opts.OutputDir, "%(title)s.%(ext)s")
	args := []string{
		// --print implies quiet; --progress turns the progress lines back
		// on and --newline keeps them parseable one per line.
		"--no-simulate",
		"--print", "after_move:filepath",
		"--progress",
		"--newline",
		"-f", opts.Selector,
		"-o", outTemplate,
		"--no-playlist",
		"--no-warnings",
		url,
	}

	// The printed filepath is the only non-bracketed stdout content in
	// quiet mode. Progress and postprocessor chatter all start with "[".
	var printedPath string
	onStdout := func(line string) {
		if u, ok := ParseProgress(line, opts.JobID); ok {
			rep.Update(u)
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "[") {
			return
		}
		printedPath = trimmed
	}
	onStderr := func(line string) {
		if u, ok := ParseProgress(line, opts.JobID); ok {
			rep.Update(u)
			return
		}
		rep.Log(progress.Log{JobID: opts.JobID, Stream: progress.StreamStderr, Line: line})
	}

	_, runErr := runner.Run(ctx, util.CmdSpec{
		Path:          opts.BinaryPath,
		Args:          args,
		Verbose:       opts.Verbose,
		StdoutLine:    onStdout,
		StderrLine:    onStderr,
		CaptureStdout: false,
	})
	if runErr != nil {
		return model.MediaFile{}, fmt.Errorf("downloader failed: %w", runErr)
	}

	if printedPath == "" {
		return model.MediaFile{}, errors.New("downloader finished but printed no file path")
	}
	fi, statErr := os.Stat(printedPath)
	if statErr != nil {
		return model.MediaFile{}, fmt.Errorf("downloaded file missing: %w", statErr)
	}
	if fi.Size() == 0 {
		return model.MediaFile{}, fmt.Errorf("downloaded file %q is empty", printedPath)
	}

	return model.MediaFile{
		Path:      printedPath,
		Container: model.ContainerForPath(printedPath),
	}, nil
}
