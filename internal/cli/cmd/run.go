package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"yt2mp4/internal/formats"
	"yt2mp4/internal/model"
	"yt2mp4/internal/pipeline"
	"yt2mp4/internal/progress"
	"yt2mp4/internal/ui"
	"yt2mp4/internal/util"
	"yt2mp4/internal/util/deps"
)

// assembleOptions reads the effective CLI options. Persistent flags fall
// back to YT2MP4_* environment variables and the config file through viper;
// run-level flags are plain flags.
func assembleOptions(cmd *cobra.Command) model.CLIOptions {
	opts := model.CLIOptions{
		OutputDir:  getPersistentString(cmd, "output", "output"),
		DLBinary:   getPersistentString(cmd, "ytdlp-binary", "ytdlp_binary"),
		FFmpegPath: getPersistentString(cmd, "ffmpeg-binary", "ffmpeg_binary"),
		TimeoutSec: getPersistentInt(cmd, "timeout", "timeout"),
		Verbose:    getPersistentBool(cmd, "verbose", "verbose"),
		Jobs:       getPersistentInt(cmd, "jobs", "jobs"),
	}
	opts.BatchFile, _ = cmd.Flags().GetString("file")
	opts.LowQuality, _ = cmd.Flags().GetBool("low-quality")
	opts.NoUI, _ = cmd.Flags().GetBool("no-ui")

	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	opts.OutputDir = filepath.Clean(opts.OutputDir)
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}
	if opts.TimeoutSec < 0 {
		opts.TimeoutSec = 0
	}
	return opts
}

// gatherURLs resolves the URL list from the positional argument or the
// batch file. Exactly one source must be used.
func gatherURLs(args []string, opts model.CLIOptions) ([]string, error) {
	if opts.BatchFile != "" && len(args) > 0 {
		return nil, errors.New("pass either a URL argument or --file, not both")
	}
	if opts.BatchFile == "" && len(args) == 0 {
		return nil, errors.New("nothing to do: pass a YouTube URL or --file <list>")
	}
	if opts.BatchFile != "" {
		return pipeline.ReadURLFile(opts.BatchFile)
	}
	return append([]string(nil), args...), nil
}

func formatSpecFor(opts model.CLIOptions) formats.Spec {
	if opts.LowQuality {
		return formats.LowQuality()
	}
	return formats.Default()
}

func runExecute(cmd *cobra.Command, args []string) error {
	opts := assembleOptions(cmd)

	urls, err := gatherURLs(args, opts)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	// A positional URL must be well formed before anything runs. Batch
	// entries are checked per item so one bad line cannot sink the list.
	if opts.BatchFile == "" {
		for _, u := range urls {
			if verr := util.ValidateURL(u); verr != nil {
				return &ExitError{Code: ExitFailure, Err: verr}
			}
		}
	}
	if len(urls) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do: the URL list is empty.")
		return nil
	}

	if err := ensureDir(opts.OutputDir); err != nil {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("failed to create output dir: %v", err)}
	}

	if !opts.NoUI && isTerminal() {
		if err := ui.Run(cmd.Context(), urls, opts); err != nil {
			return &ExitError{Code: ExitFailure, Err: err}
		}
		return nil
	}
	return runPlain(cmd.Context(), urls, opts)
}

// runPlain processes urls without the TUI, reporting progress as plain
// console lines.
func runPlain(ctx context.Context, urls []string, opts model.CLIOptions) error {
	// Resolve the toolchain up front so a missing tool stops the run
	// before any download starts.
	dlPath, err := deps.FindDownloader(opts.DLBinary)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	ffmpegPath, err := deps.FindFFmpeg(opts.FFmpegPath)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}
	ffprobePath, err := deps.FindFFprobe(ffmpegPath)
	if err != nil {
		return &ExitError{Code: ExitFailure, Err: err}
	}

	svc := pipeline.NewService(
		pipeline.WithDownloaderPath(dlPath),
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithFFprobePath(ffprobePath),
		pipeline.WithFormatSpec(formatSpecFor(opts)),
		pipeline.WithTimeout(time.Duration(opts.TimeoutSec)*time.Second),
		pipeline.WithJobs(opts.Jobs),
		pipeline.WithVerbose(opts.Verbose),
		pipeline.WithReporter(progress.NewConsole(os.Stdout, os.Stderr, opts.Verbose)),
	)

	results := svc.RunBatch(ctx, urls, opts.OutputDir)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d download(s) failed", failed, len(results))}
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
