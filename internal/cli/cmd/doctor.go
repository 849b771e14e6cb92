package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yt2mp4/internal/util"
	"yt2mp4/internal/util/deps"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "doctor",
		Short:         "Diagnose the external toolchain (yt-dlp, ffmpeg, ffprobe)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			opts := assembleOptions(cmd)
			runner := util.NewDefaultRunner()
			missing := 0

			dl, derr := deps.FindDownloader(opts.DLBinary)
			if derr != nil {
				fmt.Fprintf(out, "Downloader: not found\n  %v\n", derr)
				missing++
			} else {
				fmt.Fprintf(out, "Downloader: %s%s\n", dl, versionNote(cmd.Context(), runner, dl, "--version"))
			}

			ffmpeg, ferr := deps.FindFFmpeg(opts.FFmpegPath)
			if ferr != nil {
				fmt.Fprintf(out, "FFmpeg:     not found\n  %v\n", ferr)
				missing++
			} else {
				fmt.Fprintf(out, "FFmpeg:     %s%s\n", ffmpeg, versionNote(cmd.Context(), runner, ffmpeg, "-version"))
			}

			ffprobe, perr := deps.FindFFprobe(ffmpeg)
			if perr != nil {
				fmt.Fprintf(out, "FFprobe:    not found\n  %v\n", perr)
				missing++
			} else {
				fmt.Fprintf(out, "FFprobe:    %s%s\n", ffprobe, versionNote(cmd.Context(), runner, ffprobe, "-version"))
			}

			if missing > 0 {
				return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d required tool(s) missing", missing)}
			}
			fmt.Fprintln(out, "All tools found.")
			return nil
		},
	}
}

// versionNote asks a tool for its version and formats it as a " (...)"
// suffix. Failures are silent; doctor still reports the tool as present.
func versionNote(ctx context.Context, runner util.CmdRunner, path, flag string) string {
	res, err := runner.Run(ctx, util.CmdSpec{
		Path:          path,
		Args:          []string{flag},
		CaptureStdout: true,
	})
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(res.Stdout)), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	// ffmpeg and ffprobe print "ffmpeg version N.N ..."; keep the number.
	if fields := strings.Fields(line); len(fields) >= 3 && fields[1] == "version" {
		return fmt.Sprintf(" (%s)", fields[2])
	}
	return fmt.Sprintf(" (%s)", line)
}
