package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"yt2mp4/internal/config"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

const version = "0.1.7"

// ExitError wraps an error with a process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "yt2mp4 [url]",
		Short:         "Download YouTube videos as widely playable H.264 MP4",
		Long:          "yt2mp4 downloads a YouTube video with yt-dlp and hands you an MP4 that plays everywhere. Files that already carry H.264 video in an MP4 container are left untouched; anything else is re-encoded to H.264/AAC with ffmpeg.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runExecute,
	}

	// Persistent flags available to all subcommands. --verbose takes no
	// shorthand so cobra can give -v to --version.
	root.PersistentFlags().StringP("output", "o", ".", "Output directory")
	root.PersistentFlags().Bool("verbose", false, "Show full subprocess commands/output")
	root.PersistentFlags().String("ytdlp-binary", "", "Path to yt-dlp or youtube-dl")
	root.PersistentFlags().String("ffmpeg-binary", "", "Path to ffmpeg (ffprobe is expected next to it)")
	root.PersistentFlags().Int("jobs", 1, "Max concurrent downloads in batch mode")
	root.PersistentFlags().Int("timeout", 0, "Per-stage timeout in seconds; 0 disables")

	bindRunFlags(root.Flags())

	// Subcommands
	root.AddCommand(newPlanCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newCompletionCmd())

	return root
}

func bindRunFlags(fs *pflag.FlagSet) {
	fs.StringP("file", "f", "", "Read URLs from a file, one per line")
	fs.Bool("low-quality", false, "Prefer the smallest available formats")
	fs.Bool("no-ui", false, "Disable TUI; use plain textual output")
}

// Execute runs the CLI with the provided context.
func Execute(ctx context.Context) error {
	root := newRootCmd()
	if err := config.Init(root); err != nil {
		return err
	}
	return root.ExecuteContext(ctx)
}

// Helpers

// effectiveFlag finds a flag among the command's own or inherited flags.
// Root sees its persistent flags as its own; subcommands inherit them.
func effectiveFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.InheritedFlags().Lookup(name)
}

// getPersistentString resolves a persistent flag with env/config fallback:
// explicitly set flag first, then the bound viper key, then the flag default.
func getPersistentString(cmd *cobra.Command, name, key string) string {
	f := effectiveFlag(cmd, name)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	if f != nil {
		return f.Value.String()
	}
	return ""
}

func getPersistentBool(cmd *cobra.Command, name, key string) bool {
	f := effectiveFlag(cmd, name)
	if f != nil && f.Changed {
		return f.Value.String() == "true"
	}
	if viper.GetBool(key) {
		return true
	}
	return f != nil && f.Value.String() == "true"
}

func getPersistentInt(cmd *cobra.Command, name, key string) int {
	f := effectiveFlag(cmd, name)
	if f != nil && f.Changed {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			return n
		}
	}
	if v := viper.GetInt(key); v != 0 {
		return v
	}
	if f != nil {
		if n, err := strconv.Atoi(f.Value.String()); err == nil {
			return n
		}
	}
	return 0
}

func ensureDir(path string) error {
	if path == "" {
		path = "."
	}
	return os.MkdirAll(filepath.Clean(path), 0o755)
}
