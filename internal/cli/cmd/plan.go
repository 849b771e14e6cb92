package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"yt2mp4/internal/model"
	"yt2mp4/internal/util"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan [url]",
		Short:         "Show what a run would do without downloading anything",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := assembleOptions(cmd)
			urls, err := gatherURLs(args, opts)
			if err != nil {
				return &ExitError{Code: ExitFailure, Err: err}
			}
			printPlan(cmd.OutOrStdout(), urls, opts)
			return nil
		},
	}
	// Same flags as a real run; --no-ui is accepted but irrelevant here.
	bindRunFlags(cmd.Flags())
	return cmd
}

// printPlan reports what a run would do without spawning any process.
// Invalid URLs are flagged per line instead of aborting the report.
func printPlan(w io.Writer, urls []string, opts model.CLIOptions) {
	spec := formatSpecFor(opts)

	fmt.Fprintln(w, "Plan:")
	fmt.Fprintf(w, "- Output dir:    %s\n", opts.OutputDir)
	fmt.Fprintf(w, "- Jobs:          %d\n", opts.Jobs)
	if opts.TimeoutSec > 0 {
		fmt.Fprintf(w, "- Stage timeout: %ds\n", opts.TimeoutSec)
	}
	fmt.Fprintln(w, "- Format chain:")
	for i, e := range spec.Entries() {
		fmt.Fprintf(w, "    %d. %s\n", i+1, e)
	}
	fmt.Fprintln(w, "- URLs:")
	for _, u := range urls {
		if err := util.ValidateURL(u); err != nil {
			fmt.Fprintf(w, "    INVALID  %s\n", u)
			continue
		}
		fmt.Fprintf(w, "    ok       %s\n", u)
	}
}
