package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"yt2mp4/internal/model"
)

// Run drives the TUI for urls and blocks until every job finishes or the
// user quits. A non-nil error carries one line per failed job.
func Run(ctx context.Context, urls []string, opts model.CLIOptions) error {
	final, err := tea.NewProgram(NewModel(ctx, urls, opts), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	fm, ok := final.(Model)
	if !ok {
		return nil
	}
	var failed []string
	for _, id := range fm.jobOrder {
		if js := fm.jobs[id]; js != nil && js.err != nil {
			// Pipeline errors already name the URL.
			failed = append(failed, "- "+js.err.Error())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d job(s) failed:\n%s", len(failed), strings.Join(failed, "\n"))
	}
	return nil
}
