package ui

import (
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"yt2mp4/internal/progress"
)

// jobState is one row of the TUI: a URL moving through the pipeline.
type jobState struct {
	id  string
	url string

	stage   progress.Stage
	status  string
	percent float64 // -1 means unknown
	err     error
	started bool
	done    bool

	outputPath string
	bytes      int64
	transcoded bool

	spinner  spinner.Model
	bar      bubblesprogress.Model
	logsRing []string // recent tool output, capped
}

func newJobState(id, url string, styles Styles) jobState {
	return jobState{
		id:      id,
		url:     url,
		status:  "Queued",
		percent: -1,
		spinner: spinner.New(spinner.WithStyle(styles.Spinner)),
		bar: bubblesprogress.New(
			bubblesprogress.WithDefaultGradient(),
			bubblesprogress.WithWidth(40),
		),
	}
}
