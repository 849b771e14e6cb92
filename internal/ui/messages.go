package ui

import "yt2mp4/internal/progress"

// Messages flowing into Model.Update. Progress events cross the reporter
// channel as thin defined types so the switch can tell them apart.
type (
	jobUpdateMsg progress.Update
	jobLogMsg    progress.Log
	jobResultMsg progress.Result
)

type depsCheckedMsg struct {
	DownloaderPath string
	FFmpegPath     string
	FFprobePath    string
	Err            error
}

type allDoneMsg struct{}
