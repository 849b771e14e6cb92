// Package progress carries job events from pipeline stages to whatever is
// watching: the console reporter in plain mode or the TUI.
package progress

import "time"

// Stage names the pipeline step a job is currently in.
type Stage string

const (
	StageValidating  Stage = "validating"
	StageDownloading Stage = "downloading"
	StageInspecting  Stage = "inspecting"
	StageTranscoding Stage = "transcoding"
	StageCompleted   Stage = "completed"
	StageError       Stage = "error"
)

// LogStream indicates which stream produced a log line.
type LogStream int

const (
	StreamStdout LogStream = iota
	StreamStderr
)

// Update is a progress tick or stage change for one job. Percent below zero
// means unknown; the pointer fields are set only when the underlying tool
// reported them.
type Update struct {
	JobID   string
	Stage   Stage
	Percent float64 // 0..100, or <0 if unknown

	ETA     *time.Duration
	Bytes   *int64  // cumulative bytes
	Speed   *string // as printed by the tool, e.g. "2.5MiB/s" or "1.2x"
	Message string  // short status line
}

// Log is one line of tool output attributed to a job.
type Log struct {
	JobID  string
	Stream LogStream
	Line   string
}

// Result closes a job: exactly one per job, success or failure.
type Result struct {
	JobID      string
	OutputPath string
	Bytes      int64
	Transcoded bool  // true when ffmpeg produced the output
	Err        error // nil on success
}

// Reporter receives the event stream for running jobs.
type Reporter interface {
	Update(u Update)
	Log(l Log)
	Result(r Result)
}

// Nop discards all events.
type Nop struct{}

func (Nop) Update(Update) {}
func (Nop) Log(Log)       {}
func (Nop) Result(Result) {}
