package progress

import (
	"fmt"
	"io"
	"sync"

	"yt2mp4/internal/util/format"
)

// Console is a Reporter that writes plain per-job lines to a writer pair.
// Safe for concurrent use; jobs report from their own goroutines.
type Console struct {
	Out     io.Writer
	ErrOut  io.Writer
	Verbose bool

	mu        sync.Mutex
	lastStage map[string]Stage
}

// NewConsole returns a Console reporter writing results to out and
// diagnostics to errOut.
func NewConsole(out, errOut io.Writer, verbose bool) *Console {
	return &Console{
		Out:       out,
		ErrOut:    errOut,
		Verbose:   verbose,
		lastStage: make(map[string]Stage),
	}
}

// Update prints one line per stage transition. Percent ticks within a stage
// are dropped to keep non-interactive output scannable.
func (c *Console) Update(u Update) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastStage[u.JobID] == u.Stage {
		return
	}
	c.lastStage[u.JobID] = u.Stage
	switch u.Stage {
	case StageCompleted, StageError:
		// Result carries the final line for these.
		return
	}
	if u.Message != "" {
		fmt.Fprintf(c.Out, "[%s] %s\n", u.JobID, u.Message)
	}
}

// Log forwards tool output when verbose.
func (c *Console) Log(l Log) {
	if !c.Verbose {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.ErrOut, "[%s] %s\n", l.JobID, l.Line)
}

// Result prints the final Saved/Failed line for a job.
func (c *Console) Result(r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.Err != nil {
		fmt.Fprintf(c.ErrOut, "Failed: %v\n", r.Err)
		return
	}
	note := ""
	if r.Transcoded {
		note = ", transcoded to H.264"
	}
	fmt.Fprintf(c.Out, "Saved: %s (%s%s)\n", r.OutputPath, format.HumanizeBytes(r.Bytes), note)
}
