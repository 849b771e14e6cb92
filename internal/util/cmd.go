package util

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// CmdSpec describes a subprocess to run.
type CmdSpec struct {
	Path    string   // Binary path
	Args    []string // Arguments
	Env     []string // Extra KEY=VALUE entries appended to the inherited environment; nil inherits as is
	Dir     string   // Working directory; empty = inherit
	Verbose bool     // Echo the command line and its output to the terminal

	// Per-line streaming and memory control:
	StdoutLine    func(string) // Called for each stdout line (if non-nil)
	StderrLine    func(string) // Called for each stderr line (if non-nil)
	CaptureStdout bool         // When false, do not buffer stdout into CmdResult (still invoke StdoutLine)
}

// CmdResult contains captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

// CmdRunner abstracts subprocess execution so the external tools (yt-dlp,
// ffprobe, ffmpeg) can be faked in tests.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
}

// NewDefaultRunner returns the production CmdRunner that shells out.
func NewDefaultRunner() CmdRunner {
	return execRunner{}
}

type execRunner struct{}

// Run executes the command and waits for it. Stderr is always captured;
// stdout is captured when CaptureStdout is set or no StdoutLine callback is
// given. A non-zero exit returns an error alongside the populated CmdResult
// so callers still see the captured output.
func (execRunner) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Dir = spec.Dir
	if spec.Env != nil {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	if spec.Verbose {
		fmt.Fprintf(os.Stderr, "+ %s\n", shellQuote(spec.Path, spec.Args))
	}
	if err := cmd.Start(); err != nil {
		return CmdResult{Code: -1, Err: err}, err
	}

	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		scanLines(outPipe, func(line string) {
			if spec.StdoutLine != nil {
				spec.StdoutLine(line)
			}
			if spec.Verbose {
				fmt.Fprintln(os.Stdout, line)
			}
			if spec.CaptureStdout || spec.StdoutLine == nil {
				stdout.WriteString(line)
				stdout.WriteByte('\n')
			}
		})
	}()
	go func() {
		defer wg.Done()
		scanLines(errPipe, func(line string) {
			if spec.StderrLine != nil {
				spec.StderrLine(line)
			}
			if spec.Verbose {
				fmt.Fprintln(os.Stderr, line)
			}
			stderr.WriteString(line)
			stderr.WriteByte('\n')
		})
	}()

	// Both pipes must hit EOF before Wait: Wait closes them, and closing
	// early can drop the tail of the output.
	wg.Wait()
	waitErr := cmd.Wait()

	res := CmdResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
		Err:    waitErr,
	}
	if waitErr != nil {
		res.Code = -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			res.Code = exitErr.ExitCode()
		}
		return res, fmt.Errorf("command failed (exit %d): %w", res.Code, waitErr)
	}
	return res, nil
}

// scanLines feeds each line of r to handle. yt-dlp can print very long
// lines (full file paths, fragment lists), so the scanner buffer is raised
// from the 64KB default to 1MB.
func scanLines(r io.Reader, handle func(string)) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		handle(sc.Text())
	}
}

// shellQuote renders path and args as a copy-pasteable command line for
// verbose logging.
func shellQuote(path string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, s := range append([]string{path}, args...) {
		switch {
		case s == "":
			parts = append(parts, "''")
		case strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!"):
			parts = append(parts, "'"+strings.ReplaceAll(s, "'", `'\''`)+"'")
		default:
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
