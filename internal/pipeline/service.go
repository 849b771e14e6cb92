// Package pipeline orchestrates the download, inspect and transcode workflow.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"yt2mp4/internal/downloader"
	"yt2mp4/internal/encoder"
	"yt2mp4/internal/formats"
	"yt2mp4/internal/inspector"
	"yt2mp4/internal/model"
	"yt2mp4/internal/progress"
	"yt2mp4/internal/util"
	"yt2mp4/internal/util/format"
	"yt2mp4/internal/util/media"
)

// Service runs the validate, download, inspect, transcode pipeline for
// YouTube URLs. One Service handles any number of jobs; per-job state
// lives in the job ID passed to Process.
type Service struct {
	dlPath      string
	ffmpegPath  string
	ffprobePath string
	spec        formats.Spec
	timeout     time.Duration
	jobs        int
	verbose     bool
	runner      util.CmdRunner
	reporter    progress.Reporter
}

// Option configures a Service.
type Option func(*Service)

// WithDownloaderPath sets the downloader (yt-dlp/youtube-dl) binary path.
func WithDownloaderPath(p string) Option {
	return func(s *Service) {
		s.dlPath = p
	}
}

// WithFFmpegPath sets the ffmpeg binary path.
func WithFFmpegPath(p string) Option {
	return func(s *Service) {
		s.ffmpegPath = p
	}
}

// WithFFprobePath sets the ffprobe binary path.
func WithFFprobePath(p string) Option {
	return func(s *Service) {
		s.ffprobePath = p
	}
}

// WithFormatSpec sets the yt-dlp format preference chain.
func WithFormatSpec(fs formats.Spec) Option {
	return func(s *Service) {
		s.spec = fs
	}
}

// WithTimeout bounds each pipeline stage of a job; 0 disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// WithJobs sets how many URLs RunBatch may process concurrently.
func WithJobs(n int) Option {
	return func(s *Service) {
		s.jobs = n
	}
}

// WithVerbose enables tool output streaming.
func WithVerbose(v bool) Option {
	return func(s *Service) {
		s.verbose = v
	}
}

// WithRunner injects a custom command runner (useful for testing).
func WithRunner(r util.CmdRunner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithReporter attaches a progress reporter (console or TUI).
func WithReporter(rp progress.Reporter) Option {
	return func(s *Service) {
		s.reporter = rp
	}
}

// NewService constructs a new Service with the provided options.
// It applies sensible defaults for missing components.
func NewService(opts ...Option) *Service {
	s := &Service{jobs: 1}
	for _, o := range opts {
		o(s)
	}
	if s.runner == nil {
		s.runner = util.NewDefaultRunner()
	}
	if s.reporter == nil {
		s.reporter = progress.Nop{}
	}
	if len(s.spec.Entries()) == 0 {
		s.spec = formats.Default()
	}
	if s.jobs <= 0 {
		s.jobs = 1
	}
	return s
}

// NewJobID returns a unique, time-ordered job identifier.
func NewJobID() string {
	if id, err := uuid.NewV7(); err == nil {
		return "job-" + id.String()
	}
	return fmt.Sprintf("job-%d", time.Now().UnixNano())
}

// Process executes the full pipeline for a single URL and reports progress
// under the given job ID. It never prints; failures come back in the
// result's Err, wrapped in a stage sentinel.
func (s *Service) Process(ctx context.Context, id string, req model.DownloadRequest) model.PipelineResult {
	res := model.PipelineResult{SourceURL: req.URL}

	fail := func(err error) model.PipelineResult {
		res.Err = fmt.Errorf("%s: %w", req.URL, err)
		s.reporter.Update(progress.Update{
			JobID:   id,
			Stage:   progress.StageError,
			Percent: -1,
			Message: err.Error(),
		})
		s.reporter.Result(progress.Result{JobID: id, Err: res.Err})
		return res
	}

	if s.dlPath == "" || s.ffmpegPath == "" || s.ffprobePath == "" {
		return fail(fmt.Errorf("%w: downloader, ffmpeg and ffprobe paths must be set", ErrToolchainMissing))
	}

	s.reporter.Update(progress.Update{
		JobID: id, Stage: progress.StageValidating, Percent: -1, Message: "Validating URL",
	})
	if err := util.ValidateURL(req.URL); err != nil {
		return fail(fmt.Errorf("%w: %v", ErrInvalidURL, err))
	}

	selector, selErr := s.spec.Selector()
	if selErr != nil {
		return fail(selErr)
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = "."
	}

	s.reporter.Update(progress.Update{
		JobID: id, Stage: progress.StageDownloading, Percent: -1, Message: "Downloading",
	})
	dctx, dcancel := s.stageContext(ctx)
	mf, derr := downloader.Download(dctx, req.URL, downloader.Options{
		BinaryPath: s.dlPath,
		Selector:   selector,
		OutputDir:  outDir,
		Verbose:    s.verbose,
		Runner:     s.runner,
		Reporter:   s.reporter,
		JobID:      id,
	})
	timedOut := deadlineHit(dctx)
	dcancel()
	if derr != nil {
		return fail(s.classify(derr, ErrExtractionFailed, timedOut))
	}

	s.reporter.Update(progress.Update{
		JobID: id, Stage: progress.StageInspecting, Percent: -1, Message: "Inspecting codec",
	})
	ictx, icancel := s.stageContext(ctx)
	info, ierr := inspector.Inspect(ictx, mf.Path, inspector.Options{
		BinaryPath: s.ffprobePath,
		Verbose:    s.verbose,
		Runner:     s.runner,
	})
	timedOut = deadlineHit(ictx)
	icancel()
	if ierr != nil {
		return fail(s.classify(ierr, ErrInspectionFailed, timedOut))
	}
	mf.VideoCodec = info.VideoCodec
	mf.DurationSec = info.DurationSec

	tctx, tcancel := s.stageContext(ctx)
	final, transcoded, terr := encoder.EnsureH264(tctx, mf, encoder.Options{
		FFmpegPath: s.ffmpegPath,
		Verbose:    s.verbose,
		Runner:     s.runner,
		Reporter:   s.reporter,
		JobID:      id,
	})
	timedOut = deadlineHit(tctx)
	tcancel()
	if terr != nil {
		// The downloaded original stays on disk for the user to retry.
		return fail(s.classify(terr, ErrTranscodeFailed, timedOut))
	}

	fi, statErr := os.Stat(final.Path)
	if statErr != nil {
		return fail(fmt.Errorf("stat final output: %w", statErr))
	}

	res.FinalPath = final.Path
	res.Transcoded = transcoded
	res.Bytes = fi.Size()

	s.reporter.Update(progress.Update{
		JobID:   id,
		Stage:   progress.StageCompleted,
		Percent: 100,
		Message: fmt.Sprintf("Saved: %s (%s)", media.DisplayName(final.Path), format.HumanizeBytes(fi.Size())),
	})
	s.reporter.Result(progress.Result{
		JobID:      id,
		OutputPath: final.Path,
		Bytes:      fi.Size(),
		Transcoded: transcoded,
	})
	return res
}

// RunBatch processes urls and returns one result per URL, in input order
// regardless of how many jobs ran concurrently.
func (s *Service) RunBatch(ctx context.Context, urls []string, outDir string) []model.PipelineResult {
	results := make([]model.PipelineResult, len(urls))
	if len(urls) == 0 {
		return results
	}

	workers := s.jobs
	if workers > len(urls) {
		workers = len(urls)
	}
	if workers <= 1 {
		for i, u := range urls {
			results[i] = s.Process(ctx, NewJobID(), model.DownloadRequest{URL: u, OutputDir: outDir})
		}
		return results
	}

	// Each worker writes only its own index; no locking needed.
	idx := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				results[i] = s.Process(ctx, NewJobID(), model.DownloadRequest{URL: urls[i], OutputDir: outDir})
			}
		}()
	}
	for i := range urls {
		idx <- i
	}
	close(idx)
	wg.Wait()
	return results
}

// RunBatchFile reads URLs from path (one per line, blank lines skipped)
// and processes them in order.
func (s *Service) RunBatchFile(ctx context.Context, path, outDir string) ([]model.PipelineResult, error) {
	urls, err := ReadURLFile(path)
	if err != nil {
		return nil, err
	}
	return s.RunBatch(ctx, urls, outDir), nil
}

// stageContext bounds a single stage when a timeout is configured.
func (s *Service) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// classify wraps a stage error in its sentinel. A stage killed by its own
// deadline reports as a timeout instead; cancellation of the parent
// context keeps the stage sentinel.
func (s *Service) classify(err error, sentinel error, timedOut bool) error {
	if timedOut && s.timeout > 0 {
		return fmt.Errorf("%w after %s: %v", ErrProcessTimeout, s.timeout, err)
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}

func deadlineHit(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.DeadlineExceeded)
}
