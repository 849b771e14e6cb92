package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"yt2mp4/internal/formats"
	"yt2mp4/internal/model"
	"yt2mp4/internal/pipeline"
	"yt2mp4/internal/progress"
	"yt2mp4/internal/util/deps"
	"yt2mp4/internal/util/format"
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	// Toolchain, resolved by checkDepsCmd before any job starts.
	toolsChecked   bool
	toolsErr       error
	downloaderPath string
	ffmpegPath     string
	ffprobePath    string

	svc *pipeline.Service // built once the toolchain resolves

	// Job table and worker accounting. jobOrder keeps input order for
	// rendering; running and nextIdx bound concurrent launches.
	urls     []string
	opts     model.CLIOptions
	jobOrder []string
	jobs     map[string]*jobState
	workers  int
	running  int
	nextIdx  int

	width, height int
	styles        Styles

	// Pipeline goroutines report through this channel; awaitEventCmd turns
	// each send into a tea message.
	events chan tea.Msg
}

func NewModel(ctx context.Context, urls []string, opts model.CLIOptions) Model {
	runCtx, cancel := context.WithCancel(ctx)
	m := Model{
		ctx:     runCtx,
		cancel:  cancel,
		urls:    urls,
		opts:    opts,
		jobs:    make(map[string]*jobState, len(urls)),
		workers: opts.Jobs,
		styles:  defaultStyles(),
		events:  make(chan tea.Msg, 256),
	}
	if m.workers <= 0 {
		m.workers = 1
	}
	for _, u := range urls {
		id := pipeline.NewJobID()
		js := newJobState(id, u, m.styles)
		m.jobs[id] = &js
		m.jobOrder = append(m.jobOrder, id)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.jobOrder)+2)
	for _, id := range m.jobOrder {
		cmds = append(cmds, m.jobs[id].spinner.Tick)
	}
	// Reporter listener and the toolchain probe start alongside the spinners.
	return tea.Batch(append(cmds, m.awaitEventCmd(), m.checkDepsCmd())...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if k := msg.String(); k == "q" || k == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case depsCheckedMsg:
		return m, m.onToolsChecked(msg)

	case jobUpdateMsg:
		m.applyUpdate(progress.Update(msg))
	case jobLogMsg:
		m.appendLog(progress.Log(msg))
	case jobResultMsg:
		if cmd, ok := m.finishJob(progress.Result(msg)); ok {
			return m, cmd
		}
	case allDoneMsg:
		return m, tea.Quit
	}

	// Spinner ticks land here, which also keeps re-arming the listener.
	var cmds []tea.Cmd
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		var c tea.Cmd
		js.spinner, c = js.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(append(cmds, m.awaitEventCmd())...)
}

func (m Model) View() string {
	out := m.viewHeader() + "\n\n" + m.viewJobs()
	if summary := m.viewSummary(); summary != "" {
		out += "\n" + summary
	}
	return out
}

// onToolsChecked records the probe outcome. A missing tool fails every row
// up front; otherwise the pipeline service is built and the first wave of
// jobs launches.
func (m *Model) onToolsChecked(msg depsCheckedMsg) tea.Cmd {
	m.toolsChecked = true
	m.toolsErr = msg.Err
	m.downloaderPath = msg.DownloaderPath
	m.ffmpegPath = msg.FFmpegPath
	m.ffprobePath = msg.FFprobePath
	if msg.Err != nil {
		for _, id := range m.jobOrder {
			js := m.jobs[id]
			js.stage = progress.StageError
			js.status = fmt.Sprintf("Toolchain error: %v", msg.Err)
			js.err = msg.Err
			js.done = true
		}
		return tea.Quit
	}
	m.svc = m.buildService()
	return m.startWorkers()
}

func (m *Model) applyUpdate(u progress.Update) {
	js, ok := m.jobs[u.JobID]
	if !ok {
		return
	}
	js.stage = u.Stage
	js.percent = u.Percent
	js.status = u.Message
	if u.Bytes != nil {
		js.bytes = *u.Bytes
	}
}

// appendLog keeps a capped tail of tool output per job.
func (m *Model) appendLog(l progress.Log) {
	js, ok := m.jobs[l.JobID]
	if !ok {
		return
	}
	if len(js.logsRing) > 1000 {
		js.logsRing = js.logsRing[1:]
	}
	js.logsRing = append(js.logsRing, strings.TrimRight(l.Line, "\r\n"))
}

// finishJob closes out a row and frees its worker slot. Unknown job IDs are
// ignored.
func (m *Model) finishJob(r progress.Result) (tea.Cmd, bool) {
	js, ok := m.jobs[r.JobID]
	if !ok {
		return nil, false
	}
	js.done = true
	js.err = r.Err
	if r.Err != nil {
		js.stage = progress.StageError
		js.status = r.Err.Error()
		js.percent = -1
	} else {
		js.stage = progress.StageCompleted
		js.percent = 100
		js.outputPath = r.OutputPath
		js.bytes = r.Bytes
		js.transcoded = r.Transcoded
		js.status = "Completed"
		if r.OutputPath != "" {
			js.status = fmt.Sprintf("Saved: %s (%s)", truncate(r.OutputPath, 60), format.HumanizeBytes(r.Bytes))
		}
	}
	m.running--
	return m.startWorkers(), true
}

// awaitEventCmd delivers the next reporter event, or allDoneMsg once the
// run context ends.
func (m Model) awaitEventCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return allDoneMsg{}
		case msg := <-m.events:
			return msg
		}
	}
}

func (m Model) checkDepsCmd() tea.Cmd {
	return func() tea.Msg {
		dl, derr := deps.FindDownloader(m.opts.DLBinary)
		if derr != nil {
			return depsCheckedMsg{Err: derr}
		}
		ff, ferr := deps.FindFFmpeg(m.opts.FFmpegPath)
		if ferr != nil {
			return depsCheckedMsg{Err: ferr}
		}
		fp, perr := deps.FindFFprobe(ff)
		if perr != nil {
			return depsCheckedMsg{Err: perr}
		}
		return depsCheckedMsg{DownloaderPath: dl, FFmpegPath: ff, FFprobePath: fp}
	}
}

func (m Model) buildService() *pipeline.Service {
	spec := formats.Default()
	if m.opts.LowQuality {
		spec = formats.LowQuality()
	}
	return pipeline.NewService(
		pipeline.WithDownloaderPath(m.downloaderPath),
		pipeline.WithFFmpegPath(m.ffmpegPath),
		pipeline.WithFFprobePath(m.ffprobePath),
		pipeline.WithFormatSpec(spec),
		pipeline.WithTimeout(time.Duration(m.opts.TimeoutSec)*time.Second),
		pipeline.WithVerbose(m.opts.Verbose),
		pipeline.WithReporter(teaReporter{ch: m.events}),
	)
}

// startWorkers launches jobs until the worker budget is spent. It runs in
// Update so the running/nextIdx counters survive; the returned commands only
// execute pipeline work and feed results back through the event channel.
func (m *Model) startWorkers() tea.Cmd {
	select {
	case <-m.ctx.Done():
		return func() tea.Msg { return allDoneMsg{} }
	default:
	}

	var cmds []tea.Cmd
	for m.running < m.workers && m.nextIdx < len(m.urls) {
		idx := m.nextIdx
		jobID := m.jobOrder[idx]
		url := m.urls[idx]
		m.nextIdx++
		m.running++
		if js := m.jobs[jobID]; js != nil {
			js.started = true
			js.status = "Starting"
			js.stage = progress.StageValidating
		}
		cmds = append(cmds, m.runJobCmd(jobID, url))
	}
	if len(cmds) == 0 && m.running == 0 && m.nextIdx >= len(m.urls) {
		return func() tea.Msg { return allDoneMsg{} }
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) runJobCmd(jobID, url string) tea.Cmd {
	svc := m.svc
	ctx := m.ctx
	req := model.DownloadRequest{URL: url, OutputDir: m.opts.OutputDir}
	return func() tea.Msg {
		// Process reports progress and the final result through the
		// service reporter; nothing to translate here.
		svc.Process(ctx, jobID, req)
		return nil
	}
}

type teaReporter struct {
	ch chan tea.Msg
}

func (r teaReporter) Update(u progress.Update) {
	// Terminal stages must land; mid-stage ticks may be dropped under load.
	if u.Stage == progress.StageCompleted || u.Stage == progress.StageError {
		r.ch <- jobUpdateMsg(u)
		return
	}
	select {
	case r.ch <- jobUpdateMsg(u):
	default:
	}
}

func (r teaReporter) Log(l progress.Log) {
	select {
	case r.ch <- jobLogMsg(l):
	default:
	}
}

func (r teaReporter) Result(res progress.Result) {
	// Every job emits exactly one Result; the send must not be dropped.
	r.ch <- jobResultMsg(res)
}
