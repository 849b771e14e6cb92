package ui

import (
	"fmt"
	"strings"

	"yt2mp4/internal/progress"
)

func (m Model) viewHeader() string {
	done := 0
	for _, id := range m.jobOrder {
		if m.jobs[id].done {
			done++
		}
	}
	title := m.styles.Title.Render("yt2mp4 — YouTube to H.264 MP4")
	sub := m.styles.Subtitle.Render(fmt.Sprintf("Jobs: %d/%d done • q: quit", done, len(m.jobOrder)))
	return title + "\n" + sub
}

func (m Model) viewJobs() string {
	if len(m.jobOrder) == 0 {
		return ""
	}
	rows := make([]string, 0, len(m.jobOrder))
	for _, id := range m.jobOrder {
		rows = append(rows, m.viewJob(m.jobs[id]))
	}
	return strings.Join(rows, "\n") + "\n"
}

func (m Model) viewJob(js *jobState) string {
	stageStyle := m.styles.JobInfo
	switch js.stage {
	case progress.StageValidating:
		stageStyle = m.styles.StageCheck
	case progress.StageDownloading:
		stageStyle = m.styles.StageDL
	case progress.StageInspecting:
		stageStyle = m.styles.StageProbe
	case progress.StageTranscoding:
		stageStyle = m.styles.StageEncode
	case progress.StageCompleted:
		stageStyle = m.styles.Success
	case progress.StageError:
		stageStyle = m.styles.Error
	}

	var right string
	switch {
	case js.percent >= 0 && js.percent <= 100:
		right = fmt.Sprintf("%s %5.1f%%", js.bar.ViewAs(js.percent/100.0), js.percent)
	case js.done && js.err == nil:
		right = m.styles.Success.Render("✓ done")
	case js.err != nil:
		right = m.styles.Error.Render("✗ error")
	default:
		right = m.styles.Spinner.Render(js.spinner.View()) + " " + m.styles.Faint.Render("waiting")
	}

	top := fmt.Sprintf("%s  %s",
		m.styles.JobTitle.Render(truncate(js.url, 48)),
		stageStyle.Render(string(js.stage)))
	return m.styles.Box.Render(top + "\n" + right + "\n" + m.styles.JobInfo.Render(js.status))
}

func (m Model) viewSummary() string {
	type entry struct {
		path       string
		transcoded bool
	}
	var completed []entry
	for _, id := range m.jobOrder {
		js := m.jobs[id]
		if js.done && js.err == nil && js.outputPath != "" {
			completed = append(completed, entry{js.outputPath, js.transcoded})
		}
	}
	if len(completed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("✓ Completed Files:"))
	b.WriteString("\n")
	for _, e := range completed {
		line := "  • " + e.path
		if e.transcoded {
			line += " (transcoded)"
		}
		b.WriteString(m.styles.Success.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	rs := []rune(s)
	if n <= 0 || len(rs) <= n {
		return s
	}
	return string(rs[:n-1]) + "…"
}
