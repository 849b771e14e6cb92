package encoder

import (
	"strconv"
	"strings"

	"yt2mp4/internal/progress"
)

// ProgressState accumulates ffmpeg -progress output across line parses.
// ffmpeg emits key=value blocks terminated by a "progress=" line.
type ProgressState struct {
	OutTimeMs int64
	SpeedStr  string
	TotalSize int64
}

// UpdateFromLine updates the state from a progress line and returns an
// update when a block terminator is seen. Percent is derived from the
// source duration and stays -1 when the duration is unknown.
func (ps *ProgressState) UpdateFromLine(line, jobID string, durationSec float64) (progress.Update, bool) {
	key, val, found := strings.Cut(line, "=")
	if !found {
		return progress.Update{}, false
	}

	switch strings.TrimSpace(key) {
	case "out_time_ms":
		ps.OutTimeMs = parseInt64(val, ps.OutTimeMs)
	case "speed":
		ps.SpeedStr = strings.TrimSpace(val)
	case "total_size":
		ps.TotalSize = parseInt64(val, ps.TotalSize)
	case "progress":
		return ps.snapshot(jobID, durationSec), true
	}
	return progress.Update{}, false
}

// snapshot renders the accumulated block as one Update.
func (ps *ProgressState) snapshot(jobID string, durationSec float64) progress.Update {
	u := progress.Update{
		JobID:   jobID,
		Stage:   progress.StageTranscoding,
		Percent: -1,
		Message: "Transcoding to H.264",
	}
	if durationSec > 0 {
		// out_time_ms is microseconds despite the name.
		pct := float64(ps.OutTimeMs) / (durationSec * 1_000_000) * 100
		if pct > 100 {
			pct = 100
		}
		u.Percent = pct
	}
	if ps.SpeedStr != "" {
		speed := ps.SpeedStr
		u.Speed = &speed
	}
	if ps.TotalSize > 0 {
		size := ps.TotalSize
		u.Bytes = &size
	}
	return u
}

func parseInt64(s string, fallback int64) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}
