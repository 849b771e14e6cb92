package downloader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"yt2mp4/internal/progress"
)

// ParseProgress extracts percent, speed and ETA from a yt-dlp progress
// line. Progress lines look like:
//
//	[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04
//
// Anything else reports ok=false.
func ParseProgress(line, jobID string) (progress.Update, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(line), "[download]")
	if !ok {
		return progress.Update{}, false
	}

	u := progress.Update{
		JobID:   jobID,
		Stage:   progress.StageDownloading,
		Percent: -1,
		Message: "Downloading",
	}
	fields := strings.Fields(rest)
	for i, f := range fields {
		switch {
		case strings.HasSuffix(f, "%"):
			if p, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64); err == nil {
				u.Percent = p
			}
		case f == "at" && i+1 < len(fields):
			s := fields[i+1]
			u.Speed = &s
		case f == "ETA" && i+1 < len(fields):
			if d, err := parseETA(fields[i+1]); err == nil {
				u.ETA = &d
			}
		}
	}
	return u, true
}

// parseETA parses yt-dlp clock strings: "SS", "MM:SS" or "HH:MM:SS".
func parseETA(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	var total time.Duration
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("bad clock value %q", s)
		}
		total = total*60 + time.Duration(n)*time.Second
	}
	return total, nil
}
