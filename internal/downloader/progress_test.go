package downloader

import (
	"testing"
	"time"

	"yt2mp4/internal/progress"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantOk      bool
		wantPercent float64
		wantSpeed   string        // "" = no speed captured
		wantETA     time.Duration // checked only when wantHasETA
		wantHasETA  bool
	}{
		{
			name:        "typical progress",
			line:        "[download]  45.2% of 10.00MiB at  1.50MiB/s ETA 00:04",
			wantOk:      true,
			wantPercent: 45.2,
			wantSpeed:   "1.50MiB/s",
			wantETA:     4 * time.Second,
			wantHasETA:  true,
		},
		{
			name:        "progress without ETA",
			line:        "[download]  25.0% of 5.00MiB at  500.00KiB/s",
			wantOk:      true,
			wantPercent: 25.0,
			wantSpeed:   "500.00KiB/s",
		},
		{
			name:        "long ETA",
			line:        "[download]  10.5% of 100.00MiB at  1.00MiB/s ETA 01:23:45",
			wantOk:      true,
			wantPercent: 10.5,
			wantSpeed:   "1.00MiB/s",
			wantETA:     time.Hour + 23*time.Minute + 45*time.Second,
			wantHasETA:  true,
		},
		{
			name:        "destination line keeps percent unknown",
			line:        "[download] Destination: out/clip.webm",
			wantOk:      true,
			wantPercent: -1,
		},
		{
			name:        "finished line without speed",
			line:        "  [download] 100.0% of 3.00MiB in 00:05",
			wantOk:      true,
			wantPercent: 100.0,
		},
		{name: "postprocessor line", line: `[Merger] Merging formats into "clip.mp4"`},
		{name: "plain warning", line: "WARNING: unable to fetch thumbnail"},
		{name: "empty line", line: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := ParseProgress(tt.line, "job-1")
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if u.JobID != "job-1" || u.Stage != progress.StageDownloading {
				t.Errorf("Update = %+v, want JobID job-1 and stage %s", u, progress.StageDownloading)
			}
			if u.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", u.Percent, tt.wantPercent)
			}
			var gotSpeed string
			if u.Speed != nil {
				gotSpeed = *u.Speed
			}
			if gotSpeed != tt.wantSpeed {
				t.Errorf("Speed = %q, want %q", gotSpeed, tt.wantSpeed)
			}
			if tt.wantHasETA {
				if u.ETA == nil || *u.ETA != tt.wantETA {
					t.Errorf("ETA = %v, want %v", u.ETA, tt.wantETA)
				}
			} else if u.ETA != nil {
				t.Errorf("ETA = %v, want none", *u.ETA)
			}
		})
	}
}

func TestParseETA(t *testing.T) {
	good := []struct {
		s    string
		want time.Duration
	}{
		{"45", 45 * time.Second},
		{"04:30", 4*time.Minute + 30*time.Second},
		{"00:00", 0},
		{"01:00:00", time.Hour},
		{"01:23:45", time.Hour + 23*time.Minute + 45*time.Second},
	}
	for _, tt := range good {
		got, err := parseETA(tt.s)
		if err != nil {
			t.Errorf("parseETA(%q) error: %v", tt.s, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseETA(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}

	for _, s := range []string{"invalid", "1:2:3:4", "1:xx", ""} {
		if _, err := parseETA(s); err == nil {
			t.Errorf("parseETA(%q): want error, got nil", s)
		}
	}
}
