package encoder

import (
	"testing"

	"yt2mp4/internal/progress"
)

func TestProgressStateUpdateFromLine(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		durationSec float64
		wantOk      bool
		wantPercent float64
	}{
		{
			name: "mid-transcode block",
			lines: []string{
				"out_time_ms=30000000", // 30s of output in microseconds
				"speed=1.5x",
				"total_size=10485760",
				"progress=continue",
			},
			durationSec: 60.0,
			wantOk:      true,
			wantPercent: 50.0,
		},
		{
			name:        "unknown duration keeps percent unknown",
			lines:       []string{"out_time_ms=30000000", "progress=continue"},
			durationSec: 0,
			wantOk:      true,
			wantPercent: -1.0,
		},
		{
			name:        "completion clamps to 100",
			lines:       []string{"out_time_ms=61000000", "progress=end"},
			durationSec: 60.0,
			wantOk:      true,
			wantPercent: 100.0,
		},
		{
			name:        "stats line is not a block end",
			lines:       []string{"frame=100"},
			durationSec: 60.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := &ProgressState{}
			var u progress.Update
			var ok bool
			for _, line := range tt.lines {
				u, ok = ps.UpdateFromLine(line, "job-1", tt.durationSec)
			}
			if ok != tt.wantOk {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOk)
			}
			if !ok {
				return
			}
			if u.JobID != "job-1" || u.Stage != progress.StageTranscoding {
				t.Errorf("Update = %+v, want JobID job-1 and stage %s", u, progress.StageTranscoding)
			}
			if u.Percent != tt.wantPercent {
				t.Errorf("Percent = %v, want %v", u.Percent, tt.wantPercent)
			}
		})
	}
}

func TestProgressStateAccumulates(t *testing.T) {
	ps := &ProgressState{}
	for _, line := range []string{
		"out_time_ms=15000000",
		"speed=1.2x",
		"total_size=1048576",
	} {
		if _, ok := ps.UpdateFromLine(line, "job-1", 60.0); ok {
			t.Fatalf("accumulator line %q produced an update", line)
		}
	}

	u, ok := ps.UpdateFromLine("progress=continue", "job-1", 60.0)
	if !ok {
		t.Fatal("progress line did not produce an update")
	}
	if u.Percent != 25.0 {
		t.Errorf("Percent = %v, want 25.0", u.Percent)
	}
	if u.Speed == nil || *u.Speed != "1.2x" {
		t.Errorf("Speed = %v, want 1.2x", u.Speed)
	}
	if u.Bytes == nil || *u.Bytes != 1048576 {
		t.Errorf("Bytes = %v, want 1048576", u.Bytes)
	}
}
