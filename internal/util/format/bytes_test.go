package format

import "testing"

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1, "1 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{50 << 20, "50.0 MB"},
		{1 << 30, "1.0 GB"},
		{1536 << 20, "1.5 GB"},
		{5 << 30, "5.0 GB"},
		{1 << 40, "1.0 TB"},
		{3 << 50, "3.0 PB"},
		{2048 << 50, "2048.0 PB"}, // beyond PB stays in PB
	}

	for _, tt := range tests {
		if got := HumanizeBytes(tt.n); got != tt.want {
			t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
