package deps

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestFindDownloaderCustomPath(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "yt-dlp-nightly")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := FindDownloader(bin)
	if err != nil {
		t.Fatalf("FindDownloader(%q) error: %v", bin, err)
	}
	if got != bin {
		t.Errorf("FindDownloader = %q, want %q", got, bin)
	}

	if _, err := FindDownloader(filepath.Join(dir, "missing")); err == nil {
		t.Error("FindDownloader with missing custom path: want error, got nil")
	}
}

func TestFindFFprobePrefersSiblingOfFFmpeg(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sibling lookup uses ffprobe.exe on windows")
	}
	dir := t.TempDir()
	ffmpeg := filepath.Join(dir, "ffmpeg")
	ffprobe := filepath.Join(dir, "ffprobe")
	for _, p := range []string{ffmpeg, ffprobe} {
		if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindFFprobe(ffmpeg)
	if err != nil {
		t.Fatalf("FindFFprobe error: %v", err)
	}
	if got != ffprobe {
		t.Errorf("FindFFprobe = %q, want sibling %q", got, ffprobe)
	}
}
