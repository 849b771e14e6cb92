package model

import (
	"path/filepath"
	"strings"
)

// Container classifies the file container of downloaded media, derived
// from the file extension.
type Container string

const (
	ContainerMP4   Container = "mp4"
	ContainerOther Container = "other"
)

// ContainerForPath derives the container from a file extension.
func ContainerForPath(path string) Container {
	if strings.EqualFold(filepath.Ext(path), ".mp4") {
		return ContainerMP4
	}
	return ContainerOther
}

// DownloadRequest describes one URL to fetch and where to place the result.
type DownloadRequest struct {
	URL       string
	OutputDir string
}

// MediaFile represents a media file on disk together with the probe results
// the pipeline needs to decide whether to transcode it.
type MediaFile struct {
	Path        string
	Container   Container
	VideoCodec  string  // e.g. "h264", "vp9"; empty when not yet probed
	DurationSec float64 // Seconds; 0 if unknown
}

// IsH264 reports whether the file already carries H.264 video and can be
// delivered as-is. Re-encoding is lossy, so the codec alone decides.
func (m MediaFile) IsH264() bool {
	return m.VideoCodec == "h264"
}

// PipelineResult captures the outcome of processing a single URL.
type PipelineResult struct {
	SourceURL  string
	FinalPath  string // Path to the delivered file; empty on failure
	Transcoded bool   // True when ffmpeg produced the delivered file
	Bytes      int64  // Size of the delivered file; 0 on failure
	Err        error  // Non-nil when the item failed
}

// CLIOptions holds user-configurable runtime options as parsed from flags.
type CLIOptions struct {
	OutputDir  string
	BatchFile  string // Path to a file with one URL per line
	LowQuality bool   // Prefer the smallest available formats
	DLBinary   string // Optional explicit path to yt-dlp/youtube-dl
	FFmpegPath string // Optional explicit path to ffmpeg
	TimeoutSec int    // Per-stage timeout in seconds; 0 disables
	Verbose    bool

	NoUI bool // Disable TUI when true
	Jobs int  // Max concurrent jobs
}
