package encoder

import "strconv"

// Fixed transcode profile: H.264 video and AAC audio in a streamable MP4.
const (
	videoCodec   = "libx264"
	videoPreset  = "medium"
	videoCRF     = 23
	audioCodec   = "aac"
	audioBitrate = "128k"
)

// BuildTranscodeArgs constructs the ffmpeg argument list for converting
// inputPath into an H.264/AAC MP4 at outputPath. Resolution and frame rate
// pass through untouched; only codecs and container change.
func BuildTranscodeArgs(inputPath, outputPath string, includeProgress bool) []string {
	args := []string{
		"-y",
		"-i", inputPath,
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-crf", strconv.Itoa(videoCRF),
		"-pix_fmt", "yuv420p",
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		"-movflags", "+faststart",
	}
	if includeProgress {
		args = append(args, "-progress", "pipe:1", "-nostats")
	}
	return append(args, outputPath)
}
