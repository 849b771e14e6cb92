package media

import (
	"path/filepath"
	"strings"
)

// TranscodeSuffix is appended to the base name of transcoded outputs.
const TranscodeSuffix = "_h264"

// TranscodeOutputPath builds the sibling path for a normalized copy of
// inputPath: same directory, base name plus the transcode suffix, and an
// ".mp4" extension regardless of the input container.
// "clip.webm" becomes "clip_h264.mp4".
func TranscodeOutputPath(inputPath string) string {
	dir := filepath.Dir(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(dir, base+TranscodeSuffix+".mp4")
}

// DisplayName returns a short human-readable name for a media path.
func DisplayName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
