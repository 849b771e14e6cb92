package util

import (
	"fmt"
	"regexp"
)

// youtubeURLPattern matches YouTube watch/share links: optional scheme,
// optional www, one of the YouTube host families, and a non-empty path.
// Scheme and host match case-insensitively.
var youtubeURLPattern = regexp.MustCompile(`(?i)^(https?://)?(www\.)?(youtube|youtu|youtube-nocookie)\.(com|be)/.+`)

// IsYouTubeURL reports whether raw looks like a YouTube video URL.
// It accepts bare short links such as "youtu.be/<id>" and makes no
// network calls.
func IsYouTubeURL(raw string) bool {
	return youtubeURLPattern.MatchString(raw)
}

// ValidateURL returns a descriptive error when raw is not a YouTube URL.
func ValidateURL(raw string) error {
	if IsYouTubeURL(raw) {
		return nil
	}
	return fmt.Errorf(
		"invalid URL %q: only YouTube links are supported (youtube.com, youtu.be, youtube-nocookie.com)",
		raw,
	)
}
