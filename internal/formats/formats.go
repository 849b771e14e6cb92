// Package formats builds yt-dlp format selector strings.
//
// A Spec is an ordered list of selector entries, best first. yt-dlp walks
// the list left to right and takes the first entry the video can satisfy,
// so every chain ends with a catch-all to keep downloads from failing on
// videos without MP4 variants.
package formats

import (
	"errors"
	"fmt"
	"strings"
)

// Selector entries for the default (quality-first) chain. Capped at 1080p
// because taller streams are rarely available as H.264 and would force a
// transcode anyway.
const (
	selAVC1080  = "bv[height<=1080][vcodec^=avc1][ext=mp4]+ba[acodec^=mp4a]"
	selMP41080  = "bv[height<=1080][ext=mp4]+ba[ext=m4a]"
	selBestMP4  = "best[ext=mp4]"
	selBest     = "best"
	selWorstAV  = "worstvideo[ext=mp4]+worstaudio[ext=m4a]"
	selWorstMP4 = "worst[ext=mp4]"
	selWorst    = "worst"
)

// Spec is an ordered list of yt-dlp format selectors, best first.
type Spec struct {
	entries []string
}

// Default returns the standard chain: H.264/AAC MP4 up to 1080p when the
// site has it, otherwise progressively looser MP4 picks, otherwise best.
func Default() Spec {
	return Spec{entries: []string{selAVC1080, selMP41080, selBestMP4, selBest}}
}

// LowQuality returns the smallest-first chain for quick test downloads.
func LowQuality() Spec {
	return Spec{entries: []string{selWorstAV, selWorstMP4, selWorst}}
}

// Custom builds a Spec from explicit selector entries.
func Custom(entries ...string) Spec {
	return Spec{entries: append([]string(nil), entries...)}
}

// Entries returns a copy of the selector entries in preference order.
func (s Spec) Entries() []string {
	return append([]string(nil), s.entries...)
}

// Selector renders the Spec as a single yt-dlp -f argument, entries joined
// with "/". It rejects empty chains and blank entries, which yt-dlp would
// otherwise accept silently and resolve to nothing.
func (s Spec) Selector() (string, error) {
	if len(s.entries) == 0 {
		return "", errors.New("format spec has no entries")
	}
	for i, e := range s.entries {
		if strings.TrimSpace(e) == "" {
			return "", fmt.Errorf("format spec entry %d is empty", i)
		}
	}
	return strings.Join(s.entries, "/"), nil
}
