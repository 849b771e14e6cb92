package pipeline

import "errors"

// Stage failure sentinels. Process wraps the underlying cause into one of
// these so callers can classify failures with errors.Is while the message
// keeps the tool diagnostics.
var (
	ErrToolchainMissing = errors.New("required tool not found")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrExtractionFailed = errors.New("download failed")
	ErrInspectionFailed = errors.New("codec inspection failed")
	ErrTranscodeFailed  = errors.New("transcode failed")
	ErrProcessTimeout   = errors.New("tool timed out")
)
