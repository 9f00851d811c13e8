package normalize

import (
	"fmt"
	"strings"
	"time"
)

// CaptureLayout is the timestamp layout used by the export manifest.
const CaptureLayout = "2006-01-02 15:04:05 UTC"

// FilenameLayout names output files after their capture time.
const FilenameLayout = "2006-01-02_15-04-05"

// Layouts accepted for capture times, tried in order. The manifest always
// uses CaptureLayout; the others cover hand-edited exports.
var captureLayouts = []string{
	CaptureLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
}

// ParseCaptureTime parses a manifest timestamp as UTC.
func ParseCaptureTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty capture time")
	}
	for _, layout := range captureLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized capture time %q (want %q)", s, CaptureLayout)
}

// BaseFilename returns the extension-less output name for a capture time.
func BaseFilename(t time.Time) string {
	return t.UTC().Format(FilenameLayout)
}
