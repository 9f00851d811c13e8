// Package exif embeds capture time and location into downloaded photos
// through a long-running exiftool process.
package exif

import (
	"fmt"
	"math"
	"os"

	"github.com/barasher/go-exiftool"

	"github.com/gyeh/memdl/internal/model"
)

// DateLayout is the EXIF date/time representation (no zone).
const DateLayout = "2006:01:02 15:04:05"

// MetadataError reports a failed embed. Callers treat it as non-fatal.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("embed metadata in %s: %s", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

type backend interface {
	WriteMetadata([]exiftool.FileMetadata)
	Close() error
}

// Writer sets timestamp and GPS tags on image files. It is safe for
// concurrent use; go-exiftool serializes requests to its process.
type Writer struct {
	et backend
}

// New starts an exiftool process. It fails when the exiftool binary is not
// installed.
func New() (*Writer, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &Writer{et: et}, nil
}

// Embed writes the record's capture time (original, digitized and modify
// dates) and, when known, its coordinates into the file at path. exiftool
// replaces the file, so its access and modification times are set back to
// the capture time afterwards, whether or not the tags were written.
func (w *Writer) Embed(path string, rec model.MemoryRecord) error {
	fm := exiftool.EmptyFileMetadata()
	fm.File = path
	for k, v := range Tags(rec) {
		switch val := v.(type) {
		case string:
			fm.SetString(k, val)
		case float64:
			fm.SetFloat(k, val)
		}
	}

	batch := []exiftool.FileMetadata{fm}
	w.et.WriteMetadata(batch)

	ts := rec.CapturedAt()
	timesErr := os.Chtimes(path, ts, ts)
	if batch[0].Err != nil {
		return &MetadataError{Path: path, Err: batch[0].Err}
	}
	if timesErr != nil {
		return &MetadataError{Path: path, Err: fmt.Errorf("restore file times: %w", timesErr)}
	}
	return nil
}

// Close stops the exiftool process.
func (w *Writer) Close() error {
	return w.et.Close()
}

// Tags returns the tag values Embed writes for rec.
func Tags(rec model.MemoryRecord) map[string]any {
	stamp := rec.CapturedAt().Format(DateLayout)
	tags := map[string]any{
		"DateTimeOriginal": stamp,
		"CreateDate":       stamp,
		"ModifyDate":       stamp,
	}
	if lat, lon, ok := rec.Coordinates(); ok {
		tags["GPSLatitude"] = math.Abs(lat)
		tags["GPSLatitudeRef"] = hemisphere(lat, "N", "S")
		tags["GPSLongitude"] = math.Abs(lon)
		tags["GPSLongitudeRef"] = hemisphere(lon, "E", "W")
	}
	return tags
}

func hemisphere(v float64, positive, negative string) string {
	if v >= 0 {
		return positive
	}
	return negative
}

// Nop discards every embed request. It stands in when exiftool is
// unavailable or embedding is disabled.
type Nop struct{}

func (Nop) Embed(string, model.MemoryRecord) error { return nil }
