package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/normalize"
)

// SavedMediaKey is the top-level key holding the media entries.
const SavedMediaKey = "Saved Media"

// ErrMissingSavedMedia is returned when the export has no media list.
var ErrMissingSavedMedia = errors.New(`missing "` + SavedMediaKey + `" array`)

// ManifestError wraps a fatal problem with the export file. Index is the
// zero-based entry position, or -1 for file-level problems.
type ManifestError struct {
	Path  string
	Index int
	Err   error
}

func (e *ManifestError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("manifest %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("manifest %s: entry %d: %s", e.Path, e.Index, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// Entry mirrors one object of the export's media array.
type Entry struct {
	Date         string `json:"Date"`
	MediaType    string `json:"Media Type,omitempty"`
	DownloadLink string `json:"Download Link"`
	Location     string `json:"Location,omitempty"`
}

// Document is the on-disk export structure.
type Document struct {
	SavedMedia []Entry `json:"Saved Media"`
}

// Load reads the export at path and converts every entry into a record.
func Load(path string) ([]model.MemoryRecord, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	records := make([]model.MemoryRecord, 0, len(doc.SavedMedia))
	for i, e := range doc.SavedMedia {
		rec, err := ToRecord(e)
		if err != nil {
			return nil, &ManifestError{Path: path, Index: i, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Read decodes the export document without converting its entries.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Index: -1, Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ManifestError{Path: path, Index: -1, Err: fmt.Errorf("parse json: %w", err)}
	}
	if _, ok := raw[SavedMediaKey]; !ok {
		return nil, &ManifestError{Path: path, Index: -1, Err: ErrMissingSavedMedia}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ManifestError{Path: path, Index: -1, Err: fmt.Errorf("parse json: %w", err)}
	}
	return &doc, nil
}

// ToRecord validates one entry and builds its record.
func ToRecord(e Entry) (model.MemoryRecord, error) {
	capturedAt, err := normalize.ParseCaptureTime(e.Date)
	if err != nil {
		return model.MemoryRecord{}, err
	}
	link := strings.TrimSpace(e.DownloadLink)
	if link == "" {
		return model.MemoryRecord{}, fmt.Errorf("empty download link")
	}
	return model.NewMemoryRecord(capturedAt, link, e.Location, mediaKind(e.MediaType), nil, nil), nil
}

func mediaKind(s string) model.MediaKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "image", "photo":
		return model.MediaImage
	case "video":
		return model.MediaVideo
	default:
		return model.MediaUnknown
	}
}
