package model

import (
	"time"

	"github.com/gyeh/memdl/internal/normalize"
)

// MediaKind is the media type the export claims for a record. It is
// informational only: the real extension is known after link resolution.
type MediaKind string

const (
	MediaImage   MediaKind = "Image"
	MediaVideo   MediaKind = "Video"
	MediaUnknown MediaKind = ""
)

// MemoryRecord is one manifest entry. It is built once by NewMemoryRecord
// and is read-only afterwards.
type MemoryRecord struct {
	capturedAt        time.Time
	authorizationLink string
	locationText      string
	mediaKind         MediaKind
	latitude          *float64
	longitude         *float64
}

// NewMemoryRecord builds a record. When lat/lon are nil and locationText
// encodes a coordinate pair, the coordinates are derived here and never
// re-parsed later.
func NewMemoryRecord(capturedAt time.Time, authorizationLink, locationText string, kind MediaKind, lat, lon *float64) MemoryRecord {
	r := MemoryRecord{
		capturedAt:        capturedAt.UTC(),
		authorizationLink: authorizationLink,
		locationText:      locationText,
		mediaKind:         kind,
	}
	if lat != nil && lon != nil {
		la, lo := *lat, *lon
		r.latitude, r.longitude = &la, &lo
		return r
	}
	if la, lo, ok := normalize.ParseCoordinates(locationText); ok {
		r.latitude, r.longitude = &la, &lo
	}
	return r
}

func (r MemoryRecord) CapturedAt() time.Time { return r.capturedAt }
func (r MemoryRecord) AuthorizationLink() string { return r.authorizationLink }
func (r MemoryRecord) LocationText() string { return r.locationText }
func (r MemoryRecord) Kind() MediaKind { return r.mediaKind }

// Coordinates returns the record's latitude and longitude, ok=false when the
// record has no location.
func (r MemoryRecord) Coordinates() (lat, lon float64, ok bool) {
	if r.latitude == nil || r.longitude == nil {
		return 0, 0, false
	}
	return *r.latitude, *r.longitude, true
}

// BaseFilename is the extension-less output name, e.g. "2023-05-01_10-00-00".
// Records captured in the same second share a name.
func (r MemoryRecord) BaseFilename() string {
	return normalize.BaseFilename(r.capturedAt)
}
