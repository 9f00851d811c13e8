package model

import (
	"testing"
	"time"
)

func TestNewMemoryRecord_DerivesCoordinates(t *testing.T) {
	ts := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewMemoryRecord(ts, "https://example.com/link", "37.7749, -122.4194", MediaImage, nil, nil)

	lat, lon, ok := r.Coordinates()
	if !ok {
		t.Fatal("expected coordinates to be derived from location text")
	}
	if lat != 37.7749 || lon != -122.4194 {
		t.Errorf("got (%v, %v), want (37.7749, -122.4194)", lat, lon)
	}
}

func TestNewMemoryRecord_ExplicitCoordinatesWin(t *testing.T) {
	lat, lon := 1.5, -2.5
	r := NewMemoryRecord(time.Now(), "link", "37.7749, -122.4194", MediaUnknown, &lat, &lon)

	gotLat, gotLon, ok := r.Coordinates()
	if !ok || gotLat != 1.5 || gotLon != -2.5 {
		t.Errorf("got (%v, %v, %v), want explicit (1.5, -2.5)", gotLat, gotLon, ok)
	}

	// The record keeps its own copy.
	lat = 99
	if got, _, _ := r.Coordinates(); got != 1.5 {
		t.Errorf("record coordinates changed with caller variable: %v", got)
	}
}

func TestNewMemoryRecord_NoLocation(t *testing.T) {
	r := NewMemoryRecord(time.Now(), "link", "", MediaVideo, nil, nil)
	if _, _, ok := r.Coordinates(); ok {
		t.Error("expected no coordinates")
	}
	r = NewMemoryRecord(time.Now(), "link", "Home", MediaVideo, nil, nil)
	if _, _, ok := r.Coordinates(); ok {
		t.Error("expected no coordinates for non-numeric location")
	}
}

func TestMemoryRecord_BaseFilename(t *testing.T) {
	ts := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewMemoryRecord(ts, "link", "", MediaImage, nil, nil)
	if got := r.BaseFilename(); got != "2023-05-01_10-00-00" {
		t.Errorf("BaseFilename = %q", got)
	}
	if !r.CapturedAt().Equal(ts) || r.AuthorizationLink() != "link" || r.Kind() != MediaImage {
		t.Errorf("accessors returned unexpected values: %+v", r)
	}
}
