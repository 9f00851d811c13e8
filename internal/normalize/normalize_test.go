package normalize

import (
	"testing"
	"time"
)

func TestParseCaptureTime(t *testing.T) {
	got, err := ParseCaptureTime("2023-05-01 10:00:00 UTC")
	if err != nil {
		t.Fatalf("ParseCaptureTime: %v", err)
	}
	want := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("expected UTC location, got %v", got.Location())
	}
}

func TestParseCaptureTime_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "yesterday", "2023/05/01 10:00:00"} {
		if _, err := ParseCaptureTime(s); err == nil {
			t.Errorf("ParseCaptureTime(%q): expected error", s)
		}
	}
}

func TestBaseFilename(t *testing.T) {
	ts := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)
	if got := BaseFilename(ts); got != "2023-05-01_10-00-00" {
		t.Errorf("BaseFilename = %q", got)
	}
	// Non-UTC inputs are rendered in UTC.
	est := time.FixedZone("EST", -5*3600)
	if got := BaseFilename(ts.In(est)); got != "2023-05-01_10-00-00" {
		t.Errorf("BaseFilename (EST) = %q", got)
	}
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		in       string
		lat, lon float64
		ok       bool
	}{
		{"37.7749, -122.4194", 37.7749, -122.4194, true},
		{"Latitude, Longitude: -33.8688, 151.2093", -33.8688, 151.2093, true},
		{"0,0", 0, 0, true},
		{"", 0, 0, false},
		{"Somewhere in Paris", 0, 0, false},
		{"12.5", 0, 0, false},
	}
	for _, tt := range tests {
		lat, lon, ok := ParseCoordinates(tt.in)
		if ok != tt.ok || lat != tt.lat || lon != tt.lon {
			t.Errorf("ParseCoordinates(%q) = (%v, %v, %v), want (%v, %v, %v)",
				tt.in, lat, lon, ok, tt.lat, tt.lon, tt.ok)
		}
	}
}

func TestExtensionFromURL(t *testing.T) {
	tests := map[string]string{
		"https://cdn.example.com/media/abc.jpg":                 ".jpg",
		"https://cdn.example.com/media/abc.mp4?sig=xyz&exp=10":  ".mp4",
		"https://cdn.example.com/media/abc":                     ".jpg",
		"https://cdn.example.com/media.d/abc?name=clip.mp4":     ".jpg",
		"https://cdn.example.com/media/abc.png#frag":            ".png",
		"https://cdn.example.com":                               ".jpg",
	}
	for in, want := range tests {
		if got := ExtensionFromURL(in); got != want {
			t.Errorf("ExtensionFromURL(%q) = %q, want %q", in, got, want)
		}
	}
}
