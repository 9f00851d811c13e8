package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gyeh/memdl/internal/manifest"
	"github.com/gyeh/memdl/internal/model"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memories_history.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeFile(t, `{
  "Saved Media": [
    {"Date": "2023-05-01 10:00:00 UTC", "Media Type": "Image", "Download Link": "https://example.com/a", "Location": "Latitude, Longitude: 37.7749, -122.4194"},
    {"Date": "2023-05-02 11:30:15 UTC", "Media Type": "Video", "Download Link": "https://example.com/b"}
  ]
}`)

	records, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	first := records[0]
	if !first.CapturedAt().Equal(time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected capture time %v", first.CapturedAt())
	}
	if first.Kind() != model.MediaImage {
		t.Errorf("expected image kind, got %q", first.Kind())
	}
	lat, lon, ok := first.Coordinates()
	if !ok || lat != 37.7749 || lon != -122.4194 {
		t.Errorf("unexpected coordinates (%v, %v, %v)", lat, lon, ok)
	}

	second := records[1]
	if second.BaseFilename() != "2023-05-02_11-30-15" {
		t.Errorf("unexpected filename %q", second.BaseFilename())
	}
	if _, _, ok := second.Coordinates(); ok {
		t.Error("expected no coordinates for the second record")
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writeFile(t, `{"Saved Media": []}`)
	records, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"bad json":    `{"Saved Media": [`,
		"missing key": `{"Something Else": []}`,
		"bad date":    `{"Saved Media": [{"Date": "May 1st", "Download Link": "https://example.com/a"}]}`,
		"no link":     `{"Saved Media": [{"Date": "2023-05-01 10:00:00 UTC", "Download Link": "  "}]}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := manifest.Load(writeFile(t, body))
			var me *manifest.ManifestError
			if !errors.As(err, &me) {
				t.Fatalf("expected ManifestError, got %v", err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := manifest.Load("/nonexistent/memories_history.json")
	var me *manifest.ManifestError
	if !errors.As(err, &me) {
		t.Fatalf("expected ManifestError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.json")
	doc := &manifest.Document{SavedMedia: []manifest.Entry{
		{Date: "2023-05-01 10:00:00 UTC", MediaType: "Image", DownloadLink: "https://example.com/a"},
	}}
	if err := manifest.Write(path, doc); err != nil {
		t.Fatalf("Write: %v", err)
	}
	records, err := manifest.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 || records[0].AuthorizationLink() != "https://example.com/a" {
		t.Errorf("unexpected records after round trip: %+v", records)
	}
}
