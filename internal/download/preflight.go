package download

import (
	"os"
	"path/filepath"

	"github.com/gyeh/memdl/internal/model"
	"github.com/gyeh/memdl/internal/normalize"
)

// existingExts are probed before a record's real extension is known. A
// record stored under any other extension is downloaded again.
var existingExts = []string{normalize.ImageExt, normalize.VideoExt}

// Partition splits records into those that need fetching and those already
// present in outputDir. With skipExisting false every record is work.
func Partition(records []model.MemoryRecord, outputDir string, skipExisting bool) (work, skipped []model.MemoryRecord) {
	work = make([]model.MemoryRecord, 0, len(records))
	for _, rec := range records {
		if skipExisting && Exists(outputDir, rec) {
			skipped = append(skipped, rec)
			continue
		}
		work = append(work, rec)
	}
	return work, skipped
}

// Exists reports whether rec already has an image or video file in outputDir.
func Exists(outputDir string, rec model.MemoryRecord) bool {
	base := filepath.Join(outputDir, rec.BaseFilename())
	for _, ext := range existingExts {
		if _, err := os.Stat(base + ext); err == nil {
			return true
		}
	}
	return false
}
