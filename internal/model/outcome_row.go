package model

import (
	"time"

	"github.com/google/uuid"
)

// Outcome statuses recorded in the run report.
const (
	StatusDownloaded = "downloaded"
	StatusSkipped    = "skipped"
	StatusFailed     = "failed"
)

// OutcomeRow is one line of the Parquet run report.
type OutcomeRow struct {
	RunID      string    `parquet:"run_id"`
	Filename   string    `parquet:"filename"`
	CapturedAt time.Time `parquet:"captured_at"`
	Status     string    `parquet:"status"`
	Path       string    `parquet:"path,optional"`
	Bytes      int64     `parquet:"bytes"`
	Error      string    `parquet:"error,optional"`
}

// OutcomeRowFor builds the report row for a dispatched record.
func OutcomeRowFor(runID uuid.UUID, o Outcome) OutcomeRow {
	row := OutcomeRow{
		RunID:      runID.String(),
		Filename:   o.Record.BaseFilename(),
		CapturedAt: o.Record.CapturedAt(),
		Path:       o.Path,
		Bytes:      o.Bytes,
	}
	if o.Succeeded() {
		row.Status = StatusDownloaded
	} else {
		row.Status = StatusFailed
		row.Error = o.Err.Error()
	}
	return row
}

// SkippedRowFor builds the report row for a record excluded by the
// skip-existing pre-pass.
func SkippedRowFor(runID uuid.UUID, r MemoryRecord) OutcomeRow {
	return OutcomeRow{
		RunID:      runID.String(),
		Filename:   r.BaseFilename(),
		CapturedAt: r.CapturedAt(),
		Status:     StatusSkipped,
	}
}
