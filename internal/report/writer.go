package report

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/memdl/internal/model"
)

// Writer streams OutcomeRow records into a Parquet file. It is not safe for
// concurrent use; the orchestrator writes from its aggregation goroutine.
type Writer struct {
	file   *os.File
	writer *parquet.GenericWriter[model.OutcomeRow]
	rows   int64
}

// Create truncates path and returns a Writer for it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report file: %w", err)
	}
	w := parquet.NewGenericWriter[model.OutcomeRow](f)
	return &Writer{file: f, writer: w}, nil
}

// Write appends one row.
func (w *Writer) Write(row model.OutcomeRow) error {
	if _, err := w.writer.Write([]model.OutcomeRow{row}); err != nil {
		return fmt.Errorf("write report row: %w", err)
	}
	w.rows++
	return nil
}

// Rows returns how many rows have been written.
func (w *Writer) Rows() int64 {
	return w.rows
}

// Close flushes the footer and closes the file.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close report writer: %w", err)
	}
	return w.file.Close()
}
