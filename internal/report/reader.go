package report

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/memdl/internal/model"
)

const readBatchSize = 256

// ReadAll loads every row of a report file.
func ReadAll(path string) ([]model.OutcomeRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat report file: %w", err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	r := parquet.NewGenericReader[model.OutcomeRow](pf)
	defer r.Close()

	var all []model.OutcomeRow
	buf := make([]model.OutcomeRow, readBatchSize)
	for {
		n, readErr := r.Read(buf)
		all = append(all, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read report rows: %w", readErr)
		}
	}
	return all, nil
}
