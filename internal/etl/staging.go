package etl

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/dataplatform-io/dynoshift/pkg/models"
	"github.com/dataplatform-io/dynoshift/pkg/utils"
)

var stagedHeader = []string{"row_id", "data", "created", "updated", "isDeleted"}

// StagingWriter writes transformed records to per-table CSV files in a
// local staging directory. Files are overwritten on every run and the
// relative path doubles as the object-store key, so it always uses forward
// slashes.
type StagingWriter struct {
	Dir string
}

func NewStagingWriter(dir string) *StagingWriter {
	return &StagingWriter{Dir: dir}
}

// Write stages one table's records and returns the staged file path.
func (w *StagingWriter) Write(table string, records []models.TransformedRecord) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create staging directory %s: %w", w.Dir, err)
	}

	path := fmt.Sprintf("%s/%s.csv", w.Dir, table)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create staging file %s: %w", path, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(stagedHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, rec := range records {
		row, err := utils.EnvelopeRow(rec)
		if err != nil {
			f.Close()
			return "", err
		}
		if err := cw.Write(row); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write record to %s: %w", path, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	// A close failure means the file may not have persisted; it must not
	// be uploaded.
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close staging file %s: %w", path, err)
	}
	return path, nil
}
