package batch

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/use-agent/chartshot/models"
)

// ReadURLs reads the input CSV and returns one entry per data row, taken
// from the column named urlColumn. When that header is missing the first
// column is used instead and a notice is logged. Values are trimmed;
// blank entries are kept in place (the driver skips them) so progress
// indices line up with the input rows.
func ReadURLs(path, urlColumn string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	rows, err := r.ReadAll()
	if err != nil {
		return nil, models.NewCaptureError(models.ErrCodeInvalidInput, "parse input CSV", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header, rows := rows[0], rows[1:]
	col := -1
	for i, name := range header {
		if strings.TrimSpace(name) == urlColumn {
			col = i
			break
		}
	}
	if col < 0 {
		col = 0
		slog.Warn("URL column not found, using first column",
			"wanted", urlColumn, "using", strings.TrimSpace(header[0]))
	}

	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		v := ""
		if col < len(row) {
			v = strings.TrimSpace(row[col])
		}
		urls = append(urls, v)
	}
	return urls, nil
}
