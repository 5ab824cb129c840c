package csv

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ToCsv renders the header plus one line per row into a byte buffer.
func ToCsv(rows []LedgerRow) (bytes.Buffer, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	if err := w.Write(headers); err != nil {
		return b, errors.Wrap(err, "error writing header to csv")
	}

	for _, row := range rows {
		if err := w.Write(row.GetRowForCsv()); err != nil {
			return b, errors.Wrap(err, "error writing record to csv")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return b, err
	}

	return b, nil
}

// WriteToFile writes the rows as CSV to path, creating parent directories and
// overwriting any existing file. Returns the number of data rows written.
func WriteToFile(path string, rows []LedgerRow) (int, error) {
	buf, err := ToCsv(rows)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, errors.Wrapf(err, "could not create output directory %s", dir)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, errors.Wrapf(err, "could not write %s", path)
	}

	return len(rows), nil
}
