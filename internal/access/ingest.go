package access

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

var (
	// ErrParse reports a file whose structure does not match the device
	// export schema (no rows reach the timestamp column).
	ErrParse = errors.New("unrecognized export structure")

	// ErrValidation reports an export with zero usable records after
	// filtering unknown users and unparseable timestamps.
	ErrValidation = errors.New("no valid records in export")
)

// Ingest reads one raw device export and returns its normalized records.
// The file is semicolon-delimited with one header line; rows for unknown
// users and rows with malformed timestamps are dropped.
func Ingest(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadExport(f)
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", path, err)
	}
	return records, nil
}

// ReadExport parses an export stream. See Ingest.
func ReadExport(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: no data rows after header", ErrParse)
	}

	var records []Record
	sawTimestampColumn := false
	for _, row := range rows[1:] {
		if len(row) <= timestampCol {
			continue
		}
		sawTimestampColumn = true

		rec := FromRow(row)
		if strings.EqualFold(rec.Usuario, UnknownUser) {
			continue
		}
		ts, err := time.Parse(TimestampLayout, rec.Data)
		if err != nil {
			continue
		}
		rec.SetTimestamp(ts)
		records = append(records, rec)
	}

	if !sawTimestampColumn {
		return nil, fmt.Errorf("%w: timestamp column missing", ErrParse)
	}
	if len(records) == 0 {
		return nil, ErrValidation
	}
	return records, nil
}
