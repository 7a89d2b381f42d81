// Package ledger persists the consolidated history of access records
// between runs. The file is semicolon-delimited with a header row; updates
// go through a temp file and an atomic rename so a crash mid-write cannot
// truncate existing history.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Raphaelsan/csv/internal/access"
)

// Load reads the ledger at path. A missing file means no prior history and
// returns an empty set; any other error propagates. Rows whose timestamp no
// longer parses are dropped, and the derived fields are recomputed from the
// timestamp rather than trusted from disk.
func Load(path string) ([]access.Record, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}

	var records []access.Record
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec := access.FromRow(row)
		ts, err := time.Parse(access.TimestampLayout, rec.Data)
		if err != nil {
			continue // row corrupted by a partial write from an earlier run
		}
		rec.SetTimestamp(ts)
		records = append(records, rec)
	}
	return records, nil
}

// Merge combines previously stored records with a new batch, dropping
// duplicates on the (user, timestamp) key. Existing records come first, so
// on a collision the stored row always wins over the incoming one.
func Merge(existing, batch []access.Record) []access.Record {
	type key struct {
		user string
		ts   time.Time
	}
	seen := make(map[key]struct{}, len(existing)+len(batch))
	merged := make([]access.Record, 0, len(existing)+len(batch))
	for _, set := range [][]access.Record{existing, batch} {
		for _, r := range set {
			k := key{r.Usuario, r.Timestamp}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}

// Save writes the full record set to path, replacing prior contents. The
// data goes to a temp file in the same directory first and is renamed into
// place; the temp file is removed on every failure path.
func Save(path string, records []access.Record) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	w.Comma = ';'
	if err = w.Write(access.Columns); err != nil {
		return err
	}
	for _, r := range records {
		if err = w.Write(r.Row()); err != nil {
			return err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing ledger %s: %w", path, err)
	}
	return nil
}
