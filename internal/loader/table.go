package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"healthinsights/internal/types"
)

// LoadTable reads a delimited file with a header row into RawRecords, one per
// line, preserving file order. required lists the columns the catalog maps
// from this source; a missing column is a schema mismatch, not a per-row
// problem.
func LoadTable(d Descriptor, required []string) ([]types.RawRecord, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, &LoadError{Source: d.Name, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiterRune(d.Delimiter)
	r.FieldsPerRecord = -1 // ragged rows are tolerated; short rows read as blanks

	header, err := r.Read()
	if err != nil {
		return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("read header: %w", err)}
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}
	if _, ok := col[d.KeyColumn]; !ok {
		return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("key column %q not in header", d.KeyColumn)}
	}
	for _, c := range required {
		if _, ok := col[c]; !ok {
			return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("expected column %q not in header", c)}
		}
	}

	var records []types.RawRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: d.Name, Err: err}
		}
		get := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		rec := types.RawRecord{
			GeoID:  get(d.KeyColumn),
			Values: make(map[string]string, len(required)),
			Source: d.Name,
		}
		if rec.GeoID == "" {
			return nil, &LoadError{Source: d.Name, Err: fmt.Errorf("row with empty %s", d.KeyColumn)}
		}
		if d.VintageColumn != "" {
			rec.Vintage = get(d.VintageColumn)
		}
		for _, c := range required {
			rec.Values[c] = get(c)
		}
		records = append(records, rec)
	}
	return records, nil
}

func delimiterRune(s string) rune {
	if s == "" {
		return ','
	}
	return []rune(s)[0]
}
