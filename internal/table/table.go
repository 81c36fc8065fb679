// Package table reads uploaded CSV and XLSX files into named-column rows.
package table

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/plot-geojson/internal/feature"
)

// Table is a parsed upload: a header row and the data rows keyed by it.
type Table struct {
	Columns []string
	Rows    []feature.Row
}

// Options configures how an upload is read.
type Options struct {
	CSV   CSVOptions
	Sheet string // XLSX sheet name; first sheet when empty
}

// FromRecords builds a Table from a header and raw records. Blank records are
// dropped. Short records leave their trailing columns absent; cells beyond
// the header are ignored.
func FromRecords(header []string, records [][]string) *Table {
	t := &Table{Columns: make([]string, len(header))}
	for i, h := range header {
		t.Columns[i] = strings.TrimSpace(h)
	}

	for _, rec := range records {
		if blank(rec) {
			continue
		}
		row := make(feature.Row, len(t.Columns))
		for i, col := range t.Columns {
			if i >= len(rec) || col == "" {
				continue
			}
			row[col] = rec[i]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Head returns at most n rows for previewing.
func (t *Table) Head(n int) []feature.Row {
	if n < 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}

// Read parses r as CSV or XLSX, chosen by the extension of name.
func Read(ctx context.Context, name string, r io.Reader, opts Options) (*Table, error) {
	if isXLSX(name) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, eris.Wrap(err, "table: read upload")
		}
		return ReadXLSXBytes(data, XLSXOptions{SheetName: opts.Sheet})
	}
	return ReadCSV(ctx, r, opts.CSV)
}

// ReadFile opens path and parses it with Read.
func ReadFile(ctx context.Context, path string, opts Options) (*Table, error) {
	if isXLSX(path) {
		return ReadXLSX(path, XLSXOptions{SheetName: opts.Sheet})
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "table: open %s", path)
	}
	defer f.Close()

	return ReadCSV(ctx, f, opts.CSV)
}

func isXLSX(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".xlsx")
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
