// Package tabular reads and writes corpus tables as CSV files.
package tabular

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
	"github.com/custodia-labs/cantus-corpus/internal/core/ports/driven"
)

// Ensure CSV implements the interfaces.
var (
	_ driven.TableReader = (*CSV)(nil)
	_ driven.TableWriter = (*CSV)(nil)
)

const utf8BOM = "\ufeff"

// CSV is a comma separated table store on the local filesystem.
type CSV struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
}

// NewCSV creates a comma delimited store.
func NewCSV() *CSV {
	return &CSV{Comma: ','}
}

func (c *CSV) comma() rune {
	if c.Comma == 0 {
		return ','
	}
	return c.Comma
}

// Exists reports whether path names a regular file.
func (c *CSV) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ReadTable reads a CSV file with a header line. Short rows are padded
// with empty cells and extra cells are dropped.
func (c *CSV) ReadTable(ctx context.Context, path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = c.comma()
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s has no header", domain.ErrConfiguration, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	columns[0] = strings.TrimPrefix(columns[0], utf8BOM)

	table := domain.NewTable(columns)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		table.Append(record)
	}
	return table, nil
}

// WriteTable writes table with a header line, creating parent directories.
func (c *CSV) WriteTable(ctx context.Context, path string, table *domain.Table) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	w.Comma = c.comma()
	if err := w.Write(table.Columns); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
