package driven

import (
	"context"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

// TableReader reads tabular records (e.g., CSV files) into the core's table form.
type TableReader interface {
	// Exists reports whether a table is available at path.
	Exists(path string) bool

	// ReadTable reads the header and every row of the table at path.
	// Cells are returned verbatim; missing-value handling belongs to the core.
	ReadTable(ctx context.Context, path string) (*domain.Table, error)
}

// TableWriter writes tables out in the column order of the table header.
type TableWriter interface {
	// WriteTable creates or truncates path and writes the table to it.
	WriteTable(ctx context.Context, path string, table *domain.Table) error
}
