package domain

import "strings"

// missingTokens are cell values treated as absent, in addition to blanks.
var missingTokens = map[string]struct{}{
	"nan": {}, "NaN": {}, "-nan": {}, "-NaN": {},
	"null": {}, "NULL": {}, "None": {},
	"NA": {}, "N/A": {}, "n/a": {}, "<NA>": {},
	"#N/A": {}, "#NA": {}, "#N/A N/A": {},
}

// IsMissing reports whether a raw cell value represents a missing value.
func IsMissing(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return true
	}
	_, ok := missingTokens[v]
	return ok
}

// Row is one record of a table keyed by column name.
// Columns absent from the table are absent from the row.
type Row map[string]string

// Value returns the cell for column and whether it holds a usable value.
func (r Row) Value(column string) (string, bool) {
	v, ok := r[column]
	if !ok || IsMissing(v) {
		return "", false
	}
	return v, true
}

// Table is a header plus rows, the contract between the core and tabular adapters.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// HasColumn reports whether the table header contains column.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Append adds a row built from values in column order.
func (t *Table) Append(values []string) {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(values) {
			row[c] = values[i]
		} else {
			row[c] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// RowNumber converts a zero-based data row index to its line number in a
// file with a header row.
func RowNumber(index int) int {
	return index + 2
}
