package models

// RawTable is an untyped sheet as loaded from the workbook: a header row
// plus string cells. Column lookup is by header name; the mapping to typed
// records happens only at the load boundary.
type RawTable struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewRawTable builds a RawTable and its column index.
func NewRawTable(name string, columns []string, rows [][]string) *RawTable {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := index[c]; !ok {
			index[c] = i
		}
	}
	return &RawTable{Name: name, Columns: columns, Rows: rows, index: index}
}

// HasColumn reports whether the table has a column with the given header.
func (t *RawTable) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Value returns the cell at row i under the named column. Rows shorter
// than the header are treated as padded with empty cells.
func (t *RawTable) Value(i int, column string) string {
	j, ok := t.index[column]
	if !ok || j >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][j]
}

// RenameColumns applies a header rename map in place, rebuilding the index.
// Used for column-map overrides at the load boundary.
func (t *RawTable) RenameColumns(renames map[string]string) {
	if len(renames) == 0 {
		return
	}
	for i, c := range t.Columns {
		if to, ok := renames[c]; ok {
			t.Columns[i] = to
		}
	}
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		if _, ok := t.index[c]; !ok {
			t.index[c] = i
		}
	}
}

// Table is one named output table: ordered columns and typed cells.
// Cell values may be string, int, float64, time.Time, decimal.Decimal,
// decimal.NullDecimal or nil; the sink renders null/nil as an empty cell.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// AddRow appends one row of cells in column order.
func (t *Table) AddRow(cells ...any) {
	t.Rows = append(t.Rows, cells)
}
