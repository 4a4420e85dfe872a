package workbook

// Table is a header row plus data rows, as read from one sheet or CSV file.
// Every row has exactly len(Headers) cells.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// Index returns the position of the first header equal to name, or -1.
// Duplicate headers resolve to the leftmost column.
func (t Table) Index(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Has reports whether every named column is present.
func (t Table) Has(names ...string) bool {
	for _, n := range names {
		if t.Index(n) < 0 {
			return false
		}
	}
	return true
}

// WithHeaders returns a shallow copy of t whose header row is replaced.
func (t Table) WithHeaders(headers []string) Table {
	out := t
	out.Headers = headers
	return out
}

// Row is a read-only view over one data row, addressed by column name.
type Row struct {
	table *Table
	cells []string
}

// Row returns the i-th data row.
func (t *Table) Row(i int) Row {
	return Row{table: t, cells: t.Rows[i]}
}

// Get returns the cell for column name and whether the column exists.
func (r Row) Get(name string) (string, bool) {
	idx := r.table.Index(name)
	if idx < 0 || idx >= len(r.cells) {
		return "", false
	}
	return r.cells[idx], true
}
