package domain

import "strconv"

// Table is a delimited file held in memory: a header row plus data rows.
// Rows may be ragged; Cell treats absent trailing cells as empty.
type Table struct {
	// Columns holds the header names, unique after NewTable.
	Columns []string

	// Rows holds the data rows in file order.
	Rows [][]string
}

// NewTable builds a table, renaming repeated header names so that every
// column can be addressed by name. A second "a" becomes "a.1", a third "a.2".
func NewTable(header []string, rows [][]string) *Table {
	return &Table{
		Columns: UniqueColumns(header),
		Rows:    rows,
	}
}

// UniqueColumns returns header names with repeats suffixed by ".N".
func UniqueColumns(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))
	for _, h := range header {
		taken[h] = true
	}

	for i, h := range header {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			out[i] = h
			continue
		}
		name := h + "." + strconv.Itoa(n)
		for taken[name] {
			n++
			name = h + "." + strconv.Itoa(n)
		}
		seen[h] = n + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	return t.Index(name) >= 0
}

// Cell returns the cell at (row, col), or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns every cell of the given column in row order.
func (t *Table) Column(col int) []string {
	cells := make([]string, len(t.Rows))
	for i := range t.Rows {
		cells[i] = t.Cell(i, col)
	}
	return cells
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
