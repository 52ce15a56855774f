package core

import (
	"fmt"
	"strconv"
)

// DefaultPreviewRows is the number of rows shown in a stage preview.
const DefaultPreviewRows = 5

// Table is an ordered set of equally long, uniquely named columns.
// Pipeline stages never modify a Table in place; they return a new one.
type Table struct {
	Columns []Column

	// rows keeps the row count once every column has been projected away.
	rows int
}

// newTable builds a table from columns holding rows values each.
func newTable(cols []Column, rows int) Table {
	t := Table{Columns: cols}
	if len(cols) == 0 {
		t.rows = rows
	}
	return t
}

// NumRows returns the shared row count of the table. A table without
// columns still has rows when it was projected from one that had them.
func (t Table) NumRows() int {
	if len(t.Columns) == 0 {
		return t.rows
	}
	return len(t.Columns[0].Values)
}

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// NumericColumns returns the names of numeric columns in order.
func (t Table) NumericColumns() []string {
	var names []string
	for _, c := range t.Columns {
		if c.Kind == KindNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// Validate checks that all columns have the same length and unique names.
func (t Table) Validate() error {
	seen := make(map[string]bool, len(t.Columns))
	rows := t.NumRows()
	for _, c := range t.Columns {
		if seen[c.Name] {
			return fmt.Errorf("duplicate column name %q", c.Name)
		}
		seen[c.Name] = true
		if len(c.Values) != rows {
			return fmt.Errorf("column %q has %d values, want %d", c.Name, len(c.Values), rows)
		}
	}
	return nil
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	cols := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		cols[i] = Column{Name: c.Name, Kind: c.Kind, Values: vals}
	}
	return newTable(cols, t.NumRows())
}

// Head returns a copy holding at most the first n rows.
func (t Table) Head(n int) Table {
	if n < 0 {
		n = 0
	}
	if n > t.NumRows() {
		n = t.NumRows()
	}
	cols := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		vals := make([]Value, n)
		copy(vals, c.Values[:n])
		cols[i] = Column{Name: c.Name, Kind: c.Kind, Values: vals}
	}
	return newTable(cols, n)
}

// Records renders the table as string rows (without the header).
// Missing cells are rendered as empty strings.
func (t Table) Records() [][]string {
	rows := t.NumRows()
	out := make([][]string, rows)
	for i := 0; i < rows; i++ {
		rec := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			rec[j] = FormatValue(c.Kind, c.Values[i])
		}
		out[i] = rec
	}
	return out
}

// FormatValue renders a cell the way it is written to CSV.
// Numbers use the shortest representation that round-trips ("2", "2.5").
func FormatValue(kind Kind, v Value) string {
	if v.Missing {
		return ""
	}
	if kind == KindNumeric {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}
