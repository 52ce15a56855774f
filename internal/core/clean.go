package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// RemoveDuplicates drops every row that equals an earlier row in all columns.
// Missing cells compare equal to each other. The first occurrence of each row
// is kept and the surviving rows keep their relative order.
func RemoveDuplicates(t Table) Table {
	rows := t.NumRows()
	keep := make([]int, 0, rows)
	seen := make(map[string]struct{}, rows)

	var key strings.Builder
	for i := 0; i < rows; i++ {
		key.Reset()
		for _, c := range t.Columns {
			writeCellKey(&key, c.Kind, c.Values[i])
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keep = append(keep, i)
	}

	cols := make([]Column, len(t.Columns))
	for j, c := range t.Columns {
		vals := make([]Value, len(keep))
		for n, i := range keep {
			vals[n] = c.Values[i]
		}
		cols[j] = Column{Name: c.Name, Kind: c.Kind, Values: vals}
	}
	return newTable(cols, len(keep))
}

// writeCellKey appends an unambiguous encoding of v to b.
// Strings are length-prefixed so that no two rows share a key.
func writeCellKey(b *strings.Builder, kind Kind, v Value) {
	switch {
	case v.Missing:
		b.WriteString("m;")
	case kind == KindText:
		b.WriteString("s")
		b.WriteString(strconv.Itoa(len(v.Str)))
		b.WriteByte(':')
		b.WriteString(v.Str)
		b.WriteByte(';')
	default:
		n := v.Num
		if n == 0 {
			n = 0 // -0 and 0 are the same value
		}
		b.WriteString("n")
		b.WriteString(strconv.FormatUint(math.Float64bits(n), 16))
		b.WriteByte(';')
	}
}

// FillMissingWithMean replaces missing cells of numeric columns with the mean
// of that column's present values. Text columns are returned unchanged.
//
// A numeric column without any present value has no mean; it is left as is
// and reported in the returned error as an *UndefinedMeanError. The returned
// table is always complete, so callers may treat such errors as warnings
// (see IsRecoverable).
func FillMissingWithMean(t Table) (Table, error) {
	out := t.Clone()
	var errs []error

	for j := range out.Columns {
		col := &out.Columns[j]
		if col.Kind != KindNumeric {
			continue
		}

		mean, ok := ColumnMean(*col)
		if !ok {
			if hasMissing(*col) {
				errs = append(errs, &UndefinedMeanError{Column: col.Name})
			}
			continue
		}
		for i, v := range col.Values {
			if v.Missing {
				col.Values[i] = NumberValue(mean)
			}
		}
	}

	return out, errors.Join(errs...)
}

// ColumnMean returns the arithmetic mean of the present values of a numeric
// column. ok is false when the column is not numeric or has no present value.
func ColumnMean(c Column) (mean float64, ok bool) {
	if c.Kind != KindNumeric {
		return 0, false
	}
	var sum float64
	var n int
	for _, v := range c.Values {
		if v.Missing {
			continue
		}
		sum += v.Num
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func hasMissing(c Column) bool {
	for _, v := range c.Values {
		if v.Missing {
			return true
		}
	}
	return false
}

// SelectColumns projects the table onto names, in the given order.
// A nil names keeps every column; an empty names keeps the rows but no
// column. Unknown names yield *ColumnNotFoundError.
func SelectColumns(t Table, names []string) (Table, error) {
	if names == nil {
		return t.Clone(), nil
	}

	cols := make([]Column, 0, len(names))
	picked := make(map[string]bool, len(names))
	for _, name := range names {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			return Table{}, &ColumnNotFoundError{Column: name, Available: t.ColumnNames()}
		}
		// Selecting a column twice would break name uniqueness.
		if picked[name] {
			continue
		}
		picked[name] = true

		src := t.Columns[idx]
		vals := make([]Value, len(src.Values))
		copy(vals, src.Values)
		cols = append(cols, Column{Name: src.Name, Kind: src.Kind, Values: vals})
	}
	return newTable(cols, t.NumRows()), nil
}
