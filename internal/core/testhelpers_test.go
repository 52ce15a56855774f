package core

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// mustParseCSV parses a CSV fixture or fails the test.
func mustParseCSV(t *testing.T, data string) Table {
	t.Helper()
	tbl, err := Parse(SourceFile{Name: "test.csv", Data: []byte(data), Format: FormatCSV})
	require.NoError(t, err)
	require.NoError(t, tbl.Validate())
	return tbl
}

// xlsxFixture builds a workbook whose first sheet holds rows.
func xlsxFixture(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

// cells renders a table as strings, with "<nil>" for missing cells.
func cells(tbl Table) [][]string {
	out := make([][]string, tbl.NumRows())
	for i := range out {
		row := make([]string, len(tbl.Columns))
		for j, c := range tbl.Columns {
			if c.Values[i].Missing {
				row[j] = "<nil>"
				continue
			}
			row[j] = FormatValue(c.Kind, c.Values[i])
		}
		out[i] = row
	}
	return out
}

func num(f float64) Value { return NumberValue(f) }
func txt(s string) Value  { return TextValue(s) }
func nan() Value          { return MissingValue() }

func numCol(name string, vals ...Value) Column {
	return Column{Name: name, Kind: KindNumeric, Values: vals}
}

func textCol(name string, vals ...Value) Column {
	return Column{Name: name, Kind: KindText, Values: vals}
}
