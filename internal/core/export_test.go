package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestEncodeCSV_DedupFillSelect(t *testing.T) {
	in := mustParseCSV(t, "a,b\n1,\n1,2\n3,\n")

	deduped := RemoveDuplicates(in)
	require.Equal(t, 3, deduped.NumRows())

	filled, err := FillMissingWithMean(deduped)
	require.NoError(t, err)

	selected, err := SelectColumns(filled, []string{"b"})
	require.NoError(t, err)

	data, err := EncodeCSV(selected)
	require.NoError(t, err)
	assert.Equal(t, "b\n2\n2\n2\n", string(data))
}

func TestEncodeCSV(t *testing.T) {
	tests := []struct {
		name string
		tbl  Table
		want string
	}{
		{
			name: "missing cells are empty",
			tbl: Table{Columns: []Column{
				numCol("n", num(1.5), nan()),
				textCol("t", nan(), txt("x")),
			}},
			want: "n,t\n1.5,\n,x\n",
		},
		{
			name: "quotes fields that need it",
			tbl:  Table{Columns: []Column{textCol("t", txt("a,b"), txt(`say "hi"`))}},
			want: "t\n\"a,b\"\n\"say \"\"hi\"\"\"\n",
		},
		{
			name: "header only",
			tbl:  Table{Columns: []Column{numCol("a"), numCol("b")}},
			want: "a,b\n",
		},
		{
			name: "large and small numbers",
			tbl:  Table{Columns: []Column{numCol("v", num(1e21), num(0.000001))}},
			want: "v\n1000000000000000000000\n0.000001\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeCSV(tt.tbl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestEncodeCSV_RoundTrip(t *testing.T) {
	in := mustParseCSV(t, "id,score,name\n1,9.5,alice\n2,,\"smith, bob\"\n3,-0.25,NA\n")

	data, err := EncodeCSV(in)
	require.NoError(t, err)

	out, err := Parse(SourceFile{Name: "round.csv", Data: data, Format: FormatCSV})
	require.NoError(t, err)

	assert.Equal(t, in.ColumnNames(), out.ColumnNames())
	for i := range in.Columns {
		assert.Equal(t, in.Columns[i].Kind, out.Columns[i].Kind, in.Columns[i].Name)
	}
	assert.Equal(t, cells(in), cells(out))
}

func TestEncodeSpreadsheet(t *testing.T) {
	tbl := Table{Columns: []Column{
		numCol("a", num(1), nan(), num(2.5)),
		textCol("name", txt("x"), txt("y"), nan()),
	}}

	data, err := EncodeSpreadsheet(tbl)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"a", "name"}, rows[0])
	assert.Equal(t, []string{"1", "x"}, rows[1])
	assert.Equal(t, []string{"", "y"}, rows[2])
	assert.Equal(t, "2.5", rows[3][0])

	typ, err := f.GetCellType(ExportSheetName, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "numbers must be stored as numeric cells")
}

func TestEncodeSpreadsheet_RoundTrip(t *testing.T) {
	in := mustParseCSV(t, "id,score,name\n1,9.5,alice\n2,,bob\n")

	data, err := EncodeSpreadsheet(in)
	require.NoError(t, err)

	out, err := Parse(SourceFile{Name: "round.xlsx", Data: data, Format: FormatSpreadsheet})
	require.NoError(t, err)

	assert.Equal(t, in.ColumnNames(), out.ColumnNames())
	assert.Equal(t, KindNumeric, out.Columns[1].Kind)
	assert.Equal(t, cells(in), cells(out))
}

func TestEncodeSpreadsheet_RoundTripKeepsPrecision(t *testing.T) {
	in := Table{Columns: []Column{numCol("v", num(1.0/3), num(123456789.123456789), num(0.1+0.2))}}

	data, err := EncodeSpreadsheet(in)
	require.NoError(t, err)

	out, err := Parse(SourceFile{Name: "p.xlsx", Data: data, Format: FormatSpreadsheet})
	require.NoError(t, err)
	require.Equal(t, KindNumeric, out.Columns[0].Kind)
	for i, v := range in.Columns[0].Values {
		assert.Equal(t, v.Num, out.Columns[0].Values[i].Num, "row %d", i)
	}
}

func TestExport(t *testing.T) {
	tbl := mustParseCSV(t, "a\n1\n")

	art, err := Export(tbl, FormatCSV, "report.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "report.csv", art.FileName)
	assert.Equal(t, MIMETypeCSV, art.MIMEType)
	assert.Equal(t, "a\n1\n", string(art.Data))

	art, err = Export(tbl, FormatSpreadsheet, "data.csv")
	require.NoError(t, err)
	assert.Equal(t, "data.xlsx", art.FileName)
	assert.Equal(t, MIMETypeSpreadsheet, art.MIMEType)
	assert.NotEmpty(t, art.Data)

	_, err = Export(tbl, Format(42), "data.csv")
	assert.ErrorContains(t, err, "unsupported export format")
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		source string
		format Format
		want   string
	}{
		{"report.xlsx", FormatCSV, "report.csv"},
		{"data.csv", FormatSpreadsheet, "data.xlsx"},
		{"archive.v2.csv", FormatCSV, "archive.v2.csv"},
		{"noext", FormatCSV, "noext.csv"},
		{"", FormatSpreadsheet, "export.xlsx"},
		{".csv", FormatCSV, "export.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.source+"->"+tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ExportFileName(tt.source, tt.format))
		})
	}
}

func TestFormat_MIMEType(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.MIMEType())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatSpreadsheet.MIMEType())
}
