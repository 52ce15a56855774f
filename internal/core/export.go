package core

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the name of the single sheet in spreadsheet exports.
const ExportSheetName = "Sheet1"

// Export serializes t in the requested format. sourceName is the uploaded
// file name; the artifact name keeps its base and swaps the extension.
func Export(t Table, format Format, sourceName string) (ExportArtifact, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatCSV:
		data, err = EncodeCSV(t)
	case FormatSpreadsheet:
		data, err = EncodeSpreadsheet(t)
	default:
		return ExportArtifact{}, fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return ExportArtifact{}, err
	}

	return ExportArtifact{
		Data:     data,
		MIMEType: format.MIMEType(),
		FileName: ExportFileName(sourceName, format),
	}, nil
}

// EncodeCSV writes the header line followed by one line per row.
// There is no index column and lines end with "\n".
func EncodeCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.ColumnNames()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	if err := w.WriteAll(t.Records()); err != nil {
		return nil, fmt.Errorf("write csv rows: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeSpreadsheet writes a workbook with a single sheet holding the header
// row and the data rows. Numbers are stored as numeric cells and missing
// values as empty cells.
func EncodeSpreadsheet(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet != ExportSheetName {
		if err := f.SetSheetName(sheet, ExportSheetName); err != nil {
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(ExportSheetName)
	if err != nil {
		return nil, fmt.Errorf("open sheet writer: %w", err)
	}

	header := make([]interface{}, len(t.Columns))
	for i, name := range t.ColumnNames() {
		header[i] = name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i := 0; i < t.NumRows(); i++ {
		row := make([]interface{}, len(t.Columns))
		for j, c := range t.Columns {
			v := c.Values[i]
			switch {
			case v.Missing:
				row[j] = nil
			case c.Kind == KindNumeric:
				row[j] = v.Num
			default:
				row[j] = v.Str
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
