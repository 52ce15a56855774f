package core

// parse.go turns uploaded bytes into a Table.
//
// Both formats share the same rules once cells are read as strings:
//   - The first row is the header. Blank names become "Unnamed: <i>" and
//     repeated names get ".1", ".2", ... suffixes.
//   - Short rows are padded with missing cells; long rows are an error.
//   - Cells matching a missing marker ("", "NA", "NaN", "NULL", ...) are missing.
//   - A column is numeric when every present cell parses as a float.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// missingMarkers are the cell contents treated as missing values.
var missingMarkers = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsMissingMarker reports whether a raw cell is read as a missing value.
func IsMissingMarker(s string) bool {
	return missingMarkers[s]
}

// Parse reads a SourceFile into a Table according to its declared format.
func Parse(src SourceFile) (Table, error) {
	if len(bytes.TrimSpace(src.Data)) == 0 {
		return Table{}, &ParseError{File: src.Name, Format: src.Format, Reason: "empty file"}
	}

	var (
		records [][]string
		err     error
	)
	switch src.Format {
	case FormatCSV:
		records, err = readCSVRecords(src.Data)
	case FormatSpreadsheet:
		records, err = readSpreadsheetRecords(src.Data)
	default:
		return Table{}, &ParseError{File: src.Name, Reason: fmt.Sprintf("unsupported format %s", src.Format)}
	}
	if err != nil {
		return Table{}, withSource(err, src)
	}

	t, err := buildTable(records)
	if err != nil {
		return Table{}, withSource(err, src)
	}
	return t, nil
}

// withSource stamps the file name and format onto a ParseError.
func withSource(err error, src SourceFile) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.File = src.Name
		pe.Format = src.Format
		return pe
	}
	return &ParseError{File: src.Name, Format: src.Format, Reason: "unreadable input", Err: err}
}

// readCSVRecords reads all comma-separated records.
// Row length is checked later against the header rather than by encoding/csv.
func readCSVRecords(data []byte) ([][]string, error) {
	r := csv.NewReader(newTextReader(bytes.NewReader(data)))
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "invalid csv", Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// readSpreadsheetRecords reads the first sheet of an XLSX workbook.
func readSpreadsheetRecords(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: "invalid spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "spreadsheet has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid spreadsheet: read sheet %q", sheets[0]), Err: err}
	}
	raw, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("invalid spreadsheet: read sheet %q", sheets[0]), Err: err}
	}
	return preferRawNumbers(rows, raw), nil
}

// preferRawNumbers swaps displayed numbers for the stored ones. The General
// format rounds to 15 significant digits, the stored value does not. Cells
// that do not display as a number (dates, percentages, booleans) keep their
// displayed text.
func preferRawNumbers(shown, raw [][]string) [][]string {
	for i, row := range shown {
		if i >= len(raw) {
			break
		}
		for j, cell := range row {
			if j >= len(raw[i]) {
				break
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				continue
			}
			if _, err := strconv.ParseFloat(raw[i][j], 64); err == nil {
				row[j] = raw[i][j]
			}
		}
	}
	return shown
}

// buildTable applies the header, padding and type inference rules.
func buildTable(records [][]string) (Table, error) {
	if len(records) == 0 {
		return Table{}, &ParseError{Reason: "empty file"}
	}

	names := normalizeHeader(records[0])
	if len(names) == 0 {
		return Table{}, &ParseError{Reason: "no columns found in header"}
	}
	dataRows := records[1:]

	raw := make([][]string, len(names))
	for i := range raw {
		raw[i] = make([]string, len(dataRows))
	}

	for r, row := range dataRows {
		if len(row) > len(names) {
			return Table{}, &ParseError{
				Reason: fmt.Sprintf("line %d: expected %d fields, saw %d", r+2, len(names), len(row)),
			}
		}
		for c := range names {
			if c < len(row) {
				raw[c][r] = row[c]
			}
		}
	}

	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = inferColumn(name, raw[i])
	}
	return Table{Columns: cols}, nil
}

// normalizeHeader makes header names non-empty and unique.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, ok := seen[name]; ok {
			base := name
			for {
				n++
				name = fmt.Sprintf("%s.%d", base, n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[base] = n
		}
		seen[name] = 0
		names[i] = name
	}
	return names
}

// inferColumn types a column of raw cells.
func inferColumn(name string, cells []string) Column {
	nums := make([]float64, len(cells))
	numeric := true
	for i, cell := range cells {
		if IsMissingMarker(cell) {
			continue
		}
		f, ok := parseNumber(cell)
		if !ok {
			numeric = false
			break
		}
		nums[i] = f
	}

	vals := make([]Value, len(cells))
	for i, cell := range cells {
		switch {
		case IsMissingMarker(cell):
			vals[i] = MissingValue()
		case numeric:
			vals[i] = NumberValue(nums[i])
		default:
			vals[i] = TextValue(cell)
		}
	}

	kind := KindText
	if numeric {
		kind = KindNumeric
	}
	return Column{Name: name, Kind: kind, Values: vals}
}

// parseNumber parses a decimal cell. Special float spellings such as "Inf"
// stay text so that only ordinary numbers make a column numeric.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") || strings.HasPrefix(lower, "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
