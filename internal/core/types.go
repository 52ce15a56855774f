package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies a supported tabular file format.
type Format int

const (
	FormatCSV Format = iota
	FormatSpreadsheet
)

// MIME types for exported artifacts.
const (
	MIMETypeCSV         = "text/csv"
	MIMETypeSpreadsheet = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// String returns the file extension used for the format (without the dot).
func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatSpreadsheet:
		return "xlsx"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// MIMEType returns the content type used when exporting in this format.
func (f Format) MIMEType() string {
	if f == FormatSpreadsheet {
		return MIMETypeSpreadsheet
	}
	return MIMETypeCSV
}

// ParseFormat converts a user-facing format name to a Format.
// Accepts "csv", "xlsx" and "excel" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "xlsx", "excel", "spreadsheet":
		return FormatSpreadsheet, nil
	}
	return FormatCSV, fmt.Errorf("unsupported export format: %q", s)
}

// FormatFromName resolves the format of a file from its extension.
// Only .csv and .xlsx are recognized.
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatSpreadsheet, nil
	}
	return FormatCSV, &ParseError{File: name, Reason: "unsupported file type (expected .csv or .xlsx)"}
}

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
)

func (k Kind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Value is a single table cell. A missing cell has Missing set and its other
// fields are ignored. Numeric columns use Num, text columns use Str.
type Value struct {
	Num     float64
	Str     string
	Missing bool
}

// MissingValue returns a missing cell.
func MissingValue() Value { return Value{Missing: true} }

// NumberValue returns a present numeric cell.
func NumberValue(f float64) Value { return Value{Num: f} }

// TextValue returns a present text cell.
func TextValue(s string) Value { return Value{Str: s} }

// Column is a named, typed sequence of values.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// SourceFile is an uploaded file consumed once by Parse.
type SourceFile struct {
	Name   string
	Data   []byte
	Format Format
}

// NewSourceFile builds a SourceFile, resolving its format from the name.
func NewSourceFile(name string, data []byte) (SourceFile, error) {
	format, err := FormatFromName(name)
	if err != nil {
		return SourceFile{}, err
	}
	return SourceFile{Name: name, Data: data, Format: format}, nil
}

// TransformOptions are the per-file choices for one pipeline run.
type TransformOptions struct {
	RemoveDuplicates    bool
	FillMissingWithMean bool

	// SelectedColumns lists the output columns in order.
	// nil keeps every column; an empty non-nil slice keeps none.
	SelectedColumns []string

	ExportFormat Format
}

// ExportArtifact is a serialized table ready for download.
type ExportArtifact struct {
	Data     []byte
	MIMEType string
	FileName string
}

// ExportFileName replaces the extension of source with the one for format.
// "report.xlsx" exported as CSV becomes "report.csv".
func ExportFileName(source string, format Format) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" {
		base = "export"
	}
	return base + "." + format.String()
}
