package web

import (
	"errors"

	"github.com/JonMunkholm/TableConverter/internal/core"
)

// ProcessResponse is the body of /api/process.
type ProcessResponse struct {
	Files []FileResponse `json:"files"`
}

// FileResponse is the outcome of one uploaded file.
type FileResponse struct {
	ID       string            `json:"id"`
	File     string            `json:"file"`
	Format   string            `json:"format,omitempty"`
	OK       bool              `json:"ok"`
	Stages   []StageResponse   `json:"stages"`
	Warnings []WarningResponse `json:"warnings,omitempty"`
	Error    *FileError        `json:"error,omitempty"`
}

// FileError describes the stage that failed.
type FileError struct {
	Stage  string `json:"stage"`
	Detail string `json:"detail"`
	ErrorResponse
}

// WarningResponse is a recoverable problem; the file still completed.
type WarningResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Code    string `json:"code"`
	Column  string `json:"column,omitempty"`
}

// StageResponse is one completed stage with its preview.
type StageResponse struct {
	Stage      string         `json:"stage"`
	Rows       int            `json:"rows"`
	DurationMS float64        `json:"duration_ms"`
	Preview    *TableResponse `json:"preview,omitempty"`
}

// TableResponse is a table preview. Cells are numbers, strings or null for
// missing values.
type TableResponse struct {
	Columns []ColumnResponse `json:"columns"`
	Rows    [][]any          `json:"rows"`
}

// ColumnResponse names a column and its inferred kind.
type ColumnResponse struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func newFileResponse(r core.FileResult) FileResponse {
	resp := FileResponse{
		ID:     r.ID,
		File:   r.FileName,
		OK:     r.OK(),
		Stages: make([]StageResponse, 0, len(r.Stages)),
	}
	if f, err := core.FormatFromName(r.FileName); err == nil {
		resp.Format = f.String()
	}

	for _, st := range r.Stages {
		sr := StageResponse{
			Stage:      string(st.Stage),
			Rows:       st.Rows,
			DurationMS: float64(st.Duration.Microseconds()) / 1000,
		}
		if st.Stage != core.StageExport {
			t := newTableResponse(st.Preview)
			sr.Preview = &t
		}
		resp.Stages = append(resp.Stages, sr)
	}

	for _, w := range r.Warnings {
		msg := core.MapError(w)
		wr := WarningResponse{Message: msg.Message, Detail: w.Error(), Code: msg.Code}
		var um *core.UndefinedMeanError
		if errors.As(w, &um) {
			wr.Column = um.Column
		}
		resp.Warnings = append(resp.Warnings, wr)
	}

	if r.Err != nil {
		resp.Error = &FileError{
			Stage:         string(r.Err.Stage),
			Detail:        r.Err.Error(),
			ErrorResponse: newErrorResponse(core.MapError(r.Err)),
		}
	}
	return resp
}

func newTableResponse(t core.Table) TableResponse {
	resp := TableResponse{
		Columns: make([]ColumnResponse, len(t.Columns)),
		Rows:    make([][]any, t.NumRows()),
	}
	for i, c := range t.Columns {
		resp.Columns[i] = ColumnResponse{Name: c.Name, Kind: c.Kind.String()}
	}
	for i := range resp.Rows {
		row := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			v := c.Values[i]
			switch {
			case v.Missing:
				row[j] = nil
			case c.Kind == core.KindNumeric:
				row[j] = v.Num
			default:
				row[j] = v.Str
			}
		}
		resp.Rows[i] = row
	}
	return resp
}
