package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JonMunkholm/TableConverter/internal/core"
)

// multipartOverhead is the body allowance on top of the file data for
// headers and form fields.
const multipartOverhead = 1 << 20

// fileOptions is the wire form of core.TransformOptions.
//
// A nil Columns keeps every column; an empty list keeps none.
// ChartColumns works the same way for /api/chart and the preview chart,
// except that nil picks the first numeric columns.
type fileOptions struct {
	RemoveDuplicates bool     `json:"remove_duplicates"`
	FillMissing      bool     `json:"fill_missing"`
	Columns          []string `json:"columns" validate:"omitempty,max=1000,dive,required"`
	Format           string   `json:"format" validate:"omitempty,oneof=csv xlsx"`
	ChartColumns     []string `json:"chart_columns" validate:"omitempty,dive,required"`
}

func (o fileOptions) transform() (core.TransformOptions, error) {
	format, err := core.ParseFormat(o.Format)
	if err != nil {
		return core.TransformOptions{}, err
	}
	return core.TransformOptions{
		RemoveDuplicates:    o.RemoveDuplicates,
		FillMissingWithMean: o.FillMissing,
		SelectedColumns:     o.Columns,
		ExportFormat:        format,
	}, nil
}

// upload is a decoded conversion request.
type upload struct {
	Files  []core.FileInput
	Charts [][]string // chart columns per file, parallel to Files
}

// newValidator reports json field names in validation errors.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseUpload reads the multipart form: one or more "file" parts, shared
// options from plain form fields, and an optional "options" field holding
// a JSON object of per-file options keyed by file name. A per-file entry
// replaces the shared options for that file.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (upload, error) {
	limits := s.cfg.Upload
	maxBody := limits.MaxRequestBytes() + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return upload{}, fmt.Errorf("request body too large: limit %d bytes", mbe.Limit)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return upload{}, errNoFile
		}
		return upload{}, fmt.Errorf("invalid options: read form: %w", err)
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		return upload{}, errNoFile
	}
	if len(headers) > limits.MaxFiles {
		return upload{}, fmt.Errorf("too many files: %d exceeds limit of %d", len(headers), limits.MaxFiles)
	}

	shared, err := s.sharedOptions(r)
	if err != nil {
		return upload{}, err
	}
	perFile, err := s.perFileOptions(r.FormValue("options"))
	if err != nil {
		return upload{}, err
	}

	var req upload
	for _, fh := range headers {
		opts := shared
		if o, ok := perFile[fh.Filename]; ok {
			opts = o
		}
		to, err := opts.transform()
		if err != nil {
			return upload{}, fmt.Errorf("invalid options for %s: %w", fh.Filename, err)
		}

		f, err := fh.Open()
		if err != nil {
			return upload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return upload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
		}

		req.Files = append(req.Files, core.FileInput{Name: fh.Filename, Data: data, Options: to})
		req.Charts = append(req.Charts, opts.ChartColumns)
	}
	return req, nil
}

// sharedOptions reads the plain form fields used by the upload page.
func (s *Server) sharedOptions(r *http.Request) (fileOptions, error) {
	var (
		o   fileOptions
		err error
	)
	if o.RemoveDuplicates, err = formBool(r, "remove_duplicates"); err != nil {
		return o, err
	}
	if o.FillMissing, err = formBool(r, "fill_missing"); err != nil {
		return o, err
	}
	o.Columns = splitColumns(r.FormValue("columns"))
	o.ChartColumns = splitColumns(r.FormValue("chart_columns"))
	o.Format = r.FormValue("format")

	if err := s.validate.Struct(o); err != nil {
		return o, fmt.Errorf("invalid options: %s", validationMessage(err))
	}
	return o, nil
}

func (s *Server) perFileOptions(raw string) (map[string]fileOptions, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var m map[string]fileOptions
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	for name, o := range m {
		if err := s.validate.Struct(o); err != nil {
			return nil, fmt.Errorf("invalid options for %s: %s", name, validationMessage(err))
		}
	}
	return m, nil
}

func formBool(r *http.Request, name string) (bool, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return false, nil
	}
	if v == "on" {
		return true, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid options: %s must be a boolean", name)
	}
	return b, nil
}

// splitColumns parses "a, b" into ["a" "b"]. A blank value is nil so every
// column is kept.
func splitColumns(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}

// validationMessage flattens validator errors into one line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must not contain blank names", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must have at most %s entries", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// pickFile returns the upload named by the "name" form field, or the first
// file when the field is empty.
func pickFile(r *http.Request, req upload) (core.FileInput, []string, error) {
	name := r.FormValue("name")
	for i, f := range req.Files {
		if name == "" || f.Name == name {
			return f, req.Charts[i], nil
		}
	}
	return core.FileInput{}, nil, fmt.Errorf("no file provided: %q was not uploaded", name)
}
