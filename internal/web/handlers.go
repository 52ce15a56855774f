package web

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/JonMunkholm/TableConverter/internal/core"
	"github.com/JonMunkholm/TableConverter/internal/logging"
	"github.com/JonMunkholm/TableConverter/internal/web/templates"
)

// handlePreview runs the pipeline on every uploaded file and renders the
// stage previews as an htmx partial.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	results, err := s.service.ProcessFiles(r.Context(), req.Files)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	views := make([]templates.FileView, len(results))
	for i, res := range results {
		views[i] = templates.FileView{Result: res}
		if !res.OK() {
			continue
		}
		chart, err := core.NewBarChart(res.Table, req.Charts[i])
		if err != nil {
			logging.FromContext(r.Context()).Debug("chart skipped",
				"file", res.FileName,
				"reason", err.Error(),
			)
			continue
		}
		views[i].Chart = &chart
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Results(views).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render results", "error", err)
	}
}

// handleProcess runs the pipeline on every uploaded file and returns the
// per-file stages, warnings and errors. A failing file does not fail the
// request.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	results, err := s.service.ProcessFiles(r.Context(), req.Files)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	resp := ProcessResponse{Files: make([]FileResponse, len(results))}
	for i, res := range results {
		resp.Files[i] = newFileResponse(res)
	}
	render.JSON(w, r, resp)
}

// handleExport converts one uploaded file and sends it as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	file, _, err := pickFile(r, req)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	artifact, _, err := s.service.ExportFile(r.Context(), file)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	w.Header().Set("Content-Type", artifact.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": artifact.FileName,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(artifact.Data); err != nil {
		logging.FromContext(r.Context()).Warn("write export", "file", artifact.FileName, "error", err)
	}
}

// handleChart returns bar chart data for one uploaded file after its
// transforms.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseUpload(w, r)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	file, columns, err := pickFile(r, req)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	chart, err := s.service.ChartFile(r.Context(), file, columns)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	render.JSON(w, r, chart)
}

// HealthResponse is the body of /healthz.
type HealthResponse struct {
	Status  string                   `json:"status"`
	Uploads core.UploadLimiterStatus `json:"uploads"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:  "ok",
		Uploads: s.service.UploadLimiterStatus(),
	})
}
