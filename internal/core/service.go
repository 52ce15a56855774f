package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JonMunkholm/TableConverter/internal/config"
	"github.com/JonMunkholm/TableConverter/internal/logging"
	"github.com/google/uuid"
)

// Outcomes reported to a StageObserver.
const (
	OutcomeOK      = "ok"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// StageObserver receives timings for every pipeline stage the service runs.
type StageObserver interface {
	ObserveStage(stage Stage, outcome string, d time.Duration)
	ObserveFile(format string, outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveStage(Stage, string, time.Duration) {}
func (nopObserver) ObserveFile(string, string)                {}

// FileInput is one uploaded file plus the options chosen for it.
type FileInput struct {
	Name    string
	Data    []byte
	Options TransformOptions
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	ID       string
	FileName string
	Format   Format
	RunResult
}

// OK reports whether every stage of the file completed.
func (r FileResult) OK() bool { return r.Err == nil }

// Service runs the transform pipeline for uploaded files.
// It holds no per-file state; every call is independent.
type Service struct {
	cfg      *config.Config
	limiter  *UploadLimiter
	observer StageObserver
}

// NewService creates a Service. A nil observer disables stage reporting.
func NewService(cfg *config.Config, observer StageObserver) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("new service: nil config")
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{
		cfg:      cfg,
		limiter:  NewUploadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		observer: observer,
	}, nil
}

// ProcessFiles runs the pipeline on each file in order. A failing file does
// not stop the others; its FileResult carries the error and the previews of
// the stages that completed. The returned error is only set when the request
// itself could not run (busy or cancelled).
func (s *Service) ProcessFiles(ctx context.Context, files []FileInput) ([]FileResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.processFile(ctx, f, false))
	}
	return results, nil
}

// ExportFile runs the pipeline on one file and returns its export artifact.
func (s *Service) ExportFile(ctx context.Context, f FileInput) (*ExportArtifact, FileResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, FileResult{}, err
	}
	defer s.limiter.Release()

	res := s.processFile(ctx, f, true)
	if res.Err != nil {
		return nil, res, res.Err
	}
	return res.Artifact, res, nil
}

// ChartFile runs the pipeline on one file and returns bar chart data for
// the given numeric columns (nil picks the defaults).
func (s *Service) ChartFile(ctx context.Context, f FileInput, columns []string) (BarChart, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return BarChart{}, err
	}
	defer s.limiter.Release()

	res := s.processFile(ctx, f, false)
	if res.Err != nil {
		return BarChart{}, res.Err
	}
	return NewBarChart(res.Table, columns)
}

// processFile resolves the file format, runs the pipeline and reports
// stage metrics and logs.
func (s *Service) processFile(ctx context.Context, f FileInput, export bool) FileResult {
	id := uuid.New().String()
	logger := logging.WithFields(ctx, "file_id", id, "file", f.Name)

	result := FileResult{ID: id, FileName: f.Name}

	if limit := s.cfg.Upload.MaxFileSize; limit > 0 && int64(len(f.Data)) > limit {
		err := fmt.Errorf("file too large: %d bytes exceeds limit of %d", len(f.Data), limit)
		result.Err = &StageError{File: f.Name, Stage: StageParse, Err: err}
		s.report(logger, result)
		return result
	}

	src, err := NewSourceFile(f.Name, f.Data)
	if err != nil {
		result.Err = &StageError{File: f.Name, Stage: StageParse, Err: err}
		s.report(logger, result)
		return result
	}
	result.Format = src.Format

	logger.Debug("pipeline started",
		"format", src.Format.String(),
		"bytes", len(f.Data),
		"remove_duplicates", f.Options.RemoveDuplicates,
		"fill_missing", f.Options.FillMissingWithMean,
		"columns", len(f.Options.SelectedColumns),
	)

	result.RunResult = Run(src, f.Options, RunOptions{
		PreviewRows: s.cfg.Preview.Rows,
		Export:      export,
	})
	s.report(logger, result)
	return result
}

// report logs the file outcome and forwards stage timings to the observer.
func (s *Service) report(logger *slog.Logger, r FileResult) {
	for _, st := range r.Stages {
		outcome := OutcomeOK
		if st.Stage == StageFillMissing && len(r.Warnings) > 0 {
			outcome = OutcomeWarning
		}
		s.observer.ObserveStage(st.Stage, outcome, st.Duration)
	}

	if r.Err != nil {
		s.observer.ObserveStage(r.Err.Stage, OutcomeError, 0)
		s.observer.ObserveFile(formatLabel(r.FileName), OutcomeError)
		logger.Warn("pipeline failed",
			"stage", string(r.Err.Stage),
			"completed_stages", len(r.Stages),
			"error", r.Err.Err.Error(),
		)
		return
	}

	outcome := OutcomeOK
	if len(r.Warnings) > 0 {
		outcome = OutcomeWarning
		for _, w := range r.Warnings {
			logger.Warn("pipeline warning", "warning", w.Error())
		}
	}
	s.observer.ObserveFile(formatLabel(r.FileName), outcome)
	logger.Info("pipeline completed",
		"rows", r.Table.NumRows(),
		"columns", len(r.Table.Columns),
		"exported", r.Artifact != nil,
	)
}

// formatLabel names the format of a file for metrics, "unknown" when the
// extension is not supported.
func formatLabel(name string) string {
	f, err := FormatFromName(name)
	if err != nil {
		return "unknown"
	}
	return f.String()
}

// UploadLimiterStatus returns the current state of the request limiter.
func (s *Service) UploadLimiterStatus() UploadLimiterStatus {
	return s.limiter.Status()
}

// WaitForUploads blocks until in-flight conversions finish or ctx ends.
func (s *Service) WaitForUploads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
