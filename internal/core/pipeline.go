package core

import (
	"time"
)

// Stage names one step of the transform pipeline.
type Stage string

const (
	StageParse            Stage = "parse"
	StageRemoveDuplicates Stage = "remove_duplicates"
	StageFillMissing      Stage = "fill_missing"
	StageSelectColumns    Stage = "select_columns"
	StageExport           Stage = "export"
)

// StageResult records the outcome of one completed stage.
type StageResult struct {
	Stage    Stage
	Rows     int
	Preview  Table // first rows of the stage output
	Duration time.Duration
}

// RunResult is everything one pipeline run produced. When Err is set, Stages
// still holds every stage that completed before the failure.
type RunResult struct {
	Table    Table
	Stages   []StageResult
	Artifact *ExportArtifact
	Warnings []error
	Err      *StageError
}

// RunOptions tune a pipeline run without changing its output table.
type RunOptions struct {
	// PreviewRows is the number of rows kept per stage preview.
	// Zero means DefaultPreviewRows.
	PreviewRows int

	// Export requests an ExportArtifact in TransformOptions.ExportFormat.
	Export bool
}

// Run executes the fixed stage order on one file:
//
//	parse -> [remove duplicates] -> [fill missing] -> select columns -> [export]
//
// Run is pure: the same input and options always give the same result.
func Run(src SourceFile, opts TransformOptions, ro RunOptions) RunResult {
	previewRows := ro.PreviewRows
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}

	var res RunResult
	record := func(stage Stage, t Table, start time.Time) {
		res.Table = t
		res.Stages = append(res.Stages, StageResult{
			Stage:    stage,
			Rows:     t.NumRows(),
			Preview:  t.Head(previewRows),
			Duration: time.Since(start),
		})
	}
	fail := func(stage Stage, err error) RunResult {
		res.Err = &StageError{File: src.Name, Stage: stage, Err: err}
		return res
	}

	start := time.Now()
	t, err := Parse(src)
	if err != nil {
		return fail(StageParse, err)
	}
	record(StageParse, t, start)

	if opts.RemoveDuplicates {
		start = time.Now()
		t = RemoveDuplicates(t)
		record(StageRemoveDuplicates, t, start)
	}

	if opts.FillMissingWithMean {
		start = time.Now()
		filled, err := FillMissingWithMean(t)
		if err != nil {
			if !IsRecoverable(err) {
				return fail(StageFillMissing, err)
			}
			res.Warnings = append(res.Warnings, unjoin(err)...)
		}
		t = filled
		record(StageFillMissing, t, start)
	}

	start = time.Now()
	t, err = SelectColumns(t, opts.SelectedColumns)
	if err != nil {
		return fail(StageSelectColumns, err)
	}
	record(StageSelectColumns, t, start)

	if ro.Export {
		start = time.Now()
		artifact, err := Export(t, opts.ExportFormat, src.Name)
		if err != nil {
			return fail(StageExport, err)
		}
		res.Artifact = &artifact
		res.Stages = append(res.Stages, StageResult{
			Stage:    StageExport,
			Rows:     t.NumRows(),
			Duration: time.Since(start),
		})
	}

	return res
}

// unjoin flattens an errors.Join result into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
