package core

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError reports input that is empty or does not match its declared format.
type ParseError struct {
	File   string
	Format Format // declared format of File
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.File != "" {
		b.WriteString(" in ")
		b.WriteString(e.File)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

// ColumnNotFoundError reports a selection naming a column the table lacks.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column not found: %q (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// UndefinedMeanError reports a numeric column with no present values.
// It is recoverable: the column is left unfilled.
type UndefinedMeanError struct {
	Column string
}

func (e *UndefinedMeanError) Error() string {
	return fmt.Sprintf("undefined mean: numeric column %q has no values, missing cells left unfilled", e.Column)
}

// Chart errors.
var (
	ErrNoNumericColumns = errors.New("no numeric columns available to plot")
	ErrNoChartColumns   = errors.New("select at least one numeric column to plot")
)

// StageError ties a failure to the file and pipeline stage that produced it.
type StageError struct {
	File  string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.File, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// IsRecoverable reports whether err only carries warnings that leave the
// pipeline output usable.
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			if !IsRecoverable(e) {
				return false
			}
		}
		return true
	}
	var um *UndefinedMeanError
	return errors.As(err, &um)
}
