// Package core provides the table conversion and cleaning logic.
//
// This package is the heart of the converter, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Pipeline
//
// Every uploaded file goes through the same fixed sequence of pure stages:
//
//	Parse -> RemoveDuplicates? -> FillMissingWithMean? -> SelectColumns -> Export?
//
// [Run] executes the sequence for one [SourceFile] and [TransformOptions],
// keeping a head preview of each stage's output. Stages never mutate their
// input [Table]; they return a new one.
//
// # Tables
//
// A [Table] is a list of uniquely named [Column] values of equal length.
// Columns are typed once at parse time: a column is numeric when every
// present cell parses as a number, otherwise it is text. Missing cells are
// tracked explicitly and are distinct from zero or the empty string.
//
// # Service
//
// [Service] wraps the pipeline for the web layer: it limits concurrent
// requests, processes each file of a request independently, logs every run
// and reports stage timings to a [StageObserver].
//
// # Error Handling
//
// Stage failures are reported as [*StageError] naming the file and stage.
// The underlying causes are typed: [*ParseError], [*ColumnNotFoundError] and
// the recoverable [*UndefinedMeanError]. [MapError] turns any of them into a
// [UserMessage] with a support code.
package core
