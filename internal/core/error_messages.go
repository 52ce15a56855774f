package core

// error_messages.go maps technical errors to user-friendly messages.
//
// Each message carries a code users can quote to support staff:
//
//	FILE001 - File too large             patterns: "file too large"
//	FILE002 - Invalid CSV                typed: ParseError (csv)
//	FILE003 - Invalid spreadsheet        typed: ParseError (xlsx)
//	FILE004 - No file                    patterns: "no file provided"
//	FILE005 - Empty file                 typed: ParseError "empty file"
//	FILE006 - Unsupported file type      typed: ParseError "unsupported file type"
//	FILE007 - Malformed rows             typed: ParseError "expected N fields"
//	FILE008 - Too many files             patterns: "too many files"
//	VAL001  - Column not found           typed: ColumnNotFoundError
//	VAL002  - Undefined mean             typed: UndefinedMeanError
//	VAL003  - Invalid options            patterns: "invalid options"
//	VAL004  - Unsupported export format  patterns: "unsupported export format"
//	CHT001  - No numeric columns         typed: ErrNoNumericColumns
//	CHT002  - No chart columns selected  typed: ErrNoChartColumns
//	UPL001  - System busy                typed: ErrTooManyUploads
//	UPL002  - Request cancelled          patterns: "context canceled"
//	UPL003  - Request timeout            patterns: "context deadline exceeded"
//	RATE001 - Rate limited               patterns: "rate limit"
//	AUTH001 - Missing API key            patterns: "missing api key"
//	AUTH002 - Invalid API key            patterns: "invalid api key"
//	ERR000  - Unknown error              fallback
//
// Typed errors are matched first with errors.As / errors.Is. Remaining
// errors are matched case-insensitively by substring; the first matching
// pattern wins, so specific patterns come before general ones.

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgFileTooLarge = UserMessage{
		Message: "File exceeds the maximum upload size",
		Action:  "Split the file into smaller files",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File is not a valid CSV",
		Action:  "Ensure the file is comma-separated with a header row",
		Code:    "FILE002",
	}
	msgInvalidSpreadsheet = UserMessage{
		Message: "File is not a valid Excel workbook",
		Action:  "Save the file as .xlsx and try again",
		Code:    "FILE003",
	}
	msgNoFile = UserMessage{
		Message: "No file was selected",
		Action:  "Please select a CSV or Excel file to upload",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The uploaded file is empty",
		Action:  "Please upload a file with a header row",
		Code:    "FILE005",
	}
	msgUnsupportedType = UserMessage{
		Message: "File type is not supported",
		Action:  "Upload a .csv or .xlsx file",
		Code:    "FILE006",
	}
	msgMalformedRows = UserMessage{
		Message: "Some rows have more values than the header",
		Action:  "Check for stray commas or missing header names",
		Code:    "FILE007",
	}
	msgColumnNotFound = UserMessage{
		Message: "A selected column does not exist in the file",
		Action:  "Choose columns from the file's header",
		Code:    "VAL001",
	}
	msgUndefinedMean = UserMessage{
		Message: "A numeric column has no values to average",
		Action:  "Missing values in that column were left empty",
		Code:    "VAL002",
	}
	msgNoNumericColumns = UserMessage{
		Message: "No numeric columns available to plot a chart",
		Action:  "Select numeric columns to see a chart",
		Code:    "CHT001",
	}
	msgNoChartColumns = UserMessage{
		Message: "No columns selected for the chart",
		Action:  "Please select at least one numeric column to display the chart",
		Code:    "CHT002",
	}
	msgBusy = UserMessage{
		Message: "System is busy processing other uploads",
		Action:  "Please wait a moment and try again",
		Code:    "UPL001",
	}
	msgCancelled = UserMessage{
		Message: "Request was cancelled",
		Action:  "Please try again",
		Code:    "UPL002",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out",
		Action:  "Try a smaller file or check your connection",
		Code:    "UPL003",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are consulted after the typed checks in MapError.
var errorPatterns = []errorPattern{
	{pattern: "file too large", msg: msgFileTooLarge},
	{pattern: "request body too large", msg: msgFileTooLarge},
	{pattern: "no file provided", msg: msgNoFile},
	{
		pattern: "too many files",
		msg: UserMessage{
			Message: "Too many files in one upload",
			Action:  "Upload fewer files at a time",
			Code:    "FILE008",
		},
	},
	{
		pattern: "invalid options",
		msg: UserMessage{
			Message: "The conversion options are invalid",
			Action:  "Check the selected format and columns",
			Code:    "VAL003",
		},
	},
	{
		pattern: "unsupported export format",
		msg: UserMessage{
			Message: "Export format is not supported",
			Action:  "Choose CSV or Excel",
			Code:    "VAL004",
		},
	},
	{pattern: "too many uploads", msg: msgBusy},
	{pattern: "context canceled", msg: msgCancelled},
	{pattern: "context deadline exceeded", msg: msgTimeout},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "An API key is required",
			Action:  "Send your key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "The API key is not valid",
			Action:  "Check the key or ask an administrator for a new one",
			Code:    "AUTH002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000). Support staff
// should check the logs for the technical error.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the zero UserMessage for a nil error and ERR000 when no
// typed error or pattern matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := mapTyped(err); ok {
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// mapTyped matches the error types produced by this package.
func mapTyped(err error) (UserMessage, bool) {
	var (
		pe  *ParseError
		cnf *ColumnNotFoundError
		um  *UndefinedMeanError
	)
	switch {
	case errors.As(err, &pe):
		return mapParseError(pe), true
	case errors.As(err, &cnf):
		return msgColumnNotFound, true
	case errors.As(err, &um):
		return msgUndefinedMean, true
	case errors.Is(err, ErrNoNumericColumns):
		return msgNoNumericColumns, true
	case errors.Is(err, ErrNoChartColumns):
		return msgNoChartColumns, true
	case errors.Is(err, ErrTooManyUploads):
		return msgBusy, true
	case errors.Is(err, context.Canceled):
		return msgCancelled, true
	case errors.Is(err, context.DeadlineExceeded):
		return msgTimeout, true
	}
	return UserMessage{}, false
}

func mapParseError(pe *ParseError) UserMessage {
	reason := strings.ToLower(pe.Reason)
	switch {
	case strings.Contains(reason, "empty file"):
		return msgEmptyFile
	case strings.Contains(reason, "unsupported file type"):
		return msgUnsupportedType
	case strings.Contains(reason, "expected") && strings.Contains(reason, "fields"):
		return msgMalformedRows
	case strings.Contains(reason, "spreadsheet"), pe.Format == FormatSpreadsheet:
		return msgInvalidSpreadsheet
	default:
		return msgInvalidCSV
	}
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
