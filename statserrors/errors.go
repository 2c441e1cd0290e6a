package statserrors

import (
	"errors"
	"strings"
)

// Walk (W) Errors
var (
	ErrWInvalidDirectory = errors.New("W1|InvalidDirectory: Input path does not exist or is not a directory.")
	ErrWUnreadableEntry  = errors.New("W2|UnreadableEntry: A directory entry could not be listed or read.")
	ErrWNoInput          = errors.New("W3|NoInput: No input directories were given.")
)

// Reduction (R) Errors
var (
	ErrRUndefined      = errors.New("R1|UndefinedReduction: Reduction has no defined value (empty series or zero denominator).")
	ErrRLengthMismatch = errors.New("R2|LengthMismatch: Paired series have different lengths.")
	ErrRNonPositive    = errors.New("R3|NonPositive: Geometric mean over a negative value.")
)

// Table (T) Errors
var (
	ErrTUnknownColumn   = errors.New("T1|UnknownColumn: Column is not present in the table.")
	ErrTNoValueColumns  = errors.New("T2|NoValueColumns: Table has no value columns.")
	ErrTMalformedCSV    = errors.New("T3|MalformedCSV: CSV input does not start with FILE and SUITE columns.")
	ErrTInvalidNumber   = errors.New("T4|InvalidNumber: CSV cell is not a number.")
	ErrTEmptyPivotInput = errors.New("T5|EmptyPivotInput: No records carry the pivot metric.")
	ErrTIndexColumn     = errors.New("T6|IndexColumn: FILE and SUITE cannot be dropped.")
)

// Configuration (C) Errors
var (
	ErrCConflictingSummary = errors.New("C1|ConflictingSummary: Mean and geomean rows are mutually exclusive.")
	ErrCInvalidThreshold   = errors.New("C2|InvalidThreshold: Quality filter threshold must be non-negative.")
	ErrCUnknownSuite       = errors.New("C3|UnknownSuite: Suite name is not in the suite table.")
)

// Figure (F) Errors
var (
	ErrFNoSeries      = errors.New("F1|NoSeries: Figure has no series.")
	ErrFUnknownFigure = errors.New("F2|UnknownFigure: Figure name is not defined in the figure file.")
	ErrFFormat        = errors.New("F3|UnsupportedFormat: Output extension is not a supported figure format.")
	ErrFTransform     = errors.New("F4|UnknownTransform: Series transform is not recognized.")
)

// GetErrorName extracts the error name from the error message.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") || !strings.Contains(errStr, ":") {
		return errStr
	}
	parts := strings.SplitN(errStr, "|", 2)
	if len(parts) < 2 {
		return errStr
	}
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

// GetErrorCode extracts the error code from the error message.
func GetErrorCode(err error) string {
	if err == nil {
		return ""
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "|") {
		return ""
	}
	parts := strings.SplitN(errStr, "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}

// Root returns the innermost sentinel from this package wrapped by err, or err
// itself when none is found.
func Root(err error) error {
	for _, s := range all {
		if errors.Is(err, s) {
			return s
		}
	}
	return err
}

var all = []error{
	ErrWInvalidDirectory, ErrWUnreadableEntry, ErrWNoInput,
	ErrRUndefined, ErrRLengthMismatch, ErrRNonPositive,
	ErrTUnknownColumn, ErrTNoValueColumns, ErrTMalformedCSV, ErrTInvalidNumber, ErrTEmptyPivotInput, ErrTIndexColumn,
	ErrCConflictingSummary, ErrCInvalidThreshold, ErrCUnknownSuite,
	ErrFNoSeries, ErrFUnknownFigure, ErrFFormat, ErrFTransform,
}
