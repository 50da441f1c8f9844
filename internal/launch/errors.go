package launch

import (
	"errors"
	"fmt"
)

// Error codes for dataset failures.
const (
	ErrCodeFileNotFound  = "E101" // File missing
	ErrCodeUnreadable    = "E102" // File unreadable or not valid CSV
	ErrCodeMissingColumn = "E103" // Required column absent from header
	ErrCodeNoRecords     = "E104" // Header present but no data rows
	ErrCodeBadCell       = "E110" // Cell cannot be coerced to its type
)

// LoadError reports that the launch file could not be read as a dataset.
//
// Causes:
//   - file missing or unreadable
//   - malformed CSV framing
//   - a required column is absent
//   - the file has no data rows
type LoadError struct {
	Code    string
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Code, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ParseError reports a cell that cannot be coerced to its declared type.
// Line is 1-based and counts the header row.
type ParseError struct {
	Path    string
	Line    int
	Column  string
	Value   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s:%d: column %q: %s (value %q)", ErrCodeBadCell, e.Path, e.Line, e.Column, e.Message, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Code returns the error code for a ParseError.
func (e *ParseError) Code() string {
	return ErrCodeBadCell
}

// IsLoadError returns true if err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsParseError returns true if err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// ErrorCode extracts the dataset error code from err, or "" if err is not
// a dataset error.
func ErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code()
	}
	return ""
}
