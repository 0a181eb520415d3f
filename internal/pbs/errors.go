package pbs

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrMalformedRecord indicates a listing line had too few columns
	ErrMalformedRecord = errors.New("malformed scheduler record")

	// ErrSourceUnavailable indicates a scheduler query failed or returned nothing
	ErrSourceUnavailable = errors.New("scheduler source unavailable")

	// ErrSchedulerNotFound indicates the scheduler binary was not found
	ErrSchedulerNotFound = errors.New("scheduler binary not found in PATH")

	// ErrVersionUnknown indicates the scheduler version could not be determined
	ErrVersionUnknown = errors.New("scheduler version unknown")
)

// MalformedRecordError reports a listing line that could not be parsed.
type MalformedRecordError struct {
	Line   string // raw line content
	Fields int    // number of columns found
	Want   int    // number of columns required
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record has %d columns, want %d: %q", e.Fields, e.Want, e.Line)
}

// Unwrap allows errors.Is to match ErrMalformedRecord
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// SourceError reports a failed scheduler command invocation.
type SourceError struct {
	Command string // command line that failed
	Output  string // combined output, if any
	Err     error  // underlying error
}

func (e *SourceError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("scheduler query %q failed: %v\nOutput: %s", e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("scheduler query %q failed: %v", e.Command, e.Err)
}

func (e *SourceError) Unwrap() error {
	return ErrSourceUnavailable
}

// NewMalformedRecordError creates a new MalformedRecordError
func NewMalformedRecordError(line string, fields, want int) *MalformedRecordError {
	return &MalformedRecordError{
		Line:   line,
		Fields: fields,
		Want:   want,
	}
}

// NewSourceError creates a new SourceError
func NewSourceError(command, output string, err error) *SourceError {
	return &SourceError{
		Command: command,
		Output:  output,
		Err:     err,
	}
}
