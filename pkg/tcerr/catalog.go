// Package tcerr defines the canonical error catalog for the tacle core and
// façade, per spec.md §7's error kinds: input-shape errors, template-
// definition errors, and store/cache programmer errors are all fatal;
// numeric edge cases are never raised (validators reject the candidate
// instead — see internal/validate).
package tcerr

import (
	"fmt"
	"strings"
)

// Code is a canonical error code, stable across releases so callers can
// branch on it without parsing messages.
type Code string

const (
	// Input-shape errors (spec.md §7), detected at preprocessing.
	Validation       Code = "VALIDATION"
	InputShape       Code = "INPUT_SHAPE"
	UnsupportedInput Code = "UNSUPPORTED_INPUT"

	// Template-definition errors, detected at orchestrator start-up; fatal.
	TemplateDefinition Code = "TEMPLATE_DEFINITION"
	DependencyCycle    Code = "DEPENDENCY_CYCLE"

	// Cache/store programmer errors; fatal.
	StoreCorruption Code = "STORE_CORRUPTION"

	// Ingestion & dataset errors.
	IngestFailed      Code = "INGEST_FAILED"
	UnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	FileTooLarge      Code = "FILE_TOO_LARGE"
	InvalidHandle     Code = "INVALID_HANDLE"

	// Resource & limits, adapted from the runtime gate.
	BusyResource  Code = "BUSY_RESOURCE"
	Timeout       Code = "TIMEOUT"
	LimitExceeded Code = "LIMIT_EXCEEDED"
)

// Entry documents a code's standard message, retry semantics, and next steps.
type Entry struct {
	Code      Code
	Message   string
	Retryable bool
	NextSteps []string
}

var catalog = map[Code]Entry{
	Validation:       {Code: Validation, Message: "invalid inputs", Retryable: true, NextSteps: []string{"Correct the inputs and retry"}},
	InputShape:       {Code: InputShape, Message: "jagged or dimensionally inconsistent cell data", Retryable: true, NextSteps: []string{"Ensure every row has the same column count", "Pad ragged CSV rows before calling LearnFromCells"}},
	UnsupportedInput: {Code: UnsupportedInput, Message: "unsupported orientation or range", Retryable: true, NextSteps: []string{"Use \"vertical\" or \"horizontal\" for orientation"}},

	TemplateDefinition: {Code: TemplateDefinition, Message: "invalid template definition", Retryable: false, NextSteps: []string{"Fix the offending template's variables, filters, or DependsOn set"}},
	DependencyCycle:     {Code: DependencyCycle, Message: "template dependency graph contains a cycle", Retryable: false, NextSteps: []string{"Break the cycle in the enabled template set's DependsOn edges"}},

	StoreCorruption: {Code: StoreCorruption, Message: "solutions store is in an unexpected state", Retryable: false, NextSteps: []string{"This is a programmer error; file a bug with the offending template and assignment"}},

	IngestFailed:      {Code: IngestFailed, Message: "failed to ingest input", Retryable: true, NextSteps: []string{"Verify the file is a well-formed CSV or XLSX workbook"}},
	UnsupportedFormat: {Code: UnsupportedFormat, Message: "unsupported file format", Retryable: false, NextSteps: []string{"Convert to .csv or .xlsx and retry"}},
	FileTooLarge:      {Code: FileTooLarge, Message: "file exceeds configured size", Retryable: false, NextSteps: []string{"Use a smaller file or raise the configured limit"}},
	InvalidHandle:     {Code: InvalidHandle, Message: "dataset handle not found or expired", Retryable: true, NextSteps: []string{"Reopen the dataset via path and retry"}},

	BusyResource:  {Code: BusyResource, Message: "concurrent learning-run limit reached", Retryable: true, NextSteps: []string{"Retry after a short delay"}},
	Timeout:       {Code: Timeout, Message: "operation exceeded configured time limit", Retryable: true, NextSteps: []string{"Reduce input size or increase the timeout"}},
	LimitExceeded: {Code: LimitExceeded, Message: "operation exceeded configured limits", Retryable: true, NextSteps: []string{"Reduce block or table count"}},
}

// Error is a catalog-backed error: a stable Code plus a human-readable
// detail, normalized into a single "CODE: detail | nextSteps: ..." string
// so callers that only see error.Error() still get actionable guidance.
type Error struct {
	code    Code
	detail  string
	wrapped error
}

func (e *Error) Error() string {
	entry, ok := catalog[e.code]
	if !ok {
		if e.detail == "" {
			return string(e.code)
		}
		return fmt.Sprintf("%s: %s", e.code, e.detail)
	}
	detail := e.detail
	if detail == "" {
		detail = entry.Message
	}
	guidance := ""
	if len(entry.NextSteps) > 0 {
		guidance = " | nextSteps: " + strings.Join(entry.NextSteps, "; ")
	}
	return fmt.Sprintf("%s: %s%s", e.code, detail, guidance)
}

// Unwrap exposes any underlying error so callers can use errors.Is/As
// through a tcerr.Error.
func (e *Error) Unwrap() error { return e.wrapped }

// Code returns the error's canonical code.
func (e *Error) Code() Code { return e.code }

// Retryable reports whether the catalog marks this code as retryable.
func (e *Error) Retryable() bool { return catalog[e.code].Retryable }

// NextSteps returns the catalog's guidance for this code.
func (e *Error) NextSteps() []string { return catalog[e.code].NextSteps }

// New constructs a catalog error with a message override.
func New(code Code, message string) *Error {
	return &Error{code: code, detail: message}
}

// Wrapf constructs a catalog error with a formatted detail message.
func Wrapf(code Code, format string, args ...any) *Error {
	return &Error{code: code, detail: fmt.Sprintf(format, args...)}
}

// Wrap constructs a catalog error wrapping an underlying cause, preserving
// it for errors.Is/As while still normalizing to the catalog's guidance.
func Wrap(code Code, cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return &Error{code: code, detail: msg, wrapped: cause}
}
