package faults

import (
	"errors"
	"fmt"
)

// Severity classifies how far a fault is allowed to propagate.
//
//   - SeverityFatal: escalates to process termination (startup failures).
//   - SeverityTransient: isolated to the tick that produced it; the loop
//     logs and continues.
//   - SeverityLine: isolated to a single log line; the line is skipped.
type Severity string

const (
	SeverityFatal     Severity = "fatal"
	SeverityTransient Severity = "transient"
	SeverityLine      Severity = "line"
)

const codeUndefined = "SYS_9001"

// Fault represents a classified monitor error with a stable code and a cause.
// It implements the error interface and supports error wrapping. Codes double
// as metric label values.
type Fault struct {
	Severity Severity
	Code     string // stable, component-owned code (e.g. TAIL_1000)
	Cause    error  // wrapped underlying error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %v", f.Code, f.Cause)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (f *Fault) Unwrap() error {
	return f.Cause
}

func (f *Fault) IsFatal() bool {
	return f.Severity == SeverityFatal
}

// NewFatal creates a Fault that must terminate the process.
func NewFatal(code string, cause error) *Fault {
	return &Fault{Severity: SeverityFatal, Code: code, Cause: cause}
}

// NewTransient creates a Fault scoped to one tick.
func NewTransient(code string, cause error) *Fault {
	return &Fault{Severity: SeverityTransient, Code: code, Cause: cause}
}

// NewLine creates a Fault scoped to one log line.
func NewLine(code string, cause error) *Fault {
	return &Fault{Severity: SeverityLine, Code: code, Cause: cause}
}

// As extracts a Fault from the error chain.
// It returns (*Fault, true) if err wraps a Fault, otherwise (nil, false).
func As(err error) (*Fault, bool) {
	var fault *Fault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}

// CodeOf returns the stable code of err for metric labels, or a generic
// undefined code when err carries no Fault.
func CodeOf(err error) string {
	if fault, ok := As(err); ok {
		return fault.Code
	}
	return codeUndefined
}
