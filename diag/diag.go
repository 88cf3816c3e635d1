/*
File    : trill/diag/diag.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package diag is the single diagnostic collector every phase of the
// pipeline funnels into (spec §2, §5, §6, §7). It replaces the teacher's
// ad hoc `Errors []string` on Parser with a typed, de-duplicating,
// emission-ordered engine so that downstream phases (and the rendering
// collaborator named in spec §6) can distinguish kind/message/location.
package diag

import (
	"fmt"

	"github.com/akashmaji946/trill/source"
)

// Severity is the diagnostic's level.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Kind is one of the abstract error-taxonomy names from spec §7.
type Kind string

// Diagnostic is one reported problem: severity, taxonomy kind, message,
// an optional source location, and optional highlight ranges (e.g. each
// rejected overload candidate's signature range).
type Diagnostic struct {
	Severity   Severity
	Kind       Kind
	Message    string
	Location   source.Location
	Highlights []source.Range
	Notes      []Diagnostic // attached sub-diagnostics, always Severity==Note
}

func (d Diagnostic) String() string {
	if d.Location.IsValid() {
		return fmt.Sprintf("%s: %s: %s [%s]", d.Location, d.Severity, d.Message, d.Kind)
	}
	return fmt.Sprintf("%s: %s [%s]", d.Severity, d.Message, d.Kind)
}

// dedupeKey is the (message, kind, location) triple the engine
// de-duplicates on before flushing (spec §5).
type dedupeKey struct {
	kind Kind
	msg  string
	loc  string
}

// Engine collects diagnostics in emission order and removes exact
// duplicates before a caller reads them back.
type Engine struct {
	all  []Diagnostic
	seen map[dedupeKey]bool
}

// NewEngine creates an empty diagnostic engine.
func NewEngine() *Engine {
	return &Engine{seen: make(map[dedupeKey]bool)}
}

// Report records a diagnostic, unless an identical one (by kind, message,
// and location) was already recorded.
func (e *Engine) Report(d Diagnostic) {
	key := dedupeKey{kind: d.Kind, msg: d.Message, loc: d.Location.String()}
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.all = append(e.all, d)
}

// Errorf is a convenience for reporting an Error-severity diagnostic.
func (e *Engine) Errorf(kind Kind, loc source.Location, format string, a ...interface{}) {
	e.Report(Diagnostic{Severity: Error, Kind: kind, Message: fmt.Sprintf(format, a...), Location: loc})
}

// Warnf is a convenience for reporting a Warning-severity diagnostic.
func (e *Engine) Warnf(kind Kind, loc source.Location, format string, a ...interface{}) {
	e.Report(Diagnostic{Severity: Warning, Kind: kind, Message: fmt.Sprintf(format, a...), Location: loc})
}

// All returns every recorded diagnostic in emission order.
func (e *Engine) All() []Diagnostic { return e.all }

// HasErrors reports whether at least one Error-severity diagnostic was
// recorded — the exit-status rule from spec §7.
func (e *Engine) HasErrors() bool {
	for _, d := range e.all {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics at or above the given severity
// rank (Error counts only errors, Warning counts errors+warnings, etc).
func (e *Engine) Count(sev Severity) int {
	n := 0
	for _, d := range e.all {
		if d.Severity <= sev {
			n++
		}
	}
	return n
}
