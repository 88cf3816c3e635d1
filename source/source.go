/*
File    : trill/source/source.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package source owns every source buffer the compiler reads. A File is a
// handle plus its decoded bytes; a Manager maps logical paths to Files and
// is the only thing allowed to construct one, mirroring the stateful
// handle-wrapping pattern the file package uses for os.File.
package source

import (
	"fmt"
	"os"
)

// File is a single compilation input: a path and the bytes read from it.
// Handle is a small integer identity so Location can reference a File
// cheaply without holding a pointer into the Manager's slice.
type File struct {
	Handle int
	Path   string
	Text   string
}

// Location is a single point in a source file: byte offset plus the
// line/column the lexer computed while scanning to that offset.
type Location struct {
	File   *File
	Line   int // 1-indexed
	Column int // 1-indexed
	Offset int // 0-indexed byte offset into File.Text
}

// IsValid reports whether the location refers to a real file.
func (l Location) IsValid() bool { return l.File != nil }

// String renders "path:line:column" for diagnostics.
func (l Location) String() string {
	if l.File == nil {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File.Path, l.Line, l.Column)
}

// Range is an inclusive span between two locations in the same file.
type Range struct {
	Start Location
	End   Location
}

// IsValid reports whether both ends of the range resolve to a file.
func (r Range) IsValid() bool { return r.Start.IsValid() && r.End.IsValid() }

// String renders the range as "path:line:col" using the start location,
// which is all diagnostic rendering (a collaborator, see spec §6) needs.
func (r Range) String() string { return r.Start.String() }

// Join returns the smallest range covering both a and b. Used when a
// parser production combines several sub-node ranges into one.
func Join(a, b Range) Range {
	if !a.IsValid() {
		return b
	}
	if !b.IsValid() {
		return a
	}
	start, end := a.Start, a.End
	if b.Start.Offset < start.Offset {
		start = b.Start
	}
	if b.End.Offset > end.Offset {
		end = b.End
	}
	return Range{Start: start, End: end}
}

// Manager is the single owner of every source buffer in a compilation. It
// never mutates a File once registered, matching the "append-only during
// parsing" invariant on the AST context (spec §5).
type Manager struct {
	files []*File
	byPath map[string]*File
}

// NewManager creates an empty source manager.
func NewManager() *Manager {
	return &Manager{byPath: make(map[string]*File)}
}

// AddFile registers raw text under a logical path, returning its handle.
// Re-adding the same path returns the existing File rather than duplicating
// it, since re-registration is harmless but would otherwise double memory
// for diagnostics that re-open the same unit.
func (m *Manager) AddFile(path, text string) *File {
	if f, ok := m.byPath[path]; ok {
		return f
	}
	f := &File{Handle: len(m.files), Path: path, Text: text}
	m.files = append(m.files, f)
	m.byPath[path] = f
	return f
}

// ReadFile loads a path off disk and registers it. This is the only place
// the package touches os — everything else in the compiler works off the
// in-memory File.
func (m *Manager) ReadFile(path string) (*File, error) {
	if f, ok := m.byPath[path]; ok {
		return f, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return m.AddFile(path, string(raw)), nil
}

// File returns the file registered under path, if any.
func (m *Manager) File(path string) (*File, bool) {
	f, ok := m.byPath[path]
	return f, ok
}

// Files returns every registered file in registration order.
func (m *Manager) Files() []*File {
	return m.files
}
