/*
File    : trill/diag/diag_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akashmaji946/trill/source"
)

func TestEngine_DeduplicatesByKindMessageLocation(t *testing.T) {
	e := NewEngine()
	loc := source.Location{File: &source.File{Path: "a.trill"}, Line: 1, Column: 1}
	e.Errorf("UnknownType", loc, "unknown type %q", "Foo")
	e.Errorf("UnknownType", loc, "unknown type %q", "Foo")
	e.Errorf("UnknownType", loc, "unknown type %q", "Bar")
	assert.Len(t, e.All(), 2)
}

func TestEngine_HasErrorsOnlyCountsErrorSeverity(t *testing.T) {
	e := NewEngine()
	loc := source.Location{}
	e.Warnf("SomeWarning", loc, "just a warning")
	assert.False(t, e.HasErrors())
	e.Errorf("SomeError", loc, "a real error")
	assert.True(t, e.HasErrors())
}

func TestEngine_EmissionOrderPreserved(t *testing.T) {
	e := NewEngine()
	loc := source.Location{}
	e.Errorf("A", loc, "first")
	e.Errorf("B", loc, "second")
	e.Errorf("C", loc, "third")
	var msgs []string
	for _, d := range e.All() {
		msgs = append(msgs, d.Message)
	}
	assert.Equal(t, []string{"first", "second", "third"}, msgs)
}
