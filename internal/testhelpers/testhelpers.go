// Package testhelpers holds small record-construction helpers shared by
// this module's package tests: a minimal but complete bibliographic
// record builder so individual test files don't each hand-assemble a
// leader and field set.
package testhelpers

import (
	"testing"

	"github.com/go-logr/logr"

	"github.com/dchud/marc21/pkg/field"
	"github.com/dchud/marc21/pkg/leader"
	"github.com/dchud/marc21/pkg/record"
)

// MinimalBibRecord builds a record with a UTF-8 leader, a 001 control
// field, and a 245 title field, failing the test on any construction
// error. It is meant for tests that need a valid record but don't care
// about its exact shape.
func MinimalBibRecord(t *testing.T, title string) *record.Record {
	t.Helper()

	l := leader.New(logr.Discard())
	mustSet(t, l.SetCharacterCoding('a'))
	mustSet(t, l.SetStatus('n'))
	mustSet(t, l.SetType('a'))
	mustSet(t, l.SetBibLevel('m'))
	mustSet(t, l.SetControlType(' '))
	mustSet(t, l.SetEncodingLevel(' '))
	mustSet(t, l.SetCatalogingForm('a'))
	mustSet(t, l.SetMultipartLevel(' '))

	sf, err := field.NewSubfield('a', title)
	if err != nil {
		t.Fatalf("unexpected error building title subfield: %v", err)
	}

	b := record.NewBuilder(l)
	b.AddControlField("001", "testhelper0001")
	b.AddDataField("245", '0', '0', []field.Subfield{sf})
	rec, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error building record: %v", err)
	}
	return rec
}

func mustSet(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error setting leader byte: %v", err)
	}
}
