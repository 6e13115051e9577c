// Package record implements the Record value type and its Builder: an
// ordered collection of control and data fields behind a fixed leader,
// built up through validating setters and exposed through an
// ordered-entries-plus-accessors shape.
package record

import (
	"github.com/dchud/marc21/pkg/field"
	"github.com/dchud/marc21/pkg/helpers"
	"github.com/dchud/marc21/pkg/leader"
	"github.com/dchud/marc21/pkg/marcerr"
)

// Record is a MARC21 bibliographic, authority, holdings or other record:
// a leader plus an ordered list of control fields and an ordered list
// of data fields. Field iteration order is exactly the order in which
// fields were appended.
type Record struct {
	Leader        *leader.Leader
	ControlFields []field.ControlField
	DataFields    []field.DataField
}

// FirstWithTag returns the first data field with the given tag, if any.
func (r *Record) FirstWithTag(tag string) (field.DataField, bool) {
	for _, f := range r.DataFields {
		if f.Tag == tag {
			return f, true
		}
	}
	return field.DataField{}, false
}

// AllWithTag returns every data field with the given tag, in order.
func (r *Record) AllWithTag(tag string) []field.DataField {
	var out []field.DataField
	for _, f := range r.DataFields {
		if f.Tag == tag {
			out = append(out, f)
		}
	}
	return out
}

// FirstControlField returns the control field with the given tag.
func (r *Record) FirstControlField(tag string) (field.ControlField, bool) {
	for _, f := range r.ControlFields {
		if f.Tag == tag {
			return f, true
		}
	}
	return field.ControlField{}, false
}

// InTagRange returns every data field whose tag falls lexicographically
// in [start, end] inclusive, both 3-character digit strings.
func (r *Record) InTagRange(start, end string) []field.DataField {
	var out []field.DataField
	for _, f := range r.DataFields {
		if f.Tag >= start && f.Tag <= end {
			out = append(out, f)
		}
	}
	return out
}

// Title returns 245$a, with trailing cataloging punctuation stripped.
func (r *Record) Title() string {
	return r.firstSubfieldAcross([]string{"245"}, 'a')
}

// Author returns the first non-empty $a from 100, 110 or 111, in that
// order.
func (r *Record) Author() string {
	return r.firstSubfieldAcross([]string{"100", "110", "111"}, 'a')
}

// Isbns returns every 020$a value, trimmed of cataloging punctuation.
func (r *Record) Isbns() []string {
	return r.allSubfieldsAcross([]string{"020"}, 'a')
}

// Issn returns the first 022$a value, if any.
func (r *Record) Issn() string {
	return r.firstSubfieldAcross([]string{"022"}, 'a')
}

// Publisher returns the first non-empty $b from 260 or 264.
func (r *Record) Publisher() string {
	return r.firstSubfieldAcross([]string{"260", "264"}, 'b')
}

// Subjects returns every $a from every 6XX field, in field order.
func (r *Record) Subjects() []string {
	var out []string
	for _, f := range r.InTagRange("600", "699") {
		out = append(out, f.SubfieldValues('a')...)
	}
	for i, s := range out {
		out[i] = helpers.TrimTrailingPunctuation(s)
	}
	return out
}

func (r *Record) firstSubfieldAcross(tags []string, code byte) string {
	var candidates []string
	for _, tag := range tags {
		if f, ok := r.FirstWithTag(tag); ok {
			if v, ok := f.FirstSubfield(code); ok {
				candidates = append(candidates, v)
			}
		}
	}
	return helpers.FirstNonEmpty(candidates...)
}

func (r *Record) allSubfieldsAcross(tags []string, code byte) []string {
	var out []string
	for _, tag := range tags {
		for _, f := range r.AllWithTag(tag) {
			out = append(out, f.SubfieldValues(code)...)
		}
	}
	for i, s := range out {
		out[i] = helpers.TrimTrailingPunctuation(s)
	}
	return out
}

// Equal reports whether two records are structurally identical: same
// leader field values, and the same control and data fields in the same
// order. RecordLength/BaseAddress on the leader are ignored since they
// are stamped by the writer rather than part of a record's identity.
func Equal(a, b *Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !leaderValuesEqual(a.Leader, b.Leader) {
		return false
	}
	if len(a.ControlFields) != len(b.ControlFields) {
		return false
	}
	for i := range a.ControlFields {
		if a.ControlFields[i] != b.ControlFields[i] {
			return false
		}
	}
	if len(a.DataFields) != len(b.DataFields) {
		return false
	}
	for i := range a.DataFields {
		if !dataFieldsEqual(a.DataFields[i], b.DataFields[i]) {
			return false
		}
	}
	return true
}

func leaderValuesEqual(a, b *leader.Leader) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Status == b.Status &&
		a.Type == b.Type &&
		a.BibLevel == b.BibLevel &&
		a.ControlType == b.ControlType &&
		a.CharacterCoding == b.CharacterCoding &&
		a.EncodingLevel == b.EncodingLevel &&
		a.CatalogingForm == b.CatalogingForm &&
		a.MultipartLevel == b.MultipartLevel
}

func dataFieldsEqual(a, b field.DataField) bool {
	if a.Tag != b.Tag || a.Indicator1 != b.Indicator1 || a.Indicator2 != b.Indicator2 {
		return false
	}
	if len(a.Subfields) != len(b.Subfields) {
		return false
	}
	for i := range a.Subfields {
		if a.Subfields[i] != b.Subfields[i] {
			return false
		}
	}
	return true
}

// Builder incrementally assembles a Record, validating each addition as
// it is added.
type Builder struct {
	rec *Record
	err error
}

// NewBuilder starts a Builder over the given leader.
func NewBuilder(l *leader.Leader) *Builder {
	return &Builder{rec: &Record{Leader: l}}
}

// AddControlField appends a control field, validating tag and value via
// field.NewControlField.
func (b *Builder) AddControlField(tag, value string) *Builder {
	if b.err != nil {
		return b
	}
	cf, err := field.NewControlField(tag, value)
	if err != nil {
		b.err = err
		return b
	}
	b.rec.ControlFields = append(b.rec.ControlFields, cf)
	return b
}

// AddDataField appends a data field, validating tag, indicators and
// subfields via field.NewDataField.
func (b *Builder) AddDataField(tag string, ind1, ind2 byte, subfields []field.Subfield) *Builder {
	if b.err != nil {
		return b
	}
	df, err := field.NewDataField(tag, ind1, ind2, subfields)
	if err != nil {
		b.err = err
		return b
	}
	b.rec.DataFields = append(b.rec.DataFields, df)
	return b
}

// Build returns the assembled Record, or the first error encountered
// while appending fields.
func (b *Builder) Build() (*Record, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.rec.Leader == nil {
		return nil, &marcerr.InvalidRecord{Reason: "record has no leader"}
	}
	return b.rec, nil
}
