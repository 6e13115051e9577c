// Package field implements the Subfield, ControlField and DataField
// value types that make up a Record's field catalog: small structs with
// validating constructors and bounds-checked accessors rather than
// open-ended getters.
package field

import (
	"github.com/dchud/marc21/pkg/marcerr"
	"github.com/dchud/marc21/pkg/validation"
)

// Subfield is a single coded element inside a data field, introduced in
// the wire format by the subfield delimiter and a one-byte code.
type Subfield struct {
	Code  byte
	Value string
}

// NewSubfield validates code and value and returns a Subfield.
func NewSubfield(code byte, value string) (Subfield, error) {
	if !validation.ValidSubfieldCode(code) {
		return Subfield{}, &marcerr.InvalidField{Tag: "", Reason: "subfield code is empty or not a visible ASCII byte"}
	}
	if validation.ContainsTerminator(value) {
		return Subfield{}, &marcerr.InvalidField{Tag: "", Reason: "subfield value contains a structural terminator"}
	}
	return Subfield{Code: code, Value: value}, nil
}

// ControlField is a field with a numeric tag below 010 holding an
// unstructured value and no indicators.
type ControlField struct {
	Tag   string
	Value string
}

// NewControlField validates tag and value and returns a ControlField.
func NewControlField(tag, value string) (ControlField, error) {
	if !validation.ValidTag(tag) {
		return ControlField{}, &marcerr.InvalidField{Tag: tag, Reason: "tag is not 3 ASCII digits"}
	}
	if !validation.IsControlFieldTag(tag) {
		return ControlField{}, &marcerr.InvalidField{Tag: tag, Reason: "tag's numeric value is not below 010"}
	}
	if validation.ContainsTerminator(value) {
		return ControlField{}, &marcerr.InvalidField{Tag: tag, Reason: "value contains a structural terminator"}
	}
	return ControlField{Tag: tag, Value: value}, nil
}

// DataField is a field with a numeric tag at or above 010 holding two
// indicators and an ordered, non-empty list of subfields.
type DataField struct {
	Tag        string
	Indicator1 byte
	Indicator2 byte
	Subfields  []Subfield
}

// NewDataField validates tag, indicators and the subfield list and
// returns a DataField. At least one subfield is required, since a data
// field with none is never emittable; rejecting it at construction
// keeps the builder from ever holding an unemittable field.
func NewDataField(tag string, ind1, ind2 byte, subfields []Subfield) (DataField, error) {
	if !validation.ValidTag(tag) {
		return DataField{}, &marcerr.InvalidField{Tag: tag, Reason: "tag is not 3 ASCII digits"}
	}
	if validation.IsControlFieldTag(tag) {
		return DataField{}, &marcerr.InvalidField{Tag: tag, Reason: "tag's numeric value is not at least 010"}
	}
	if !validation.ValidIndicator(ind1) || !validation.ValidIndicator(ind2) {
		return DataField{}, &marcerr.InvalidField{Tag: tag, Reason: "indicator byte outside [0x20, 0x7E]"}
	}
	if len(subfields) == 0 {
		return DataField{}, &marcerr.InvalidField{Tag: tag, Reason: "data field has no subfields"}
	}
	cp := make([]Subfield, len(subfields))
	copy(cp, subfields)
	return DataField{Tag: tag, Indicator1: ind1, Indicator2: ind2, Subfields: cp}, nil
}

// SubfieldValues returns, in order, the values of every subfield with the
// given code.
func (f DataField) SubfieldValues(code byte) []string {
	var out []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

// FirstSubfield returns the value of the first subfield with the given
// code, and whether one was found.
func (f DataField) FirstSubfield(code byte) (string, bool) {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// HasSubfield reports whether any subfield carries the given code.
func (f DataField) HasSubfield(code byte) bool {
	_, ok := f.FirstSubfield(code)
	return ok
}
