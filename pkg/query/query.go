// Package query implements a composable constraint surface: a closed
// set of constraint kinds combined by conjunction or disjunction and
// matched linearly against a record's fields. One interface with an
// unexported method, so the set of kinds is closed to this package, and
// a handful of concrete implementations dispatched through that method
// rather than a reflection-based visitor.
package query

import (
	"regexp"
	"strings"

	"github.com/dchud/marc21/pkg/field"
)

// Constraint is satisfied or not by a single data field. The concrete
// types below are the only implementations; callers build queries by
// composing them with MatchAll/MatchAny rather than implementing new
// ones.
type Constraint interface {
	matches(f field.DataField) bool
}

// TagEquals matches a field whose tag equals Tag exactly.
type TagEquals struct {
	Tag string
}

func (c TagEquals) matches(f field.DataField) bool { return f.Tag == c.Tag }

// TagRange matches a field whose tag falls lexicographically in
// [Start, End] inclusive.
type TagRange struct {
	Start, End string
}

func (c TagRange) matches(f field.DataField) bool {
	return f.Tag >= c.Start && f.Tag <= c.End
}

// Indicator matches a field's indicator1 and/or indicator2. A zero byte
// in either position means "don't care".
type Indicator struct {
	Indicator1 byte
	Indicator2 byte
}

func (c Indicator) matches(f field.DataField) bool {
	if c.Indicator1 != 0 && f.Indicator1 != c.Indicator1 {
		return false
	}
	if c.Indicator2 != 0 && f.Indicator2 != c.Indicator2 {
		return false
	}
	return true
}

// SubfieldPresence matches a field carrying at least one subfield with
// the given code.
type SubfieldPresence struct {
	Code byte
}

func (c SubfieldPresence) matches(f field.DataField) bool {
	return f.HasSubfield(c.Code)
}

// SubfieldValue matches a field with a subfield of the given code whose
// value equals Target, or contains it as a substring when Contains is
// true.
type SubfieldValue struct {
	Code     byte
	Target   string
	Contains bool
}

func (c SubfieldValue) matches(f field.DataField) bool {
	for _, v := range f.SubfieldValues(c.Code) {
		if c.Contains {
			if strings.Contains(v, c.Target) {
				return true
			}
		} else if v == c.Target {
			return true
		}
	}
	return false
}

// SubfieldPattern matches a field with a subfield of the given code
// whose value matches Pattern.
type SubfieldPattern struct {
	Code    byte
	Pattern *regexp.Regexp
}

func (c SubfieldPattern) matches(f field.DataField) bool {
	for _, v := range f.SubfieldValues(c.Code) {
		if c.Pattern.MatchString(v) {
			return true
		}
	}
	return false
}

// All is a conjunction of constraints: a field matches only if every
// member constraint matches.
type All []Constraint

func (c All) matches(f field.DataField) bool {
	for _, sub := range c {
		if !matchConstraint(sub, f) {
			return false
		}
	}
	return true
}

// Any is a disjunction of constraints: a field matches if at least one
// member constraint matches.
type Any []Constraint

func (c Any) matches(f field.DataField) bool {
	for _, sub := range c {
		if matchConstraint(sub, f) {
			return true
		}
	}
	return false
}

// matchConstraint evaluates c against f through c's matches method; it
// does not switch on the concrete type. The tag-equality short-circuit
// lives in FindAll/FindFirst below, since it needs visibility into field
// order that a single constraint's match predicate does not have.
func matchConstraint(c Constraint, f field.DataField) bool {
	return c.matches(f)
}

// MatchAll reports whether f satisfies every constraint.
func MatchAll(f field.DataField, constraints ...Constraint) bool {
	return All(constraints).matches(f)
}

// MatchAny reports whether f satisfies at least one constraint.
func MatchAny(f field.DataField, constraints ...Constraint) bool {
	return Any(constraints).matches(f)
}

// FindAll returns every field in fields (assumed sorted by tag; the
// order is not checked, and a record keeps its fields in directory or
// insertion order) that satisfies every constraint. When the first constraint is a TagEquals, the scan stops
// as soon as a field's tag lexicographically exceeds the target.
func FindAll(fields []field.DataField, constraints ...Constraint) []field.DataField {
	var out []field.DataField
	tagEq, anchored := firstTagEquals(constraints)
	for _, f := range fields {
		if anchored && f.Tag > tagEq.Tag {
			break
		}
		if matchConstraint(All(constraints), f) {
			out = append(out, f)
		}
	}
	return out
}

// FindFirst returns the first field in fields satisfying every
// constraint, applying the same tag-anchored short-circuit as FindAll.
func FindFirst(fields []field.DataField, constraints ...Constraint) (field.DataField, bool) {
	tagEq, anchored := firstTagEquals(constraints)
	for _, f := range fields {
		if anchored && f.Tag > tagEq.Tag {
			break
		}
		if matchConstraint(All(constraints), f) {
			return f, true
		}
	}
	return field.DataField{}, false
}

func firstTagEquals(constraints []Constraint) (TagEquals, bool) {
	if len(constraints) == 0 {
		return TagEquals{}, false
	}
	te, ok := constraints[0].(TagEquals)
	return te, ok
}
