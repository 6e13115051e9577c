package marc8

import (
	"errors"
	"unicode/utf8"
)

// Classification is the analyzer's verdict on a record's declared
// encoding.
type Classification int

const (
	ClassConsistentMarc8 Classification = iota
	ClassConsistentUtf8
	ClassMixed
	ClassUndetermined
)

func (c Classification) String() string {
	switch c {
	case ClassConsistentMarc8:
		return "Consistent(Marc8)"
	case ClassConsistentUtf8:
		return "Consistent(Utf8)"
	case ClassMixed:
		return "Mixed"
	default:
		return "Undetermined"
	}
}

// FieldValue is one field or subfield value to feed to Analyze, carrying
// enough context to report a useful counterexample.
type FieldValue struct {
	Tag    string
	Offset int
	Value  []byte
}

// Counterexample names one value that disagrees with the record's
// majority encoding.
type Counterexample struct {
	FieldTag string
	Offset   int
	Reason   error
}

// Result is the analyzer's full verdict: a Classification, the primary
// encoding when Mixed, and any counterexamples found.
type Result struct {
	Classification  Classification
	Primary         Classification
	Counterexamples []Counterexample
}

// Analyze classifies a record's field bytes by attempting a MARC-8
// decode and a UTF-8 validation on each value. Values that decode
// cleanly under both (pure ASCII, typically) are ambiguous and do not
// vote for either encoding; values that decode under neither become
// counterexamples.
func Analyze(values []FieldValue) Result {
	var utf8Votes, marc8Votes int
	var counterexamples []Counterexample

	for _, fv := range values {
		utf8Ok := utf8.Valid(fv.Value)
		_, marc8Errs := Decode(fv.Value)
		marc8Ok := len(marc8Errs) == 0

		switch {
		case utf8Ok && marc8Ok:
			// Ambiguous: consistent with either encoding, no vote cast.
		case utf8Ok:
			utf8Votes++
		case marc8Ok:
			marc8Votes++
		default:
			reason := "value is neither valid UTF-8 nor cleanly MARC-8 decodable"
			if len(marc8Errs) > 0 {
				reason = marc8Errs[0].Error()
			}
			counterexamples = append(counterexamples, Counterexample{
				FieldTag: fv.Tag,
				Offset:   fv.Offset,
				Reason:   errors.New(reason),
			})
		}
	}

	if len(counterexamples) > 0 {
		return Result{
			Classification:  ClassMixed,
			Primary:         primaryOf(utf8Votes, marc8Votes),
			Counterexamples: counterexamples,
		}
	}
	switch {
	case utf8Votes > 0 && marc8Votes == 0:
		return Result{Classification: ClassConsistentUtf8}
	case marc8Votes > 0 && utf8Votes == 0:
		return Result{Classification: ClassConsistentMarc8}
	case utf8Votes > 0 && marc8Votes > 0:
		return Result{Classification: ClassMixed, Primary: primaryOf(utf8Votes, marc8Votes)}
	default:
		return Result{Classification: ClassUndetermined}
	}
}

func primaryOf(utf8Votes, marc8Votes int) Classification {
	if utf8Votes >= marc8Votes {
		return ClassConsistentUtf8
	}
	return ClassConsistentMarc8
}
