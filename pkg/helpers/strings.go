// Package helpers holds small string utilities shared by the record
// model's convenience accessors.
package helpers

import "strings"

// TrimTrailingPunctuation strips surrounding whitespace and any of the
// trailing "/:,;" characters MARC catalogers conventionally leave at the
// end of a subfield value (e.g. "Hello, World /" -> "Hello, World").
func TrimTrailingPunctuation(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/:,;")
	return strings.TrimSpace(s)
}

// FirstNonEmpty returns the first non-empty string in values, after
// trimming trailing punctuation from each candidate, or "" if none are
// non-empty.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := TrimTrailingPunctuation(v); t != "" {
			return t
		}
	}
	return ""
}
