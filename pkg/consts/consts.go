// Package consts holds the fixed byte values, sizes and legal-value tables
// defined by ISO 2709 and its MARC21 application profile.
package consts

const (
	// SubfieldDelimiter introduces a one-byte subfield code (ISO 2709 §6.3.2).
	SubfieldDelimiter = 0x1F
	// FieldTerminator ends a control or data field (ISO 2709 §6.4).
	FieldTerminator = 0x1E
	// RecordTerminator is the final byte of every record (ISO 2709 §6.5).
	RecordTerminator = 0x1D

	// LeaderSize is the fixed length, in bytes, of the leader.
	LeaderSize = 24
	// DirectoryEntrySize is the fixed length, in bytes, of one directory entry.
	DirectoryEntrySize = 12

	// MinRecordLength is the smallest legal value for the leader's record-length
	// field: a leader, one field terminator ending an empty directory, and a
	// record terminator.
	MinRecordLength = LeaderSize + 2
	// MaxRecordLength is the largest value a 5-digit ASCII decimal field can hold.
	MaxRecordLength = 99999
	// MaxFieldLength is the largest value a 4-digit ASCII decimal directory length can hold.
	MaxFieldLength = 9999
	// MaxFieldOffset is the largest value a 5-digit ASCII decimal directory offset can hold.
	MaxFieldOffset = 99999

	// MarcEncodingMarc8 is the leader position 9 value for MARC-8 data.
	MarcEncodingMarc8 = ' '
	// MarcEncodingUtf8 is the leader position 9 value for UTF-8 data.
	MarcEncodingUtf8 = 'a'

	// ReservedLeaderTail is the constant string occupying leader positions
	// 20-23 (the entry map): the length of a directory entry's "field
	// length" part, the length of its "starting character position" part,
	// and two zero digits. Always "4500" on emit.
	ReservedLeaderTail = "4500"

	// ControlFieldTagLimit is the exclusive upper bound on a control field's
	// numeric tag value; tags below this are control fields, tags at or
	// above it are data fields.
	ControlFieldTagLimit = 10
)

// LeaderPositionValues enumerates the legal single-byte values for the
// fixed, non-numeric leader positions: {offset, legal value set}.
var LeaderPositionValues = []struct {
	Offset int
	Values string
}{
	{5, "acdnp"},          // Record status
	{6, "acdefgijkmoprt"}, // Type of record
	{7, "abcdims"},        // Bibliographic level
	{8, " a"},             // Type of control
	{9, " a"},             // Character coding scheme
	{17, " 1234578uz"},    // Encoding level
	{18, " aciu"},         // Descriptive cataloging form
	{19, " abc"},          // Multipart resource record level
}
