// Package scanner implements the boundary scanner: given a byte buffer
// holding a concatenation of ISO 2709 records, it returns the (start,
// length) pairs identifying each candidate record without allocating
// per-record state or transcoding any bytes. It reads one fixed-size
// length prefix at a time and advances by the length taken from it.
package scanner

import (
	"github.com/dchud/marc21/pkg/consts"
	"github.com/dchud/marc21/pkg/encoding"
	"github.com/dchud/marc21/pkg/marcerr"
)

// Frame identifies one candidate record by its offset and byte length
// within the scanned buffer.
type Frame struct {
	Start  int
	Length int
}

// Scan walks data from the beginning, reading a 5-digit ASCII length
// prefix at each candidate start, and emitting a Frame once it confirms
// the byte at start+length-1 is the record terminator 0x1D. It fails
// with *marcerr.InvalidRecord, reporting the offset, on the first frame
// that does not check out.
func Scan(data []byte) ([]Frame, error) {
	var frames []Frame
	pos := 0
	for pos < len(data) {
		if pos+5 > len(data) {
			return nil, &marcerr.InvalidRecord{Reason: "truncated record-length prefix", Offset: pos}
		}
		length, err := encoding.DecodeDigits(data[pos : pos+5])
		if err != nil {
			return nil, &marcerr.InvalidRecord{Reason: "record-length prefix is not 5 ASCII digits", Offset: pos}
		}
		if length < consts.MinRecordLength || length > consts.MaxRecordLength {
			return nil, &marcerr.InvalidRecord{Reason: "declared record length out of range", Offset: pos}
		}
		if pos+length > len(data) {
			return nil, &marcerr.InvalidRecord{Reason: "declared record length exceeds remaining buffer", Offset: pos}
		}
		if data[pos+length-1] != consts.RecordTerminator {
			return nil, &marcerr.InvalidRecord{Reason: "record is not terminated by the record terminator", Offset: pos}
		}
		frames = append(frames, Frame{Start: pos, Length: length})
		pos += length
	}
	return frames, nil
}
