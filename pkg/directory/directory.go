// Package directory implements the ISO 2709 directory: the table of
// fixed-width tag/length/offset entries between the leader and the data
// area. A validating Unmarshal over a byte slice is paired with a
// Marshal that rebuilds the same bytes from field values.
package directory

import (
	"github.com/go-logr/logr"

	"github.com/dchud/marc21/pkg/consts"
	"github.com/dchud/marc21/pkg/encoding"
	"github.com/dchud/marc21/pkg/logging"
	"github.com/dchud/marc21/pkg/marcerr"
)

// EntrySize is the fixed width, in bytes, of one directory entry.
const EntrySize = consts.DirectoryEntrySize

// Entry is one tag/length/offset triple. Length and Offset are relative
// to the start of the data area and length includes the field's
// trailing terminator.
type Entry struct {
	Tag    string
	Length int
	Offset int
}

// Unmarshal decodes a single 12-byte directory entry.
func (e *Entry) Unmarshal(data []byte) error {
	if len(data) != EntrySize {
		return &marcerr.InvalidDirectory{Reason: "directory entry is not 12 bytes"}
	}
	tag := string(data[0:3])
	for _, b := range data[0:3] {
		if b < '0' || b > '9' {
			return &marcerr.InvalidDirectory{Reason: "tag is not 3 ASCII digits"}
		}
	}
	length, err := encoding.DecodeDigits(data[3:7])
	if err != nil {
		return &marcerr.InvalidDirectory{Reason: "field length is not 4 ASCII digits"}
	}
	offset, err := encoding.DecodeDigits(data[7:12])
	if err != nil {
		return &marcerr.InvalidDirectory{Reason: "field offset is not 5 ASCII digits"}
	}
	e.Tag = tag
	e.Length = length
	e.Offset = offset
	return nil
}

// Marshal encodes the entry back to its fixed 12-byte wire form. It
// fails with *marcerr.FieldTooLong or *marcerr.InvalidDirectory if the
// length or offset no longer fit in their fixed-width windows.
func (e Entry) Marshal() ([]byte, error) {
	if len(e.Tag) != 3 {
		return nil, &marcerr.InvalidDirectory{Reason: "tag is not 3 characters"}
	}
	if e.Length > consts.MaxFieldLength {
		return nil, &marcerr.FieldTooLong{Tag: e.Tag, Length: e.Length}
	}
	if e.Offset > consts.MaxFieldOffset {
		return nil, &marcerr.InvalidDirectory{Reason: "field offset exceeds 99999"}
	}
	lenBytes, err := encoding.EncodeDigits4(e.Length)
	if err != nil {
		return nil, &marcerr.FieldTooLong{Tag: e.Tag, Length: e.Length}
	}
	offBytes, err := encoding.EncodeDigits5(e.Offset)
	if err != nil {
		return nil, &marcerr.InvalidDirectory{Reason: err.Error()}
	}
	out := make([]byte, 0, EntrySize)
	out = append(out, e.Tag...)
	out = append(out, lenBytes...)
	out = append(out, offBytes...)
	return out, nil
}

// Directory is the ordered list of entries found between the leader and
// the data area.
type Directory struct {
	Entries []Entry
	logger  logr.Logger
}

// New returns an empty Directory carrying logger.
func New(logger logr.Logger) *Directory {
	return &Directory{logger: logger}
}

// Parse decodes the raw bytes between the leader and the field
// terminator that ends the directory (i.e. data[24:baseAddress-1]),
// requiring that the final byte at data[baseAddress-1] is the field
// terminator. It fails with *marcerr.InvalidDirectory if the region's
// length is not a multiple of 12, or if any entry fails to decode.
func Parse(raw []byte, terminatorByte byte, logger logr.Logger) (*Directory, error) {
	if terminatorByte != consts.FieldTerminator {
		return nil, &marcerr.InvalidDirectory{Reason: "directory is not terminated by a field terminator"}
	}
	if len(raw)%EntrySize != 0 {
		return nil, &marcerr.InvalidDirectory{Reason: "directory region length is not a multiple of 12"}
	}
	n := len(raw) / EntrySize
	d := &Directory{Entries: make([]Entry, n), logger: logger}
	for i := 0; i < n; i++ {
		if err := d.Entries[i].Unmarshal(raw[i*EntrySize : (i+1)*EntrySize]); err != nil {
			return nil, err
		}
	}
	d.logger.V(logging.TRACE).Info("parsed directory", "entryCount", n)
	return d, nil
}

// Marshal encodes the directory back to bytes, including the trailing
// field terminator.
func (d *Directory) Marshal() ([]byte, error) {
	out := make([]byte, 0, len(d.Entries)*EntrySize+1)
	for _, e := range d.Entries {
		b, err := e.Marshal()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	out = append(out, consts.FieldTerminator)
	return out, nil
}
