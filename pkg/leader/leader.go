// Package leader parses and emits the fixed 24-byte ISO 2709 leader: a
// plain struct with a validating Parse function and a matching Emit,
// rather than a generic binary.Marshal reflecting over struct tags.
package leader

import (
	"github.com/go-logr/logr"

	"github.com/dchud/marc21/pkg/consts"
	"github.com/dchud/marc21/pkg/encoding"
	"github.com/dchud/marc21/pkg/logging"
	"github.com/dchud/marc21/pkg/marcerr"
	"github.com/dchud/marc21/pkg/validation"
)

// Leader is the in-memory form of the 24-byte ISO 2709 leader.
type Leader struct {
	Status          byte
	Type            byte
	BibLevel        byte
	ControlType     byte
	CharacterCoding byte
	EncodingLevel   byte
	CatalogingForm  byte
	MultipartLevel  byte

	// RecordLength and BaseAddress are set by Parse to the values actually
	// found on the wire, and are recomputed by the codec on emit rather
	// than taken from here; they are exposed for diagnostics.
	RecordLength int
	BaseAddress  int

	logger logr.Logger
}

// offsets for the fixed, validated single-byte positions.
const (
	offStatus          = 5
	offType            = 6
	offBibLevel        = 7
	offControlType     = 8
	offCharacterCoding = 9
	offIndicatorCount  = 10
	offSubfieldCount   = 11
	offEncodingLevel   = 17
	offCatalogingForm  = 18
	offMultipartLevel  = 19
)

// New returns a Leader with the given logger attached (logr.Discard() if
// the zero value is given), for use with the typed setters below before
// the leader is placed in a Record.
func New(logger logr.Logger) *Leader {
	return &Leader{logger: logger}
}

// Parse decodes a 24-byte slice into a Leader. It fails with
// *marcerr.InvalidLeader when the slice is not 24 bytes, when a numeric
// window is not all digits, or when the declared base address falls
// outside [25, record length).
func Parse(data []byte, logger logr.Logger) (*Leader, error) {
	if len(data) != consts.LeaderSize {
		return nil, &marcerr.InvalidLeader{Reason: "leader is not 24 bytes"}
	}

	recordLength, err := encoding.DecodeDigits(data[0:5])
	if err != nil {
		return nil, &marcerr.InvalidLeader{Reason: "record length is not 5 ASCII digits"}
	}
	baseAddress, err := encoding.DecodeDigits(data[12:17])
	if err != nil {
		return nil, &marcerr.InvalidLeader{Reason: "data base address is not 5 ASCII digits"}
	}
	if baseAddress < consts.LeaderSize+1 || baseAddress >= recordLength {
		return nil, &marcerr.InvalidLeader{Reason: "data base address is outside [25, record length)"}
	}

	for _, offset := range []int{offStatus, offType, offBibLevel, offControlType, offCharacterCoding, offEncodingLevel, offCatalogingForm, offMultipartLevel} {
		if !validation.ValidLeaderByte(offset, data[offset]) {
			return nil, &marcerr.InvalidLeader{Reason: "illegal value at leader offset " + itoa(offset)}
		}
	}

	l := &Leader{
		Status:          data[offStatus],
		Type:            data[offType],
		BibLevel:        data[offBibLevel],
		ControlType:     data[offControlType],
		CharacterCoding: data[offCharacterCoding],
		EncodingLevel:   data[offEncodingLevel],
		CatalogingForm:  data[offCatalogingForm],
		MultipartLevel:  data[offMultipartLevel],
		RecordLength:    recordLength,
		BaseAddress:     baseAddress,
		logger:          logger,
	}
	l.logger.V(logging.TRACE).Info("parsed leader",
		"recordLength", l.RecordLength, "baseAddress", l.BaseAddress,
		"characterCoding", string(l.CharacterCoding))
	return l, nil
}

// Emit serializes the leader to 24 bytes, stamping totalLength and
// baseAddress (computed by the writer from the record's actual directory
// and data area) into the record-length and base-address fields. It
// refuses to serialize when totalLength or baseAddress are out of range.
func (l *Leader) Emit(totalLength, baseAddress int) ([consts.LeaderSize]byte, error) {
	var out [consts.LeaderSize]byte

	if totalLength < consts.MinRecordLength || totalLength > consts.MaxRecordLength {
		return out, &marcerr.InvalidLeader{Reason: "total length out of range for a 5-digit leader field"}
	}
	if baseAddress < consts.LeaderSize+1 || baseAddress >= totalLength {
		return out, &marcerr.InvalidLeader{Reason: "base address out of range [25, total length)"}
	}

	lenBytes, err := encoding.EncodeDigits5(totalLength)
	if err != nil {
		return out, &marcerr.InvalidLeader{Reason: err.Error()}
	}
	baseBytes, err := encoding.EncodeDigits5(baseAddress)
	if err != nil {
		return out, &marcerr.InvalidLeader{Reason: err.Error()}
	}

	copy(out[0:5], lenBytes)
	out[offStatus] = l.Status
	out[offType] = l.Type
	out[offBibLevel] = l.BibLevel
	out[offControlType] = l.ControlType
	out[offCharacterCoding] = l.CharacterCoding
	out[offIndicatorCount] = '2'
	out[offSubfieldCount] = '2'
	copy(out[12:17], baseBytes)
	out[offEncodingLevel] = l.EncodingLevel
	out[offCatalogingForm] = l.CatalogingForm
	out[offMultipartLevel] = l.MultipartLevel
	copy(out[20:24], consts.ReservedLeaderTail)

	return out, nil
}

// IsUtf8 reports whether the leader declares UTF-8 encoded field content
// (leader position 9 == 'a').
func (l *Leader) IsUtf8() bool {
	return l.CharacterCoding == consts.MarcEncodingUtf8
}

// --- typed, bounds-checked setters ---

func (l *Leader) SetStatus(b byte) error { return l.setByte(&l.Status, offStatus, b) }
func (l *Leader) SetType(b byte) error   { return l.setByte(&l.Type, offType, b) }
func (l *Leader) SetBibLevel(b byte) error {
	return l.setByte(&l.BibLevel, offBibLevel, b)
}
func (l *Leader) SetControlType(b byte) error {
	return l.setByte(&l.ControlType, offControlType, b)
}
func (l *Leader) SetCharacterCoding(b byte) error {
	return l.setByte(&l.CharacterCoding, offCharacterCoding, b)
}
func (l *Leader) SetEncodingLevel(b byte) error {
	return l.setByte(&l.EncodingLevel, offEncodingLevel, b)
}
func (l *Leader) SetCatalogingForm(b byte) error {
	return l.setByte(&l.CatalogingForm, offCatalogingForm, b)
}
func (l *Leader) SetMultipartLevel(b byte) error {
	return l.setByte(&l.MultipartLevel, offMultipartLevel, b)
}

func (l *Leader) setByte(field *byte, offset int, b byte) error {
	if !validation.ValidLeaderByte(offset, b) {
		return &marcerr.InvalidLeader{Reason: "illegal value at leader offset " + itoa(offset)}
	}
	*field = b
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
