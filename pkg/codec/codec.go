// Package codec implements the ISO 2709 record reader and writer: a
// sequential walk over the leader, then a directory of entries, then a
// data region validated against that directory, driven from an
// io.Reader/Writer rather than a whole-file ReaderAt, since MARC21
// records are streamed rather than random-accessed.
package codec

import (
	"bufio"
	"io"

	"github.com/go-logr/logr"

	"github.com/dchud/marc21/pkg/consts"
	"github.com/dchud/marc21/pkg/directory"
	"github.com/dchud/marc21/pkg/field"
	"github.com/dchud/marc21/pkg/leader"
	"github.com/dchud/marc21/pkg/logging"
	"github.com/dchud/marc21/pkg/marc8"
	"github.com/dchud/marc21/pkg/marcerr"
	"github.com/dchud/marc21/pkg/marcopt"
	"github.com/dchud/marc21/pkg/record"
	"github.com/dchud/marc21/pkg/validation"
)

// Reader reads a sequence of ISO 2709 records from an underlying
// io.Reader. A Reader is not safe to share across goroutines; callers
// needing concurrent reads of distinct inputs must construct one Reader
// per goroutine.
type Reader struct {
	r       *bufio.Reader
	opts    marcopt.ReaderOptions
	logger  logr.Logger
	lastErr error
}

// NewReader constructs a Reader over r.
func NewReader(r io.Reader, opts ...marcopt.ReaderOption) *Reader {
	o := marcopt.NewReaderOptions(opts...)
	return &Reader{r: bufio.NewReader(r), opts: o, logger: o.Logger}
}

// Next reads and parses the next record. It returns io.EOF (wrapped in
// neither marcerr type) when the stream ends cleanly between records.
// End-of-stream mid-record always fails with *marcerr.UnexpectedEof.
func (rd *Reader) Next() (*record.Record, error) {
	if rd.lastErr != nil {
		return nil, rd.lastErr
	}

	leaderBytes := make([]byte, consts.LeaderSize)
	n, err := io.ReadFull(rd.r, leaderBytes)
	if err == io.EOF && n == 0 {
		return nil, io.EOF
	}
	if err != nil {
		return nil, &marcerr.UnexpectedEof{Reason: "stream ended while reading the leader"}
	}

	lead, err := leader.Parse(leaderBytes, rd.logger)
	if err != nil {
		return nil, err
	}

	rest := make([]byte, lead.RecordLength-consts.LeaderSize)
	if _, err := io.ReadFull(rd.r, rest); err != nil {
		return nil, &marcerr.UnexpectedEof{Reason: "stream ended before the declared record length"}
	}

	return rd.parseBody(lead, rest)
}

// parseBody interprets the bytes following the leader: directory, data
// area, and each field's body.
func (rd *Reader) parseBody(lead *leader.Leader, rest []byte) (*record.Record, error) {
	dirRegionLen := lead.BaseAddress - consts.LeaderSize - 1
	if dirRegionLen < 0 || dirRegionLen > len(rest) {
		return nil, &marcerr.InvalidRecord{Reason: "base address is inconsistent with record length"}
	}
	dirRegion := rest[:dirRegionLen]
	dirTerminator := rest[dirRegionLen]

	dir, err := directory.Parse(dirRegion, dirTerminator, rd.logger)
	if err != nil {
		return nil, err
	}

	dataAreaStart := dirRegionLen + 1
	dataArea := rest[dataAreaStart:]
	if len(dataArea) == 0 {
		return nil, &marcerr.InvalidRecord{Reason: "record has no data area"}
	}
	lastByte := dataArea[len(dataArea)-1]
	if lastByte != consts.RecordTerminator {
		if rd.opts.Strict {
			return nil, &marcerr.InvalidRecord{Reason: "record is not terminated by the record terminator"}
		}
		rd.logger.V(logging.DEBUG).Info("lenient recovery: missing record terminator")
	} else {
		dataArea = dataArea[:len(dataArea)-1]
	}

	if err := verifyDirectorySum(dir, dataArea); err != nil {
		if rd.opts.Strict {
			return nil, err
		}
		rd.logger.V(logging.DEBUG).Info("lenient recovery: directory sum mismatch", "error", err)
	}

	rec := &record.Record{Leader: lead}
	for _, entry := range dir.Entries {
		end := entry.Offset + entry.Length
		if entry.Offset < 0 || end > len(dataArea) {
			return nil, &marcerr.InvalidRecord{Reason: "directory entry body is out of bounds"}
		}
		body := dataArea[entry.Offset:end]
		if len(body) == 0 || body[len(body)-1] != consts.FieldTerminator {
			return nil, &marcerr.InvalidRecord{Reason: "field body is missing its terminator"}
		}
		body = body[:len(body)-1]

		if validation.IsControlFieldTag(entry.Tag) {
			value, errs := marc8.DecodeField(body, lead.CharacterCoding)
			if len(errs) > 0 && rd.opts.Strict {
				return nil, errs[0]
			}
			cf, err := field.NewControlField(entry.Tag, value)
			if err != nil {
				return nil, err
			}
			rec.ControlFields = append(rec.ControlFields, cf)
			continue
		}

		df, err := parseDataFieldBody(entry.Tag, body, lead.CharacterCoding, rd.opts.Strict)
		if err != nil {
			return nil, err
		}
		rec.DataFields = append(rec.DataFields, df)
	}

	return rec, nil
}

func parseDataFieldBody(tag string, body []byte, characterCoding byte, strict bool) (field.DataField, error) {
	if len(body) < 2 {
		return field.DataField{}, &marcerr.InvalidRecord{Reason: "data field body shorter than two indicator bytes"}
	}
	ind1, ind2 := body[0], body[1]
	var subfields []field.Subfield
	i := 2
	for i < len(body) {
		if body[i] != consts.SubfieldDelimiter {
			return field.DataField{}, &marcerr.InvalidRecord{Reason: "expected subfield delimiter"}
		}
		i++
		if i >= len(body) {
			return field.DataField{}, &marcerr.InvalidRecord{Reason: "subfield delimiter with no code"}
		}
		code := body[i]
		i++
		start := i
		for i < len(body) && body[i] != consts.SubfieldDelimiter {
			i++
		}
		value, errs := marc8.DecodeField(body[start:i], characterCoding)
		if len(errs) > 0 && strict {
			return field.DataField{}, errs[0]
		}
		sf, err := field.NewSubfield(code, value)
		if err != nil {
			return field.DataField{}, err
		}
		subfields = append(subfields, sf)
	}
	return field.NewDataField(tag, ind1, ind2, subfields)
}

// verifyDirectorySum checks that the concatenation (in directory order)
// of every field body, including its trailing terminator, equals the
// data area exactly.
func verifyDirectorySum(dir *directory.Directory, dataArea []byte) error {
	sum := 0
	for _, e := range dir.Entries {
		sum += e.Length
	}
	if sum != len(dataArea) {
		return &marcerr.InvalidRecord{Reason: "directory lengths do not sum to the data area length"}
	}
	return nil
}

// Writer emits ISO 2709 records to an underlying io.Writer.
type Writer struct {
	w      io.Writer
	opts   marcopt.WriterOptions
	logger logr.Logger
}

// NewWriter constructs a Writer over w.
func NewWriter(w io.Writer, opts ...marcopt.WriterOption) *Writer {
	o := marcopt.NewWriterOptions(opts...)
	return &Writer{w: w, opts: o, logger: o.Logger}
}

// Write serializes rec and writes it to the underlying writer.
func (wr *Writer) Write(rec *record.Record) error {
	frame, err := EncodeRecord(rec)
	if err != nil {
		return err
	}
	if _, err := wr.w.Write(frame); err != nil {
		return &marcerr.Io{Err: err}
	}
	return nil
}

// EncodeRecord assembles rec into a complete ISO 2709 byte frame without
// writing it anywhere, for callers (e.g. the pipeline's tests) that want
// the bytes directly.
func EncodeRecord(rec *record.Record) ([]byte, error) {
	var dataArea []byte
	var entries []directory.Entry

	for _, cf := range rec.ControlFields {
		body, err := marc8.EncodeField(cf.Value, rec.Leader.CharacterCoding, false)
		if err != nil {
			return nil, err
		}
		body = append(body, consts.FieldTerminator)
		entries = append(entries, directory.Entry{Tag: cf.Tag, Length: len(body), Offset: len(dataArea)})
		dataArea = append(dataArea, body...)
	}
	for _, df := range rec.DataFields {
		body := []byte{df.Indicator1, df.Indicator2}
		for _, sf := range df.Subfields {
			encoded, err := marc8.EncodeField(sf.Value, rec.Leader.CharacterCoding, false)
			if err != nil {
				return nil, err
			}
			body = append(body, consts.SubfieldDelimiter, sf.Code)
			body = append(body, encoded...)
		}
		body = append(body, consts.FieldTerminator)
		if len(body) > consts.MaxFieldLength {
			return nil, &marcerr.FieldTooLong{Tag: df.Tag, Length: len(body)}
		}
		entries = append(entries, directory.Entry{Tag: df.Tag, Length: len(body), Offset: len(dataArea)})
		dataArea = append(dataArea, body...)
	}
	dataArea = append(dataArea, consts.RecordTerminator)

	dir := &directory.Directory{Entries: entries}
	dirBytes, err := dir.Marshal()
	if err != nil {
		return nil, err
	}

	baseAddress := consts.LeaderSize + len(dirBytes)
	totalLength := baseAddress + len(dataArea)
	if totalLength > consts.MaxRecordLength {
		return nil, &marcerr.RecordTooLong{Length: totalLength}
	}

	leaderBytes, err := rec.Leader.Emit(totalLength, baseAddress)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, totalLength)
	frame = append(frame, leaderBytes[:]...)
	frame = append(frame, dirBytes...)
	frame = append(frame, dataArea...)
	return frame, nil
}
