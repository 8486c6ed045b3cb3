package snoop

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Binary record header: {length uint16, delta_ms uint32, is_received uint8}, little endian.
const (
	recordOffsetLength   = 0
	recordOffsetDelta    = 2
	recordOffsetReceived = 6
	recordHeaderLength   = 7
)

var (
	ErrTruncatedRecord = errors.New("snoop record runs past end of log")
	ErrMalformedRecord = errors.New("malformed snoop record line")
)

// Record is one captured NCI packet.
type Record struct {
	Timestamp uint64 // ms
	Received  bool   // controller to host
	Data      []byte
}

// Format renders the record as a `timestamp,received,hex` line.
func (r Record) Format() string {
	return strconv.FormatUint(r.Timestamp, 10) + "," +
		strconv.FormatBool(r.Received) + "," +
		hex.EncodeToString(r.Data)
}

// ParseRecord parses a line produced by Format. Surrounding whitespace
// on each field is ignored.
func ParseRecord(line string) (Record, error) {
	ff := strings.Split(line, ",")
	if len(ff) < 3 {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "want 3 fields, have %v", len(ff))
	}

	ts, err := strconv.ParseUint(strings.TrimSpace(ff[0]), 10, 64)
	if err != nil {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "timestamp %q", ff[0])
	}

	data, err := hex.DecodeString(strings.TrimSpace(ff[2]))
	if err != nil {
		return Record{}, errors.Wrapf(ErrMalformedRecord, "hex: %v", err)
	}

	return Record{
		Timestamp: ts,
		Received:  strings.TrimSpace(ff[1]) == "true",
		Data:      data,
	}, nil
}

// ParseRecords splits an inflated snoop log into records. Timestamps are
// rebuilt backwards from the header's last timestamp, so a given packet
// keeps the same timestamp across successive summaries.
func ParseRecords(hdr Header, raw []byte) ([]Record, error) {
	var rr []Record
	var deltas []uint32

	for i := 0; i < len(raw); {
		if i+recordHeaderLength > len(raw) {
			return nil, errors.Wrapf(ErrTruncatedRecord, "header at %v", i)
		}

		l := int(binary.LittleEndian.Uint16(raw[i+recordOffsetLength:]))
		start := i + recordHeaderLength
		end := start + l
		if end > len(raw) {
			return nil, errors.Wrapf(ErrTruncatedRecord, "want %v, have %v, idx %v", end, len(raw), i)
		}

		data := make([]byte, l)
		copy(data, raw[start:end])
		rr = append(rr, Record{
			Received: raw[i+recordOffsetReceived] != 0,
			Data:     data,
		})
		deltas = append(deltas, binary.LittleEndian.Uint32(raw[i+recordOffsetDelta:]))

		i = end
	}

	ts := hdr.LastTimestamp
	for j := len(rr) - 1; j >= 0; j-- {
		rr[j].Timestamp = ts
		d := uint64(deltas[j])
		if d > ts {
			ts = 0
		} else {
			ts -= d
		}
	}

	return rr, nil
}

// Render joins records into the newline terminated text dump, oldest first.
func Render(rr []Record) string {
	var sb strings.Builder
	for _, r := range rr {
		sb.WriteString(r.Format())
		sb.WriteByte('\n')
	}
	return sb.String()
}
