package snoop

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"io/ioutil"
	"strings"

	"github.com/pkg/errors"
)

// Markers around the base64 snoop summary in `dumpsys nfc` output.
const (
	BeginMarker = "BEGIN:NFCSNOOP_LOG_SUMMARY"
	EndMarker   = "END:NFCSNOOP_LOG_SUMMARY"
)

// Summary prefix: version byte followed by the timestamp of the last packet.
const (
	summaryOffsetVersion   = 0
	summaryOffsetTimestamp = 1
	summaryPrefixLength    = 9
)

var (
	ErrMarkerNotFound = errors.New("snoop log summary markers not found")
	ErrShortSummary   = errors.New("snoop log summary shorter than its prefix")
)

// Header is the uncompressed prefix of a snoop log summary.
type Header struct {
	Version       uint8
	LastTimestamp uint64 // ms
}

// ExtractSummary returns the base64 block between the last begin marker
// line and the last end marker line of out.
func ExtractSummary(out string) (string, error) {
	begin := strings.LastIndex(out, BeginMarker)
	if begin < 0 {
		return "", errors.Wrap(ErrMarkerNotFound, BeginMarker)
	}
	nl := strings.Index(out[begin:], "\n")
	if nl < 0 {
		return "", errors.Wrap(ErrMarkerNotFound, "no data after "+BeginMarker)
	}
	start := begin + nl + 1

	end := strings.LastIndex(out, EndMarker)
	if end < start {
		return "", errors.Wrap(ErrMarkerNotFound, EndMarker)
	}
	stop := strings.LastIndex(out[:end], "\n")
	if stop < start {
		// end marker directly follows the begin line, empty block
		return "", nil
	}

	return out[start:stop], nil
}

// Inflate base64-decodes a summary block, splits off its prefix and
// decompresses the packet records behind it.
func Inflate(block string) (Header, []byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, block)

	data, err := base64.StdEncoding.DecodeString(clean)
	if err != nil {
		return Header{}, nil, errors.Wrap(err, "summary base64")
	}

	if len(data) < summaryPrefixLength {
		return Header{}, nil, errors.Wrapf(ErrShortSummary, "have %v bytes", len(data))
	}

	hdr := Header{
		Version:       data[summaryOffsetVersion],
		LastTimestamp: binary.LittleEndian.Uint64(data[summaryOffsetTimestamp:summaryPrefixLength]),
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[summaryPrefixLength:]))
	if err != nil {
		return hdr, nil, errors.Wrap(err, "summary inflate")
	}
	defer zr.Close()

	raw, err := ioutil.ReadAll(zr)
	if err != nil {
		return hdr, nil, errors.Wrap(err, "summary inflate")
	}

	return hdr, raw, nil
}
