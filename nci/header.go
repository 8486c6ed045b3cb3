package nci

import (
	"github.com/pkg/errors"
)

var (
	ErrShortPacket    = errors.New("packet shorter than nci header")
	ErrPayloadOverrun = errors.New("declared payload length exceeds packet")
)

// DecodeMessageType extracts the MT field of a first header byte.
// Reserved values resolve to MessageTypeRFU.
func DecodeMessageType(b byte) MessageType {
	mt := (b >> mtShift) & mtMask
	return MessageType(clamp(int(mt), len(messageTypeNames)))
}

// DecodeGroup resolves a GID. Only the low 4 bits are considered.
func DecodeGroup(gid uint8) Group {
	switch gid & gidMask {
	case GIDCore:
		return GroupCore
	case GIDRF:
		return GroupRFManagement
	case GIDNFCEE:
		return GroupNFCEEManagement
	case GIDProprietary:
		return GroupProprietary
	default:
		return GroupRFU
	}
}

func headerWErr(raw []byte) ([]byte, error) {
	return getBytes(raw, 0, HeaderLength)
}

func payloadWErr(raw []byte, length uint8) ([]byte, error) {
	end := HeaderLength + int(length)
	if end > len(raw) {
		return nil, errors.Wrapf(ErrPayloadOverrun, "want %v bytes, have %v", end, len(raw))
	}
	return raw[HeaderLength:end], nil
}

//get or default
func getByte(b []byte, i int, def byte) (byte, error) {
	bb, err := getBytes(b, i, 1)
	if err != nil {
		return def, err
	}
	return bb[0], nil
}

func getBytes(bytes []byte, start int, count int) ([]byte, error) {
	if bytes == nil || start >= len(bytes) {
		return nil, ErrShortPacket
	}

	end := start + count
	//end is non-inclusive
	if end > len(bytes) {
		return nil, ErrShortPacket
	}

	return bytes[start:end], nil
}
