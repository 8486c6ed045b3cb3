package nci

import (
	"fmt"

	"github.com/pkg/errors"
)

// Direction of a packet between the host (DH) and the NFC controller (NFCC).
type Direction uint8

const (
	HostToController Direction = iota
	ControllerToHost
)

// DirectionOf maps the snoop log's received flag to a direction.
func DirectionOf(received bool) Direction {
	if received {
		return ControllerToHost
	}
	return HostToController
}

func (d Direction) String() string {
	if d == ControllerToHost {
		return "controller_to_host"
	}
	return "host_to_controller"
}

// Arrow is the direction marker used in text output.
func (d Direction) Arrow() string {
	if d == ControllerToHost {
		return "<--"
	}
	return "-->"
}

// Kind tags which of the variant fields of a Packet are valid.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindData
	KindControl
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindControl:
		return "control"
	default:
		return "unknown"
	}
}

// DataPacket holds the fields of a data message.
type DataPacket struct {
	ConnID        uint8
	PayloadLength uint8
	Payload       []byte
}

// ControlPacket holds the fields of a command, response or notification.
type ControlPacket struct {
	GroupID       uint8
	OpcodeID      uint8
	PayloadLength uint8
	Payload       []byte
}

// Packet is one decoded NCI packet. Data is valid for KindData, Control for
// KindControl; KindUnknown packets carry only the common header fields.
type Packet struct {
	Kind        Kind
	Direction   Direction
	Timestamp   uint64
	MessageType MessageType
	PBF         uint8
	Raw         []byte

	Data    DataPacket
	Control ControlPacket
}

// Decode classifies raw and decodes it. The returned packet is always
// usable: a malformed packet comes back as KindUnknown together with an
// error describing the anomaly.
func Decode(dir Direction, raw []byte, timestamp uint64) (Packet, error) {
	p := Packet{
		Kind:        KindUnknown,
		Direction:   dir,
		Timestamp:   timestamp,
		MessageType: MessageTypeRFU,
		Raw:         raw,
	}

	b0, err := getByte(raw, headerOffsetMTPBFGID, 0xff)
	if err != nil {
		return p, errors.Wrap(err, "message type")
	}
	p.MessageType = DecodeMessageType(b0)
	p.PBF = (b0 >> pbfShift) & pbfMask

	switch p.MessageType {
	case Data:
		return p.decodeData()
	case ControlCommand, ControlResponse, ControlNotification:
		return p.decodeControl()
	default:
		return p, nil
	}
}

func (p Packet) decodeData() (Packet, error) {
	hdr, err := headerWErr(p.Raw)
	if err != nil {
		return p, errors.Wrap(err, "data header")
	}

	pl, err := payloadWErr(p.Raw, hdr[headerOffsetLength])
	if err != nil {
		return p, errors.Wrap(err, "data payload")
	}

	p.Kind = KindData
	p.Data = DataPacket{
		ConnID:        hdr[headerOffsetMTPBFGID] & gidMask,
		PayloadLength: hdr[headerOffsetLength],
		Payload:       pl,
	}
	return p, nil
}

func (p Packet) decodeControl() (Packet, error) {
	hdr, err := headerWErr(p.Raw)
	if err != nil {
		return p, errors.Wrap(err, "control header")
	}

	pl, err := payloadWErr(p.Raw, hdr[headerOffsetLength])
	if err != nil {
		return p, errors.Wrapf(err, "control payload (%v)",
			ControlName(p.MessageType, hdr[headerOffsetMTPBFGID], hdr[headerOffsetOID]))
	}

	p.Kind = KindControl
	p.Control = ControlPacket{
		GroupID:       hdr[headerOffsetMTPBFGID] & gidMask,
		OpcodeID:      hdr[headerOffsetOID] & oidMask,
		PayloadLength: hdr[headerOffsetLength],
		Payload:       pl,
	}
	return p, nil
}

// Name is the opcode name of a control packet, empty for other kinds.
func (p Packet) Name() string {
	if p.Kind != KindControl {
		return ""
	}
	return ControlName(p.MessageType, p.Control.GroupID, p.Control.OpcodeID)
}

// Segmented reports whether the packet is continued by the next one.
func (p Packet) Segmented() bool {
	return p.PBF == PbfSegment
}

func (p Packet) String() string {
	switch p.Kind {
	case KindControl:
		return fmt.Sprintf("%s %s [% X]", p.Direction.Arrow(), p.Name(), p.Control.Payload)
	case KindData:
		return fmt.Sprintf("%s conn %d [% X]", p.Direction.Arrow(), p.Data.ConnID, p.Data.Payload)
	default:
		return fmt.Sprintf("%s %s [% X]", p.Direction.Arrow(), p.MessageType, p.Raw)
	}
}
