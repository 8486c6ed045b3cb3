package monitor

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/rigado/nfcsnoop/nci"
)

// Formatter renders one packet as an output line without trailing newline.
type Formatter interface {
	Format(p nci.Packet, verbose bool) (string, error)
}

// Visible reports whether p is printed at the given verbosity. Only data
// packets are shown in non-verbose mode.
func Visible(p nci.Packet, verbose bool) bool {
	return verbose || p.Kind == nci.KindData
}

// TextFormatter prints `<arrow> [<name>] <hex>` lines.
type TextFormatter struct{}

func (TextFormatter) Format(p nci.Packet, verbose bool) (string, error) {
	prefix := p.Direction.Arrow()
	if verbose {
		prefix += fmt.Sprintf(" [%s]", p.MessageType)
	}

	switch p.Kind {
	case nci.KindData:
		b := p.Data.Payload
		if verbose {
			b = p.Raw
		}
		return fmt.Sprintf("%s %X", prefix, b), nil
	case nci.KindControl:
		return fmt.Sprintf("%s [%s] %X", prefix, p.Name(), p.Raw), nil
	default:
		return fmt.Sprintf("%s %X", prefix, p.Raw), nil
	}
}

// JSONFormatter prints one JSON object per packet.
type JSONFormatter struct{}

type jsonPacket struct {
	Timestamp   uint64 `json:"timestamp"`
	Direction   string `json:"direction"`
	Kind        string `json:"kind"`
	MessageType string `json:"message_type"`
	Name        string `json:"name,omitempty"`
	ConnID      *uint8 `json:"conn_id,omitempty"`
	PBF         uint8  `json:"pbf"`
	Payload     string `json:"payload,omitempty"`
	Raw         string `json:"raw"`
}

func (JSONFormatter) Format(p nci.Packet, verbose bool) (string, error) {
	jp := jsonPacket{
		Timestamp:   p.Timestamp,
		Direction:   p.Direction.String(),
		Kind:        p.Kind.String(),
		MessageType: p.MessageType.String(),
		PBF:         p.PBF,
		Raw:         fmt.Sprintf("%X", p.Raw),
	}

	switch p.Kind {
	case nci.KindData:
		id := p.Data.ConnID
		jp.ConnID = &id
		jp.Payload = fmt.Sprintf("%X", p.Data.Payload)
	case nci.KindControl:
		jp.Name = p.Name()
		jp.Payload = fmt.Sprintf("%X", p.Control.Payload)
	}

	b, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(jp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
