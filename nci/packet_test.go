package nci

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessageTypeTotal(t *testing.T) {
	for i := 0; i < 256; i++ {
		mt := DecodeMessageType(byte(i))
		assert.LessOrEqual(t, int(mt), int(MessageTypeRFU), "byte %#02x", i)
		assert.NotEmpty(t, mt.String())
	}

	assert.Equal(t, Data, DecodeMessageType(0x00))
	assert.Equal(t, ControlCommand, DecodeMessageType(0x20))
	assert.Equal(t, ControlResponse, DecodeMessageType(0x40))
	assert.Equal(t, ControlNotification, DecodeMessageType(0x6F))
	assert.Equal(t, MessageTypeRFU, DecodeMessageType(0x80))
	assert.Equal(t, MessageTypeRFU, DecodeMessageType(0xE0))
}

func TestGroupAndOpcodeLookupTotal(t *testing.T) {
	for gid := 0; gid < 16; gid++ {
		g := DecodeGroup(uint8(gid))
		assert.LessOrEqual(t, int(g), int(GroupRFU))
		for oid := 0; oid < 64; oid++ {
			assert.NotEmpty(t, OpcodeName(g, uint8(oid)))
		}
	}

	assert.Equal(t, GroupProprietary, DecodeGroup(0x0F))
	assert.Equal(t, GroupRFU, DecodeGroup(0x03))
	assert.Equal(t, GroupRFU, DecodeGroup(0x0E))
}

func TestOpcodeNameClampsToRFU(t *testing.T) {
	tests := []struct {
		g    Group
		oid  uint8
		want string
	}{
		{GroupCore, 0x00, "CORE_RESET"},
		{GroupCore, 0x08, "CORE_INTERFACE_ERROR"},
		{GroupCore, uint8(len(coreOpcodes) - 1), "RFU"},
		{GroupCore, 0x3F, "RFU"},
		{GroupRFManagement, 0x05, "RF_INTF_ACTIVATED"},
		{GroupRFManagement, 0x0B, "RF_PARAMETER_UPDATE"},
		{GroupRFManagement, 0x30, "RFU"},
		{GroupNFCEEManagement, 0x01, "NFCEE_MODE_SET"},
		{GroupNFCEEManagement, 0x3F, "RFU"},
		{GroupProprietary, 0x00, "GID_Proprietary"},
		{GroupRFU, 0x00, "GID_RFU"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, OpcodeName(tc.g, tc.oid), "%v/%#02x", tc.g, tc.oid)
	}
}

func TestDecodeCoreReset(t *testing.T) {
	p, err := Decode(HostToController, []byte{0x20, 0x00, 0x01, 0x01}, 42)
	require.NoError(t, err)

	assert.Equal(t, KindControl, p.Kind)
	assert.Equal(t, ControlCommand, p.MessageType)
	assert.Equal(t, "CORE_RESET_CMD", p.Name())
	assert.Equal(t, uint64(42), p.Timestamp)
	assert.Equal(t, []byte{0x01}, p.Control.Payload)
}

func TestDecodeControlNames(t *testing.T) {
	tests := []struct {
		raw  []byte
		want string
	}{
		{[]byte{0x40, 0x00, 0x03, 0x00, 0x10, 0x00}, "CORE_RESET_RSP"},
		{[]byte{0x61, 0x05, 0x00}, "RF_INTF_ACTIVATED_NTF"},
		{[]byte{0x22, 0x01, 0x00}, "NFCEE_MODE_SET_CMD"},
		{[]byte{0x2F, 0x02, 0x00}, "GID_Proprietary_CMD"},
		{[]byte{0x6A, 0x00, 0x00}, "GID_RFU_NTF"},
		{[]byte{0x41, 0xFF, 0x00}, "RFU_RSP"},
	}

	for _, tc := range tests {
		p, err := Decode(ControllerToHost, tc.raw, 0)
		require.NoError(t, err)
		assert.Equal(t, tc.want, p.Name())
	}
}

func TestDecodeDataPacket(t *testing.T) {
	p, err := Decode(ControllerToHost, []byte{0x00, 0x00, 0x02, 0xAA, 0xBB}, 0)
	require.NoError(t, err)

	assert.Equal(t, KindData, p.Kind)
	assert.Equal(t, Data, p.MessageType)
	assert.Equal(t, uint8(0), p.Data.ConnID)
	assert.Equal(t, uint8(2), p.Data.PayloadLength)
	assert.Equal(t, []byte{0xAA, 0xBB}, p.Data.Payload)
	assert.Empty(t, p.Name())
}

func TestDecodeHeaderBits(t *testing.T) {
	p, err := Decode(HostToController, []byte{0x13, 0x00, 0x00}, 0)
	require.NoError(t, err)

	assert.Equal(t, KindData, p.Kind)
	assert.Equal(t, uint8(3), p.Data.ConnID)
	assert.True(t, p.Segmented())
	assert.Empty(t, p.Data.Payload)
}

func TestDecodePayloadOverrun(t *testing.T) {
	p, err := Decode(HostToController, []byte{0x00, 0x00, 0x05, 0xAA}, 0)
	require.Error(t, err)

	assert.Equal(t, ErrPayloadOverrun, errors.Cause(err))
	assert.Equal(t, KindUnknown, p.Kind)
	assert.Equal(t, Data, p.MessageType)
	assert.Equal(t, []byte{0x00, 0x00, 0x05, 0xAA}, p.Raw)
}

func TestDecodeShortPacket(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, {0x20}, {0x20, 0x00}} {
		p, err := Decode(HostToController, raw, 0)
		require.Error(t, err)
		assert.Equal(t, ErrShortPacket, errors.Cause(err))
		assert.Equal(t, KindUnknown, p.Kind)
	}
}

func TestDecodeReservedMessageType(t *testing.T) {
	p, err := Decode(ControllerToHost, []byte{0xE0, 0x00, 0x00}, 0)
	require.NoError(t, err)

	assert.Equal(t, KindUnknown, p.Kind)
	assert.Equal(t, MessageTypeRFU, p.MessageType)
	assert.Equal(t, "RFU", p.MessageType.String())
}

func TestDecodeNeverPanics(t *testing.T) {
	for b0 := 0; b0 < 256; b0++ {
		for _, l := range []byte{0, 1, 255} {
			raw := []byte{byte(b0), 0xFF, l, 0x01}
			assert.NotPanics(t, func() {
				_, _ = Decode(HostToController, raw, 0)
			})
		}
	}
}
