package nci

// Header layout [NCI 2.0, 3.4].
const (
	headerOffsetMTPBFGID = 0
	headerOffsetOID      = 1
	headerOffsetLength   = 2
	HeaderLength         = 3

	mtShift  = 5
	mtMask   = 0x07
	pbfShift = 4
	pbfMask  = 0x01
	gidMask  = 0x0F // also the connection ID of a data packet
	oidMask  = 0x3F
)

// MessageType is the 3-bit MT field of the first header byte.
type MessageType uint8

const (
	Data MessageType = iota
	ControlCommand
	ControlResponse
	ControlNotification
	MessageTypeRFU
)

var messageTypeNames = []string{
	"Data",
	"ControlCommand",
	"ControlResponse",
	"ControlNotification",
	"RFU",
}

func (t MessageType) String() string {
	return messageTypeNames[clamp(int(t), len(messageTypeNames))]
}

// Packet boundary flag values.
const (
	PbfComplete = 0x00 // Last (or only) segment of a message.
	PbfSegment  = 0x01 // Segment continued in the next packet.
)

// Group is the semantic group a 4-bit GID resolves to.
type Group uint8

const (
	GroupCore Group = iota
	GroupRFManagement
	GroupNFCEEManagement
	GroupProprietary
	GroupRFU
)

// Group identifiers [NCI 2.0, Table 102].
const (
	GIDCore        = 0x00
	GIDRF          = 0x01
	GIDNFCEE       = 0x02
	GIDProprietary = 0x0F
)

var groupNames = []string{
	"NCI_Core",
	"RF_Management",
	"NFCEE_Management",
	"Proprietary",
	"RFU",
}

func (g Group) String() string {
	return groupNames[clamp(int(g), len(groupNames))]
}

// Opcode tables, indexed by OID. Each table ends with the RFU sentinel.
var coreOpcodes = []string{
	"CORE_RESET",               // 0x00
	"CORE_INIT",                // 0x01
	"CORE_SET_CONFIG",          // 0x02
	"CORE_GET_CONFIG",          // 0x03
	"CORE_CONN_CREATE",         // 0x04
	"CORE_CONN_CLOSE",          // 0x05
	"CORE_CONN_CREDITS",        // 0x06
	"CORE_GENERIC_ERROR",       // 0x07
	"CORE_INTERFACE_ERROR",     // 0x08
	"CORE_SET_POWER_SUB_STATE", // 0x09
	rfu,
}

var rfManagementOpcodes = []string{
	"RF_DISCOVER_MAP",             // 0x00
	"RF_SET_LISTEN_MODE_ROUTING",  // 0x01
	"RF_GET_LISTEN_MODE_ROUTING",  // 0x02
	"RF_DISCOVER",                 // 0x03
	"RF_DISCOVER_SELECT",          // 0x04
	"RF_INTF_ACTIVATED",           // 0x05
	"RF_DEACTIVATE",               // 0x06
	"RF_FIELD_INFO",               // 0x07
	"RF_T3T_POLLING",              // 0x08
	"RF_NFCEE_ACTION",             // 0x09
	"RF_NFCEE_DISCOVERY_REQ",      // 0x0A
	"RF_PARAMETER_UPDATE",         // 0x0B
	"RF_INTF_EXT_START",           // 0x0C
	"RF_INTF_EXT_STOP",            // 0x0D
	"RF_EXT_AGG_ABORT",            // 0x0E
	"RF_NDEF_ABORT",               // 0x0F
	"RF_ISO_DEP_NAK_PRESENCE",     // 0x10
	"RF_SET_FORCED_NFCEE_ROUTING", // 0x11
	rfu,
}

var nfceeManagementOpcodes = []string{
	"NFCEE_DISCOVER",             // 0x00
	"NFCEE_MODE_SET",             // 0x01
	"NFCEE_STATUS",               // 0x02
	"NFCEE_POWER_AND_LINK_CNTRL", // 0x03
	rfu,
}

const rfu = "RFU"

// Name suffixes per control message type.
var controlSuffixes = map[MessageType]string{
	ControlCommand:      "_CMD",
	ControlResponse:     "_RSP",
	ControlNotification: "_NTF",
}

// clamp maps v into a table of n entries whose last entry is the RFU
// sentinel. Anything outside [0, n-1) lands on the sentinel.
func clamp(v, n int) int {
	if v >= 0 && v < n-1 {
		return v
	}
	return n - 1
}
