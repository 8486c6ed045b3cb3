package nci

var opcodeTables = map[Group][]string{
	GroupCore:            coreOpcodes,
	GroupRFManagement:    rfManagementOpcodes,
	GroupNFCEEManagement: nfceeManagementOpcodes,
}

// Fixed labels for groups without an opcode table.
const (
	labelProprietary = "GID_Proprietary"
	labelGroupRFU    = "GID_RFU"
)

// OpcodeName returns the operation name of oid within group g. OIDs past
// the end of the group's table name the RFU sentinel.
func OpcodeName(g Group, oid uint8) string {
	switch g {
	case GroupProprietary:
		return labelProprietary
	case GroupRFU:
		return labelGroupRFU
	}

	table, ok := opcodeTables[g]
	if !ok {
		return labelGroupRFU
	}
	return table[clamp(int(oid&oidMask), len(table))]
}

// ControlName builds the display name of a control message, e.g.
// CORE_RESET_CMD or RF_INTF_ACTIVATED_NTF.
func ControlName(mt MessageType, gid, oid uint8) string {
	return OpcodeName(DecodeGroup(gid), oid) + controlSuffixes[mt]
}
