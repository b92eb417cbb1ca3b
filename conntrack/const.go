package conntrack

import (
	"fmt"

	"github.com/mdlayher/netlink"
	"github.com/vishvananda/netlink/nl"
	"golang.org/x/sys/unix"
)

// Subsystem is the nfnetlink subsystem id of ctnetlink.
const Subsystem = unix.NFNL_SUBSYS_CTNETLINK

// ctnetlink message types (linux/netfilter/nfnetlink_conntrack.h)
const (
	MessageGet    = nl.IPCTNL_MSG_CT_GET
	MessageDelete = nl.IPCTNL_MSG_CT_DELETE
)

// enum ctattr_type
const (
	CTA_TUPLE_ORIG = 1
	CTA_PROTOINFO  = 4
)

// enum ctattr_tuple
const (
	CTA_TUPLE_IP    = 1
	CTA_TUPLE_PROTO = 2
)

// enum ctattr_ip. The v4 codes carry both families, the address length
// tells them apart.
const (
	CTA_IP_V4_SRC = 1
	CTA_IP_V4_DST = 2
)

// enum ctattr_l4proto
const (
	CTA_PROTO_NUM      = 1
	CTA_PROTO_SRC_PORT = 2
	CTA_PROTO_DST_PORT = 3
)

// enum ctattr_protoinfo
const (
	CTA_PROTOINFO_TCP = 1
)

// enum ctattr_protoinfo_tcp
const (
	CTA_PROTOINFO_TCP_STATE           = 1
	CTA_PROTOINFO_TCP_WSCALE_ORIGINAL = 2
	CTA_PROTOINFO_TCP_WSCALE_REPLY    = 3
	CTA_PROTOINFO_TCP_FLAGS_ORIGINAL  = 4
	CTA_PROTOINFO_TCP_FLAGS_REPLY     = 5
)

// typeMask strips the nested and byte order flags from an attribute kind.
const typeMask = ^uint16(netlink.Nested | netlink.NetByteOrder)

// enum tcp_conntrack
const (
	TCPStateNone TCPState = iota
	TCPStateSynSent
	TCPStateSynRecv
	TCPStateEstablished
	TCPStateFinWait
	TCPStateCloseWait
	TCPStateLastAck
	TCPStateTimeWait
	TCPStateClose
	TCPStateSynSent2
)

var tcpStateNames = map[TCPState]string{
	TCPStateNone:        "NONE",
	TCPStateSynSent:     "SYN_SENT",
	TCPStateSynRecv:     "SYN_RECV",
	TCPStateEstablished: "ESTABLISHED",
	TCPStateFinWait:     "FIN_WAIT",
	TCPStateCloseWait:   "CLOSE_WAIT",
	TCPStateLastAck:     "LAST_ACK",
	TCPStateTimeWait:    "TIME_WAIT",
	TCPStateClose:       "CLOSE",
	TCPStateSynSent2:    "SYN_SENT2",
}

// String returns the kernel name of the state, or its number when the
// state is newer than this package.
func (s TCPState) String() string {
	if name, found := tcpStateNames[s]; found {
		return name
	}
	return fmt.Sprintf("TCPState(%d)", uint8(s))
}
