package conntrack

import (
	"net"
	"net/netip"

	vnetlink "github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// Flow returns the forward direction of t as a vishvananda/netlink flow,
// so that tuples can be compared with the flows listed by that package.
// Members t does not contain are left zero.
func (t TupleOrig) Flow() *vnetlink.ConntrackFlow {
	flow := &vnetlink.ConntrackFlow{}

	for _, tuple := range t {
		switch tuple := tuple.(type) {
		case IPTuple:
			for _, a := range tuple {
				switch a := a.(type) {
				case SourceAddress:
					flow.FamilyType = addrFamily(netip.Addr(a))
					flow.Forward.SrcIP = net.IP(netip.Addr(a).AsSlice())
				case DestinationAddress:
					flow.Forward.DstIP = net.IP(netip.Addr(a).AsSlice())
				}
			}
		case ProtoTuple:
			for _, a := range tuple {
				switch a := a.(type) {
				case Protocol:
					flow.Forward.Protocol = uint8(a)
				case SourcePort:
					flow.Forward.SrcPort = uint16(a)
				case DestinationPort:
					flow.Forward.DstPort = uint16(a)
				}
			}
		}
	}
	return flow
}

// TupleFromFlow builds the original tuple of a flow, typically to look it
// up again with a GET query. Addresses missing from the flow are left out
// of the IP group.
func TupleFromFlow(flow *vnetlink.ConntrackFlow) TupleOrig {
	ips := IPTuple{}
	if addr, ok := addrFromIP(flow.Forward.SrcIP); ok {
		ips = append(ips, SourceAddress(addr))
	}
	if addr, ok := addrFromIP(flow.Forward.DstIP); ok {
		ips = append(ips, DestinationAddress(addr))
	}

	return TupleOrig{
		ips,
		ProtoTuple{
			Protocol(flow.Forward.Protocol),
			SourcePort(flow.Forward.SrcPort),
			DestinationPort(flow.Forward.DstPort),
		},
	}
}

func addrFamily(a netip.Addr) uint8 {
	if a.Is4() {
		return unix.AF_INET
	}
	return unix.AF_INET6
}

func addrFromIP(ip net.IP) (netip.Addr, bool) {
	if ip4 := ip.To4(); ip4 != nil {
		ip = ip4
	}
	return netip.AddrFromSlice(ip)
}
