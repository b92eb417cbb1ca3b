package conntrack

import (
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
)

// ErrUnsupportedPacket is returned by TupleFromPacket for packets that do
// not carry IP and a port based transport.
var ErrUnsupportedPacket = errors.New("unsupported packet")

// TupleFromPacket builds the original tuple of the connection pkt belongs
// to, as sent from the host that emitted it. It is meant for GET queries
// about packets intercepted in userspace.
func TupleFromPacket(pkt gopacket.Packet) (TupleOrig, error) {
	var src, dst netip.Addr
	var ok bool

	switch ip := pkt.NetworkLayer().(type) {
	case *layers.IPv4:
		if src, ok = netip.AddrFromSlice(ip.SrcIP.To4()); !ok {
			return nil, errors.Wrap(ErrUnsupportedPacket, "bad IPv4 source")
		}
		if dst, ok = netip.AddrFromSlice(ip.DstIP.To4()); !ok {
			return nil, errors.Wrap(ErrUnsupportedPacket, "bad IPv4 destination")
		}
	case *layers.IPv6:
		if src, ok = netip.AddrFromSlice(ip.SrcIP.To16()); !ok {
			return nil, errors.Wrap(ErrUnsupportedPacket, "bad IPv6 source")
		}
		if dst, ok = netip.AddrFromSlice(ip.DstIP.To16()); !ok {
			return nil, errors.Wrap(ErrUnsupportedPacket, "bad IPv6 destination")
		}
	default:
		return nil, errors.Wrap(ErrUnsupportedPacket, "no IP layer")
	}

	var proto layers.IPProtocol
	var sport, dport uint16
	// The protocol comes from the decoded transport layer: with IPv6 the
	// next header field may point at an extension header instead.
	switch l4 := pkt.TransportLayer().(type) {
	case *layers.TCP:
		proto, sport, dport = layers.IPProtocolTCP, uint16(l4.SrcPort), uint16(l4.DstPort)
	case *layers.UDP:
		proto, sport, dport = layers.IPProtocolUDP, uint16(l4.SrcPort), uint16(l4.DstPort)
	case *layers.UDPLite:
		proto, sport, dport = layers.IPProtocolUDPLite, uint16(l4.SrcPort), uint16(l4.DstPort)
	case *layers.SCTP:
		proto, sport, dport = layers.IPProtocolSCTP, uint16(l4.SrcPort), uint16(l4.DstPort)
	default:
		return nil, errors.Wrap(ErrUnsupportedPacket, "no TCP, UDP, UDPLite or SCTP layer")
	}

	return TupleOrig{
		IPTuple{SourceAddress(src), DestinationAddress(dst)},
		ProtoTuple{Protocol(proto), SourcePort(sport), DestinationPort(dport)},
	}, nil
}
