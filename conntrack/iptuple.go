package conntrack

import (
	"net/netip"

	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
)

// IPAttr is a member of a CTA_TUPLE_IP group: SourceAddress,
// DestinationAddress or Opaque.
type IPAttr interface {
	attr
	isIPAttr()
}

// SourceAddress is CTA_IP_V4_SRC. IPv6 addresses use the same kind, the
// family follows from the length of the value. The wire format has no room
// for an IPv6 zone: it is not encoded and decoded addresses never carry one.
// The address must be valid, the zero netip.Addr has no encoding.
type SourceAddress netip.Addr

// DestinationAddress is CTA_IP_V4_DST. Zones are dropped as for
// SourceAddress.
type DestinationAddress netip.Addr

func (SourceAddress) Kind() uint16      { return CTA_IP_V4_SRC }
func (DestinationAddress) Kind() uint16 { return CTA_IP_V4_DST }

func (a SourceAddress) valueLen() int      { return addrLen(netip.Addr(a)) }
func (a DestinationAddress) valueLen() int { return addrLen(netip.Addr(a)) }

func (a SourceAddress) marshalValue(b []byte)      { copy(b, netip.Addr(a).AsSlice()) }
func (a DestinationAddress) marshalValue(b []byte) { copy(b, netip.Addr(a).AsSlice()) }

func (a SourceAddress) String() string      { return netip.Addr(a).String() }
func (a DestinationAddress) String() string { return netip.Addr(a).String() }

func (SourceAddress) isIPAttr()      {}
func (DestinationAddress) isIPAttr() {}

func addrLen(a netip.Addr) int {
	return a.BitLen() / 8
}

// parseAddr infers the family from the number of bytes: 4 is IPv4, 16 IPv6.
func parseAddr(b []byte) (netip.Addr, error) {
	switch len(b) {
	case 4, 16:
		addr, _ := netip.AddrFromSlice(b)
		return addr, nil
	}
	return netip.Addr{}, errors.Wrapf(ErrInvalidLength, "want 4 or 16 bytes, got %d", len(b))
}

func parseIPAttr(a netlink.Attribute) (IPAttr, error) {
	switch a.Type & typeMask {
	case CTA_IP_V4_SRC:
		addr, err := parseAddr(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_IP_V4_SRC value")
		}
		return SourceAddress(addr), nil
	case CTA_IP_V4_DST:
		addr, err := parseAddr(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_IP_V4_DST value")
		}
		return DestinationAddress(addr), nil
	}
	return parseOpaque(a, "CTA_TUPLE_IP"), nil
}
