package conntrack

import (
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
)

// TCPAttr is a member of CTA_PROTOINFO_TCP: TCPState, OriginalWindowScale,
// ReplyWindowScale, OriginalFlags, ReplyFlags or Opaque.
type TCPAttr interface {
	attr
	isTCPAttr()
}

// TCPState is CTA_PROTOINFO_TCP_STATE. The value is the kernel's
// tcp_conntrack enumerant, kept as is.
type TCPState uint8

// OriginalWindowScale is CTA_PROTOINFO_TCP_WSCALE_ORIGINAL.
type OriginalWindowScale uint8

// ReplyWindowScale is CTA_PROTOINFO_TCP_WSCALE_REPLY.
type ReplyWindowScale uint8

// OriginalFlags is CTA_PROTOINFO_TCP_FLAGS_ORIGINAL.
type OriginalFlags TCPFlags

// ReplyFlags is CTA_PROTOINFO_TCP_FLAGS_REPLY.
type ReplyFlags TCPFlags

func (TCPState) Kind() uint16            { return CTA_PROTOINFO_TCP_STATE }
func (OriginalWindowScale) Kind() uint16 { return CTA_PROTOINFO_TCP_WSCALE_ORIGINAL }
func (ReplyWindowScale) Kind() uint16    { return CTA_PROTOINFO_TCP_WSCALE_REPLY }
func (OriginalFlags) Kind() uint16       { return CTA_PROTOINFO_TCP_FLAGS_ORIGINAL }
func (ReplyFlags) Kind() uint16          { return CTA_PROTOINFO_TCP_FLAGS_REPLY }

func (TCPState) valueLen() int            { return 1 }
func (OriginalWindowScale) valueLen() int { return 1 }
func (ReplyWindowScale) valueLen() int    { return 1 }
func (OriginalFlags) valueLen() int       { return tcpFlagsLen }
func (ReplyFlags) valueLen() int          { return tcpFlagsLen }

func (s TCPState) marshalValue(b []byte)            { b[0] = uint8(s) }
func (w OriginalWindowScale) marshalValue(b []byte) { b[0] = uint8(w) }
func (w ReplyWindowScale) marshalValue(b []byte)    { b[0] = uint8(w) }
func (f OriginalFlags) marshalValue(b []byte)       { TCPFlags(f).marshal(b) }
func (f ReplyFlags) marshalValue(b []byte)          { TCPFlags(f).marshal(b) }

func (TCPState) isTCPAttr()            {}
func (OriginalWindowScale) isTCPAttr() {}
func (ReplyWindowScale) isTCPAttr()    {}
func (OriginalFlags) isTCPAttr()       {}
func (ReplyFlags) isTCPAttr()          {}

func parseTCPAttr(a netlink.Attribute) (TCPAttr, error) {
	switch a.Type & typeMask {
	case CTA_PROTOINFO_TCP_STATE:
		v, err := parseU8(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO_TCP_STATE value")
		}
		return TCPState(v), nil
	case CTA_PROTOINFO_TCP_WSCALE_ORIGINAL:
		v, err := parseU8(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO_TCP_WSCALE_ORIGINAL value")
		}
		return OriginalWindowScale(v), nil
	case CTA_PROTOINFO_TCP_WSCALE_REPLY:
		v, err := parseU8(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO_TCP_WSCALE_REPLY value")
		}
		return ReplyWindowScale(v), nil
	case CTA_PROTOINFO_TCP_FLAGS_ORIGINAL:
		f, err := parseTCPFlags(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO_TCP_FLAGS_ORIGINAL value")
		}
		return OriginalFlags(f), nil
	case CTA_PROTOINFO_TCP_FLAGS_REPLY:
		f, err := parseTCPFlags(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO_TCP_FLAGS_REPLY value")
		}
		return ReplyFlags(f), nil
	}
	return parseOpaque(a, "CTA_PROTOINFO_TCP"), nil
}
