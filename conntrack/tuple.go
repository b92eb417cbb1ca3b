package conntrack

import (
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
)

// Tuple is a member of CTA_TUPLE_ORIG: an IPTuple, a ProtoTuple or Opaque.
type Tuple interface {
	attr
	isTuple()
}

// IPTuple is the nested CTA_TUPLE_IP group holding the addresses.
type IPTuple []IPAttr

// ProtoTuple is the nested CTA_TUPLE_PROTO group holding protocol and ports.
type ProtoTuple []ProtoAttr

func (IPTuple) Kind() uint16    { return CTA_TUPLE_IP | netlink.Nested }
func (ProtoTuple) Kind() uint16 { return CTA_TUPLE_PROTO | netlink.Nested }

func (t IPTuple) valueLen() int    { return attrsLen(t) }
func (t ProtoTuple) valueLen() int { return attrsLen(t) }

func (t IPTuple) marshalValue(b []byte)    { marshalAttrs(b, t) }
func (t ProtoTuple) marshalValue(b []byte) { marshalAttrs(b, t) }

func (IPTuple) isTuple()    {}
func (ProtoTuple) isTuple() {}

func parseTuple(a netlink.Attribute) (Tuple, error) {
	switch a.Type & typeMask {
	case CTA_TUPLE_IP:
		attrs, err := parseAttrs(a.Data, parseIPAttr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_TUPLE_IP value")
		}
		return IPTuple(attrs), nil
	case CTA_TUPLE_PROTO:
		attrs, err := parseAttrs(a.Data, parseProtoAttr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_TUPLE_PROTO value")
		}
		return ProtoTuple(attrs), nil
	}
	return parseOpaque(a, "CTA_TUPLE_ORIG"), nil
}
