package conntrack

import (
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
)

// ProtoInfoAttr is a member of CTA_PROTOINFO: ProtoInfoTCP or Opaque.
type ProtoInfoAttr interface {
	attr
	isProtoInfoAttr()
}

// ProtoInfoTCP is the nested CTA_PROTOINFO_TCP group.
type ProtoInfoTCP []TCPAttr

func (ProtoInfoTCP) Kind() uint16 { return CTA_PROTOINFO_TCP | netlink.Nested }

func (p ProtoInfoTCP) valueLen() int { return attrsLen(p) }

func (p ProtoInfoTCP) marshalValue(b []byte) { marshalAttrs(b, p) }

func (ProtoInfoTCP) isProtoInfoAttr() {}

func parseProtoInfoAttr(a netlink.Attribute) (ProtoInfoAttr, error) {
	switch a.Type & typeMask {
	case CTA_PROTOINFO_TCP:
		attrs, err := parseAttrs(a.Data, parseTCPAttr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO_TCP value")
		}
		return ProtoInfoTCP(attrs), nil
	}
	return parseOpaque(a, "CTA_PROTOINFO"), nil
}
