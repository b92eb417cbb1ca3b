package conntrack

import (
	"github.com/google/nftables/binaryutil"
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
)

// ProtoAttr is a member of a CTA_TUPLE_PROTO group: Protocol, SourcePort,
// DestinationPort or Opaque.
type ProtoAttr interface {
	attr
	isProtoAttr()
}

// Protocol is CTA_PROTO_NUM, the layer 4 protocol number.
type Protocol uint8

// SourcePort is CTA_PROTO_SRC_PORT, in host order. It travels big endian.
type SourcePort uint16

// DestinationPort is CTA_PROTO_DST_PORT.
type DestinationPort uint16

func (Protocol) Kind() uint16        { return CTA_PROTO_NUM }
func (SourcePort) Kind() uint16      { return CTA_PROTO_SRC_PORT }
func (DestinationPort) Kind() uint16 { return CTA_PROTO_DST_PORT }

func (Protocol) valueLen() int        { return 1 }
func (SourcePort) valueLen() int      { return 2 }
func (DestinationPort) valueLen() int { return 2 }

func (p Protocol) marshalValue(b []byte) { b[0] = uint8(p) }

func (p SourcePort) marshalValue(b []byte) {
	copy(b, binaryutil.BigEndian.PutUint16(uint16(p)))
}

func (p DestinationPort) marshalValue(b []byte) {
	copy(b, binaryutil.BigEndian.PutUint16(uint16(p)))
}

func (Protocol) isProtoAttr()        {}
func (SourcePort) isProtoAttr()      {}
func (DestinationPort) isProtoAttr() {}

func parseU16BE(b []byte) (uint16, error) {
	if len(b) != 2 {
		return 0, errors.Wrapf(ErrInvalidLength, "want 2 bytes, got %d", len(b))
	}
	return binaryutil.BigEndian.Uint16(b), nil
}

func parseProtoAttr(a netlink.Attribute) (ProtoAttr, error) {
	switch a.Type & typeMask {
	case CTA_PROTO_NUM:
		v, err := parseU8(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTO_NUM value")
		}
		return Protocol(v), nil
	case CTA_PROTO_SRC_PORT:
		v, err := parseU16BE(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTO_SRC_PORT value")
		}
		return SourcePort(v), nil
	case CTA_PROTO_DST_PORT:
		v, err := parseU16BE(a.Data)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTO_DST_PORT value")
		}
		return DestinationPort(v), nil
	}
	return parseOpaque(a, "CTA_TUPLE_PROTO"), nil
}
