package conntrack

import (
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
)

// Attribute is a top level ctnetlink attribute: TupleOrig, ProtoInfo or
// Opaque.
type Attribute interface {
	attr
	isAttribute()
}

// TupleOrig is CTA_TUPLE_ORIG, the tuple of the original direction.
type TupleOrig []Tuple

// ProtoInfo is CTA_PROTOINFO, the layer 4 protocol state.
type ProtoInfo []ProtoInfoAttr

func (TupleOrig) Kind() uint16 { return CTA_TUPLE_ORIG | netlink.Nested }
func (ProtoInfo) Kind() uint16 { return CTA_PROTOINFO | netlink.Nested }

func (t TupleOrig) valueLen() int { return attrsLen(t) }
func (p ProtoInfo) valueLen() int { return attrsLen(p) }

func (t TupleOrig) marshalValue(b []byte) { marshalAttrs(b, t) }
func (p ProtoInfo) marshalValue(b []byte) { marshalAttrs(b, p) }

func (TupleOrig) isAttribute() {}
func (ProtoInfo) isAttribute() {}

// ParseAttribute decodes one top level attribute. Kinds it does not model
// come back as Opaque, never as an error.
func ParseAttribute(a netlink.Attribute) (Attribute, error) {
	switch a.Type & typeMask {
	case CTA_TUPLE_ORIG:
		tuples, err := parseAttrs(a.Data, parseTuple)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_TUPLE_ORIG value")
		}
		return TupleOrig(tuples), nil
	case CTA_PROTOINFO:
		infos, err := parseAttrs(a.Data, parseProtoInfoAttr)
		if err != nil {
			return nil, errors.Wrap(err, "invalid CTA_PROTOINFO value")
		}
		return ProtoInfo(infos), nil
	}
	return parseOpaque(a, "ctnetlink"), nil
}

// ParseAttributes decodes a whole attribute stream, such as the body of a
// ctnetlink message.
func ParseAttributes(b []byte) ([]Attribute, error) {
	return parseAttrs(b, ParseAttribute)
}

// AttributesLen returns the number of bytes MarshalAttributes writes.
func AttributesLen(attrs []Attribute) int {
	return attrsLen(attrs)
}

// MarshalAttributes writes attrs, each one padded, into b and returns the
// number of bytes written. b must hold AttributesLen(attrs) bytes.
func MarshalAttributes(b []byte, attrs []Attribute) int {
	return marshalAttrs(b, attrs)
}
