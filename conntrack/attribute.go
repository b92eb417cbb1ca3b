package conntrack

import (
	"github.com/mdlayher/netlink"
	"github.com/mdlayher/netlink/nlenc"
	"github.com/pkg/errors"

	"github.com/shivkr6/netlink-packet-netfilter/log"
)

const (
	attrHeaderLen = 4
	attrAlignTo   = 4
)

var (
	// ErrInvalidLength is returned when an attribute does not fit in the
	// buffer, or when a fixed width value has the wrong number of bytes.
	ErrInvalidLength = errors.New("invalid length")
)

// attr is implemented by every attribute, at every nesting level.
type attr interface {
	// Kind returns the attribute type as written on the wire, flags included.
	Kind() uint16
	valueLen() int
	marshalValue(b []byte)
}

func align(n int) int {
	return (n + attrAlignTo - 1) & ^(attrAlignTo - 1)
}

// attrLen returns the padded footprint of a.
func attrLen(a attr) int {
	return align(attrHeaderLen + a.valueLen())
}

func attrsLen[T attr](attrs []T) int {
	n := 0
	for _, a := range attrs {
		n += attrLen(a)
	}
	return n
}

// marshalAttr writes a at the start of b and returns its padded footprint.
// b must hold at least attrLen(a) bytes.
func marshalAttr(b []byte, a attr) int {
	l := attrHeaderLen + a.valueLen()
	nlenc.PutUint16(b[0:2], uint16(l))
	nlenc.PutUint16(b[2:4], a.Kind())
	a.marshalValue(b[attrHeaderLen:l])

	n := align(l)
	for i := l; i < n; i++ {
		b[i] = 0
	}
	return n
}

func marshalAttrs[T attr](b []byte, attrs []T) int {
	n := 0
	for _, a := range attrs {
		n += marshalAttr(b[n:], a)
	}
	return n
}

// parseAttrs walks b as a sequence of padded attributes and hands every one
// of them, with its raw kind, to fn. Nested groups call it again on their
// own payload.
func parseAttrs[T any](b []byte, fn func(a netlink.Attribute) (T, error)) ([]T, error) {
	if err := checkLengths(b); err != nil {
		return nil, err
	}

	ad, err := netlink.NewAttributeDecoder(b)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidLength, "malformed attributes (%v)", err)
	}

	var out []T
	for ad.Next() {
		v, err := fn(netlink.Attribute{
			Type: ad.Type() | ad.TypeFlags(),
			Data: ad.Bytes(),
		})
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := ad.Err(); err != nil {
		return nil, errors.Wrapf(ErrInvalidLength, "malformed attributes (%v)", err)
	}
	return out, nil
}

// checkLengths rejects attributes whose length field is shorter than the
// header itself, which the netlink decoder would hand out as empty values.
func checkLengths(b []byte) error {
	for i := 0; i+attrHeaderLen <= len(b); {
		l := int(nlenc.Uint16(b[i : i+2]))
		if l < attrHeaderLen {
			return errors.Wrapf(ErrInvalidLength, "attribute at offset %d declares %d bytes", i, l)
		}
		i += align(l)
	}
	return nil
}

// Opaque is an attribute this package has no model for. It keeps the kind,
// flags included, and the value untouched so it can be written back as is.
type Opaque struct {
	Type uint16
	Data []byte
}

func (o Opaque) Kind() uint16 { return o.Type }

// Nested reports whether the kind carries the nested flag.
func (o Opaque) Nested() bool { return o.Type&netlink.Nested != 0 }

func (o Opaque) valueLen() int { return len(o.Data) }

func (o Opaque) marshalValue(b []byte) { copy(b, o.Data) }

func (Opaque) isAttribute()     {}
func (Opaque) isTuple()         {}
func (Opaque) isIPAttr()        {}
func (Opaque) isProtoAttr()     {}
func (Opaque) isProtoInfoAttr() {}
func (Opaque) isTCPAttr()       {}

func parseOpaque(a netlink.Attribute, level string) Opaque {
	if log.Enabled(log.DEBUG) {
		log.Debug("conntrack: keeping unknown %s attribute %d (flags 0x%x, %d bytes)",
			level, a.Type&typeMask, a.Type&^typeMask, len(a.Data))
	}
	return Opaque{Type: a.Type, Data: a.Data}
}

func parseU8(b []byte) (uint8, error) {
	if len(b) != 1 {
		return 0, errors.Wrapf(ErrInvalidLength, "want 1 byte, got %d", len(b))
	}
	return b[0], nil
}
