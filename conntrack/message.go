// Package conntrack encodes and decodes the body of ctnetlink messages: the
// attribute tree that follows the nfgenmsg header.
//
// Every level of the tree is a closed set of types plus Opaque, which keeps
// attributes this package does not model so that a decoded message can be
// written back byte for byte. Only the original tuple and the protocol info
// are modeled today.
//
// Encoding is a two step affair: Len tells how big the buffer must be and
// MarshalTo fills it. Decoding never keeps references to the input buffer.
package conntrack

import (
	"github.com/mdlayher/netlink"
)

// Message is the body of a ctnetlink message.
type Message interface {
	// MessageType is the low byte of the netlink message type.
	MessageType() uint8
	// Len returns the encoded length, padding included.
	Len() int
	// MarshalTo encodes the message into b, which must hold Len() bytes,
	// and returns the number of bytes written.
	MarshalTo(b []byte) int
}

// Get is an IPCTNL_MSG_CT_GET request or reply.
type Get struct {
	Attributes []Attribute
}

// Other is any message type other than Get. Its attributes are kept opaque.
type Other struct {
	Type       uint8
	Attributes []Opaque
}

func (Get) MessageType() uint8 { return MessageGet }

func (g Get) Len() int { return attrsLen(g.Attributes) }

func (g Get) MarshalTo(b []byte) int { return marshalAttrs(b, g.Attributes) }

func (o Other) MessageType() uint8 { return o.Type }

func (o Other) Len() int { return attrsLen(o.Attributes) }

func (o Other) MarshalTo(b []byte) int { return marshalAttrs(b, o.Attributes) }

// ParseMessage decodes the attributes in b according to messageType, which
// the caller takes from the netlink header.
func ParseMessage(b []byte, messageType uint8) (Message, error) {
	switch messageType {
	case MessageGet:
		attrs, err := ParseAttributes(b)
		if err != nil {
			return nil, err
		}
		return Get{Attributes: attrs}, nil
	}

	attrs, err := parseAttrs(b, func(a netlink.Attribute) (Opaque, error) {
		return Opaque{Type: a.Type, Data: a.Data}, nil
	})
	if err != nil {
		return nil, err
	}
	return Other{Type: messageType, Attributes: attrs}, nil
}

// Marshal allocates a buffer of the right size and encodes m into it.
func Marshal(m Message) []byte {
	b := make([]byte, m.Len())
	m.MarshalTo(b)
	return b
}
