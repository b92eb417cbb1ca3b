package netfilter

import (
	"github.com/mdlayher/netlink"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/shivkr6/netlink-packet-netfilter/conntrack"
)

// Payload is what follows the nfgenmsg header.
type Payload interface {
	Subsystem() uint8
	MessageType() uint8
	Len() int
	MarshalTo(b []byte) int
}

// Conntrack carries a ctnetlink message.
type Conntrack struct {
	conntrack.Message
}

func (Conntrack) Subsystem() uint8 { return conntrack.Subsystem }

// Opaque carries a message of a subsystem this package does not decode.
type Opaque struct {
	Subsys uint8
	Type   uint8
	Data   []byte
}

func (o Opaque) Subsystem() uint8       { return o.Subsys }
func (o Opaque) MessageType() uint8     { return o.Type }
func (o Opaque) Len() int               { return len(o.Data) }
func (o Opaque) MarshalTo(b []byte) int { return copy(b, o.Data) }

// Message is a complete nfnetlink message minus the netlink header.
type Message struct {
	Header  Header
	Payload Payload
}

// NewMessage wraps a ctnetlink message.
func NewMessage(h Header, m conntrack.Message) Message {
	return Message{Header: h, Payload: Conntrack{m}}
}

// Type returns the netlink message type: subsystem in the high byte,
// message type in the low one.
func (m Message) Type() netlink.HeaderType {
	return netlink.HeaderType(uint16(m.Payload.Subsystem())<<8 | uint16(m.Payload.MessageType()))
}

// Len returns the encoded length of header and payload.
func (m Message) Len() int {
	return HeaderLen + m.Payload.Len()
}

// MarshalBinary encodes header and payload.
func (m Message) MarshalBinary() ([]byte, error) {
	b := make([]byte, m.Len())
	m.Header.MarshalTo(b)
	m.Payload.MarshalTo(b[HeaderLen:])
	return b, nil
}

// Netlink returns m as a netlink message with the type and length of the
// netlink header filled in. Flags and sequence number are up to the caller.
func (m Message) Netlink() (netlink.Message, error) {
	data, err := m.MarshalBinary()
	if err != nil {
		return netlink.Message{}, err
	}
	return netlink.Message{
		Header: netlink.Header{
			Length: uint32(unix.NLMSG_HDRLEN + len(data)),
			Type:   m.Type(),
		},
		Data: data,
	}, nil
}

// Parse decodes the nfnetlink message carried by nm.
func Parse(nm netlink.Message) (Message, error) {
	h, err := parseHeader(nm.Data)
	if err != nil {
		return Message{}, err
	}

	subsys := uint8(nm.Header.Type >> 8)
	msgType := uint8(nm.Header.Type)
	body := nm.Data[HeaderLen:]

	switch subsys {
	case conntrack.Subsystem:
		cm, err := conntrack.ParseMessage(body, msgType)
		if err != nil {
			return Message{}, errors.Wrapf(err, "ctnetlink message type %d", msgType)
		}
		return NewMessage(h, cm), nil
	}

	data := make([]byte, len(body))
	copy(data, body)
	return Message{
		Header:  h,
		Payload: Opaque{Subsys: subsys, Type: msgType, Data: data},
	}, nil
}
