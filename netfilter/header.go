// Package netfilter frames nfnetlink messages: the nfgenmsg header, the
// subsystem dispatch and the conversion to and from netlink messages.
// Sockets, sequence numbers and flags are left to the caller.
package netfilter

import (
	"github.com/google/nftables/binaryutil"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// HeaderLen is the size of struct nfgenmsg.
const HeaderLen = 4

// ErrShortMessage is returned when a message is too small to hold an
// nfgenmsg header.
var ErrShortMessage = errors.New("short nfnetlink message")

// Header is struct nfgenmsg.
type Header struct {
	Family     uint8
	Version    uint8
	ResourceID uint16
}

// NewHeader returns a version 0 header.
func NewHeader(family uint8, resID uint16) Header {
	return Header{
		Family:     family,
		Version:    unix.NFNETLINK_V0,
		ResourceID: resID,
	}
}

// MarshalTo writes h into the first HeaderLen bytes of b. The resource id
// is big endian.
func (h Header) MarshalTo(b []byte) {
	b[0] = h.Family
	b[1] = h.Version
	copy(b[2:4], binaryutil.BigEndian.PutUint16(h.ResourceID))
}

func parseHeader(b []byte) (Header, error) {
	if len(b) < HeaderLen {
		return Header{}, errors.Wrapf(ErrShortMessage, "%d bytes", len(b))
	}
	return Header{
		Family:     b[0],
		Version:    b[1],
		ResourceID: binaryutil.BigEndian.Uint16(b[2:4]),
	}, nil
}
