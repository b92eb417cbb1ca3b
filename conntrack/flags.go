package conntrack

import (
	"github.com/pkg/errors"
)

const tcpFlagsLen = 2

// Conntrack TCP flag bits (IP_CT_TCP_FLAG_*), as carried in TCPFlags.
const (
	FlagWindowScale      uint8 = 0x01
	FlagSACKPerm         uint8 = 0x02
	FlagCloseInit        uint8 = 0x04
	FlagBeLiberal        uint8 = 0x08
	FlagUnacked          uint8 = 0x10
	FlagMaxAckSet        uint8 = 0x20
	FlagChallengeAck     uint8 = 0x40
	FlagSimultaneousOpen uint8 = 0x80
)

// TCPFlags is the value of CTA_PROTOINFO_TCP_FLAGS_*: the flags of one
// direction and the mask telling which of them are meaningful.
type TCPFlags struct {
	Flags uint8
	Mask  uint8
}

// Has reports whether every bit of flag is both set and covered by the mask.
func (f TCPFlags) Has(flag uint8) bool {
	return f.Flags&f.Mask&flag == flag
}

func (f TCPFlags) marshal(b []byte) {
	b[0] = f.Flags
	b[1] = f.Mask
}

func parseTCPFlags(b []byte) (TCPFlags, error) {
	if len(b) != tcpFlagsLen {
		return TCPFlags{}, errors.Wrapf(ErrInvalidLength, "want %d bytes, got %d", tcpFlagsLen, len(b))
	}
	return TCPFlags{Flags: b[0], Mask: b[1]}, nil
}
