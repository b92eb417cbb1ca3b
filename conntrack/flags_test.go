package conntrack

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseTCPFlags(t *testing.T) {
	tests := []struct {
		name    string
		b       []byte
		want    TCPFlags
		wantErr bool
	}{
		{name: "captured", b: []byte{0x0a, 0x0a}, want: TCPFlags{Flags: 10, Mask: 10}},
		{name: "flags-differ-from-mask", b: []byte{0x03, 0xff}, want: TCPFlags{Flags: 3, Mask: 0xff}},
		{name: "one-byte", b: []byte{0x0a}, wantErr: true},
		{name: "three-bytes", b: []byte{0x0a, 0x0a, 0x00}, wantErr: true},
		{name: "empty", b: nil, wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseTCPFlags(test.b)
			if test.wantErr {
				if !errors.Is(err, ErrInvalidLength) {
					t.Errorf("err = %v, want ErrInvalidLength", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != test.want {
				t.Errorf("got %+v, want %+v", got, test.want)
			}

			b := make([]byte, tcpFlagsLen)
			got.marshal(b)
			if b[0] != test.b[0] || b[1] != test.b[1] {
				t.Errorf("marshal = %x, want %x", b, test.b)
			}
		})
	}
}

func TestTCPFlagsHas(t *testing.T) {
	f := TCPFlags{Flags: FlagSACKPerm | FlagBeLiberal, Mask: FlagSACKPerm | FlagBeLiberal}
	if !f.Has(FlagSACKPerm) || !f.Has(FlagBeLiberal) {
		t.Errorf("%+v should have SACK_PERM and BE_LIBERAL", f)
	}
	if f.Has(FlagWindowScale) {
		t.Errorf("%+v should not have WINDOW_SCALE", f)
	}

	// Bits outside the mask do not count.
	masked := TCPFlags{Flags: FlagCloseInit, Mask: 0}
	if masked.Has(FlagCloseInit) {
		t.Errorf("%+v: CLOSE_INIT is not covered by the mask", masked)
	}
}

func TestTCPAttrErrorContext(t *testing.T) {
	skipBigEndian(t)

	b := []byte{0x07, 0x00, 0x04, 0x00, 0x0a, 0x0a, 0x0a, 0x00}
	_, err := parseAttrs(b, parseTCPAttr)
	if !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidLength", err)
	}
	want := "invalid CTA_PROTOINFO_TCP_FLAGS_ORIGINAL value: want 2 bytes, got 3: invalid length"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestTCPStateString(t *testing.T) {
	if s := TCPStateEstablished.String(); s != "ESTABLISHED" {
		t.Errorf("TCPStateEstablished = %q", s)
	}
	if s := TCPState(42).String(); s != "TCPState(42)" {
		t.Errorf("TCPState(42) = %q", s)
	}
}
