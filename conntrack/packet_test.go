package conntrack

import (
	"net"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/pkg/errors"
)

func buildPacket(t *testing.T, first gopacket.LayerType, ls ...gopacket.SerializableLayer) gopacket.Packet {
	t.Helper()

	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, ls...); err != nil {
		t.Fatalf("serializing test packet: %v", err)
	}
	return gopacket.NewPacket(buf.Bytes(), first, gopacket.Default)
}

func TestTupleFromPacket(t *testing.T) {
	tests := []struct {
		name    string
		pkt     func(t *testing.T) gopacket.Packet
		want    TupleOrig
		wantErr bool
	}{
		{
			name: "ipv4-tcp",
			pkt: func(t *testing.T) gopacket.Packet {
				return buildPacket(t, layers.LayerTypeIPv4,
					&layers.IPv4{
						Version:  4,
						TTL:      64,
						Protocol: layers.IPProtocolTCP,
						SrcIP:    net.ParseIP("10.57.97.124"),
						DstIP:    net.ParseIP("148.113.20.105"),
					},
					&layers.TCP{SrcPort: 39600, DstPort: 443, SYN: true, Window: 64240},
				)
			},
			want: TupleOrig{
				IPTuple{
					SourceAddress(netip.MustParseAddr("10.57.97.124")),
					DestinationAddress(netip.MustParseAddr("148.113.20.105")),
				},
				ProtoTuple{Protocol(6), SourcePort(39600), DestinationPort(443)},
			},
		},
		{
			name: "ipv6-udp",
			pkt: func(t *testing.T) gopacket.Packet {
				return buildPacket(t, layers.LayerTypeIPv6,
					&layers.IPv6{
						Version:    6,
						HopLimit:   64,
						NextHeader: layers.IPProtocolUDP,
						SrcIP:      net.ParseIP("2001:db8::10"),
						DstIP:      net.ParseIP("2001:db8::53"),
					},
					&layers.UDP{SrcPort: 41000, DstPort: 53},
				)
			},
			want: TupleOrig{
				IPTuple{
					SourceAddress(netip.MustParseAddr("2001:db8::10")),
					DestinationAddress(netip.MustParseAddr("2001:db8::53")),
				},
				ProtoTuple{Protocol(17), SourcePort(41000), DestinationPort(53)},
			},
		},
		{
			name: "icmp-has-no-ports",
			pkt: func(t *testing.T) gopacket.Packet {
				return buildPacket(t, layers.LayerTypeIPv4,
					&layers.IPv4{
						Version:  4,
						TTL:      64,
						Protocol: layers.IPProtocolICMPv4,
						SrcIP:    net.ParseIP("192.168.1.2"),
						DstIP:    net.ParseIP("192.168.1.1"),
					},
					&layers.ICMPv4{TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0)},
				)
			},
			wantErr: true,
		},
		{
			name: "no-ip-layer",
			pkt: func(t *testing.T) gopacket.Packet {
				return gopacket.NewPacket([]byte{0x00, 0x01}, layers.LayerTypeEthernet, gopacket.Default)
			},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := TupleFromPacket(test.pkt(t))
			if test.wantErr {
				if !errors.Is(err, ErrUnsupportedPacket) {
					t.Errorf("err = %v, want ErrUnsupportedPacket", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.want, got, cmpOpts...); diff != "" {
				t.Errorf("unexpected tuple (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTupleFromPacketEncodesAsQuery(t *testing.T) {
	skipBigEndian(t)

	pkt := buildPacket(t, layers.LayerTypeIPv4,
		&layers.IPv4{
			Version:  4,
			TTL:      64,
			Protocol: layers.IPProtocolTCP,
			SrcIP:    net.ParseIP("10.57.97.124"),
			DstIP:    net.ParseIP("148.113.20.105"),
		},
		&layers.TCP{SrcPort: 39600, DstPort: 443, ACK: true},
	)
	tuple, err := TupleFromPacket(pkt)
	if err != nil {
		t.Fatal(err)
	}

	b := Marshal(Get{Attributes: []Attribute{tuple}})
	// The tuple is the first 0x34 bytes of the captured reply.
	if diff := cmp.Diff(capturedGetBody[:0x34], b); diff != "" {
		t.Errorf("unexpected encoding (-want +got):\n%s", diff)
	}
}
