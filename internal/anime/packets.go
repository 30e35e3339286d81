package anime

import "github.com/coreman2200/rogmatrix/internal/layout"

// PacketLen is the size of every packet the AniMe device accepts.
const PacketLen = 640

const (
	devPage    = 0x5e
	blockStart = 7
	blockEnd   = blockStart + layout.PaneLen
)

// VID/PID of the AniMe Matrix USB interface.
const (
	VendorID  uint16 = 0x0b05
	ProductID uint16 = 0x193b
)

var prefixes = [2][blockStart]byte{
	{0x5e, 0xc0, 0x02, 0x01, 0x00, 0x73, 0x02},
	{0x5e, 0xc0, 0x02, 0x74, 0x02, 0x73, 0x02},
}

type Packet [PacketLen]byte

// Packets is one frame on the wire: pane 0 then pane 1.
type Packets [2]Packet

// Frame splits buf into its two data packets. Bytes past the pane are zero.
func Frame(buf DataBuffer) Packets {
	var p Packets
	for k := range p {
		copy(p[k][:blockStart], prefixes[k][:])
		copy(p[k][blockStart:blockEnd], buf.Pane(k))
	}
	return p
}

// Unframe reverses Frame. The prefixes are not checked.
func Unframe(p Packets) DataBuffer {
	var d DataBuffer
	for k := range p {
		copy(d.Pane(k), p[k][blockStart:blockEnd])
	}
	return d
}

// Slices is a convenience for writers that take [][]byte.
func (p *Packets) Slices() [][]byte {
	return [][]byte{p[0][:], p[1][:]}
}

func control(b ...byte) Packet {
	var p Packet
	p[0] = devPage
	copy(p[1:], b)
	return p
}

// InitPackets must be written once after power-on before any data.
func InitPackets() [2]Packet {
	var first Packet
	copy(first[:], append([]byte{devPage}, "ASUS TECH.INC."...))
	return [2]Packet{first, control(0xc2)}
}

// FlushPacket tells the panel to show the panes written so far.
func FlushPacket() Packet { return control(0xc0, 0x03) }

func OnOffPacket(on bool) Packet {
	if on {
		return control(0xc0, 0x04, 0x03)
	}
	return control(0xc0, 0x04, 0x00)
}

// BootPacket enables or disables the builtin boot animation. It only
// persists once ApplyPacket is written.
func BootPacket(on bool) Packet {
	if on {
		return control(0xc3, 0x01, 0x00)
	}
	return control(0xc3, 0x01, 0x80)
}

func ApplyPacket() Packet { return control(0xc4, 0x01, 0x80) }
