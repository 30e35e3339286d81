package aura

import "github.com/coreman2200/rogmatrix/internal/keyboard"

const (
	PacketLen     = 64
	perKeyPackets = 11
)

// Packets is a set of custom-colour reports: one for zoned keyboards, eleven
// for per-key ones.
type Packets struct {
	pkts  [][PacketLen]byte
	zoned bool
}

// NewPerKeyPackets returns the eleven key-group reports with headers set.
func NewPerKeyPackets() *Packets {
	p := &Packets{pkts: make([][PacketLen]byte, perKeyPackets)}
	for i := range p.pkts {
		row := &p.pkts[i]
		row[0], row[1], row[2] = 0x5d, 0xbc, 0x00
		row[3], row[4], row[5] = 0x01, 0x01, 0x01
		row[6] = byte(i) << 4
		if i == perKeyPackets-1 {
			row[7] = 0x08
		} else {
			row[7] = 0x10
		}
	}
	return p
}

// NewZonedPackets returns the single report used by four-zone and
// single-zone keyboards.
func NewZonedPackets(multizone bool) *Packets {
	p := &Packets{pkts: make([][PacketLen]byte, 1), zoned: true}
	row := &p.pkts[0]
	row[0], row[1], row[2], row[3] = 0x5d, 0xbc, 0x01, 0x01
	if multizone {
		row[4] = 0x04
	}
	return p
}

// CustomInit is written once before the first custom-colour report.
func CustomInit() [PacketLen]byte {
	var b [PacketLen]byte
	b[0], b[1] = 0x5d, 0xbc
	return b
}

func (p *Packets) Zoned() bool { return p.zoned }

// Set writes c at the LED's offset. It reports false, leaving the packets
// untouched, when the LED has no slot in this packet set.
func (p *Packets) Set(code keyboard.LedCode, c Colour) bool {
	row, col, ok := p.offset(code)
	if !ok {
		return false
	}
	p.pkts[row][col] = c.R
	p.pkts[row][col+1] = c.G
	p.pkts[row][col+2] = c.B
	return true
}

// Get reads back the colour stored for code.
func (p *Packets) Get(code keyboard.LedCode) (Colour, bool) {
	row, col, ok := p.offset(code)
	if !ok {
		return Colour{}, false
	}
	b := p.pkts[row]
	return Colour{b[col], b[col+1], b[col+2]}, true
}

// Bytes returns the reports in write order.
func (p *Packets) Bytes() [][]byte {
	out := make([][]byte, len(p.pkts))
	for i := range p.pkts {
		b := p.pkts[i]
		out[i] = b[:]
	}
	return out
}

type slot struct{ row, col int }

var zonedSlots = map[keyboard.LedCode]int{
	keyboard.SingleZone:          9,
	keyboard.ZonedKbLeft:         9,
	keyboard.ZonedKbLeftMid:      12,
	keyboard.ZonedKbRightMid:     15,
	keyboard.ZonedKbRight:        18,
	keyboard.LightbarRight:       27,
	keyboard.LightbarRightCorner: 30,
	keyboard.LightbarRightBottom: 33,
	keyboard.LightbarLeftBottom:  36,
	keyboard.LightbarLeftCorner:  39,
	keyboard.LightbarLeft:        42,
}

func (p *Packets) offset(code keyboard.LedCode) (row, col int, ok bool) {
	if p.zoned {
		// only zone codes have a slot, so per-key codes cannot bleed into a zone
		col, ok = zonedSlots[code]
		return 0, col, ok
	}
	s, ok := perKeySlots[code]
	if !ok || s.row >= len(p.pkts) {
		return 0, 0, false
	}
	return s.row, s.col, true
}

// perKeySlots is the report row and first colour byte of each key. The lid
// and per-key lightbar slots live in a twelfth report that this packet set
// does not carry, so they resolve to no slot.
var perKeySlots = map[keyboard.LedCode]slot{
	keyboard.VolDown: {0, 15}, keyboard.VolUp: {0, 18}, keyboard.MicMute: {0, 21}, keyboard.RogApp: {0, 24},
	keyboard.SingleZone: {0, 9}, keyboard.ZonedKbLeft: {0, 9}, keyboard.ZonedKbLeftMid: {0, 12},
	keyboard.ZonedKbRightMid: {0, 15}, keyboard.ZonedKbRight: {0, 18},

	keyboard.Esc: {1, 24}, keyboard.F1: {1, 30}, keyboard.F2: {1, 33}, keyboard.F3: {1, 36},
	keyboard.F4: {1, 39}, keyboard.F5: {1, 45}, keyboard.F6: {1, 48}, keyboard.F7: {1, 51},
	keyboard.F8: {1, 54},

	keyboard.F9: {2, 12}, keyboard.F10: {2, 15}, keyboard.F11: {2, 18}, keyboard.F12: {2, 21},
	keyboard.Del: {2, 24}, keyboard.Tilde: {2, 39}, keyboard.N1: {2, 42}, keyboard.N2: {2, 45},
	keyboard.N3: {2, 48}, keyboard.N4: {2, 51}, keyboard.N5: {2, 54},

	keyboard.N6: {3, 9}, keyboard.N7: {3, 12}, keyboard.N8: {3, 15}, keyboard.N9: {3, 18},
	keyboard.N0: {3, 21}, keyboard.Hyphen: {3, 24}, keyboard.Equals: {3, 27},
	keyboard.Bksp3_1: {3, 30}, keyboard.Bksp3_2: {3, 33}, keyboard.Bksp3_3: {3, 36},
	keyboard.Home: {3, 39}, keyboard.Tab: {3, 54},

	keyboard.Q: {4, 9}, keyboard.W: {4, 12}, keyboard.E: {4, 15}, keyboard.R: {4, 18},
	keyboard.T: {4, 21}, keyboard.Y: {4, 24}, keyboard.U: {4, 27}, keyboard.I: {4, 30},
	keyboard.O: {4, 33}, keyboard.P: {4, 36}, keyboard.LBracket: {4, 39}, keyboard.RBracket: {4, 42},
	keyboard.BackSl: {4, 45}, keyboard.PgUp: {4, 54},

	keyboard.Caps: {5, 21}, keyboard.A: {5, 24}, keyboard.S: {5, 27}, keyboard.D: {5, 30},
	keyboard.F: {5, 33}, keyboard.G: {5, 36}, keyboard.H: {5, 39}, keyboard.J: {5, 42},
	keyboard.K: {5, 45}, keyboard.L: {5, 48}, keyboard.Semi: {5, 51}, keyboard.Quote: {5, 54},

	keyboard.Return: {6, 9}, keyboard.Return31: {6, 12}, keyboard.Return32: {6, 15},
	keyboard.Return33: {6, 18}, keyboard.PgDn: {6, 21}, keyboard.LShift: {6, 36},
	keyboard.LShift31: {6, 36}, keyboard.LShift32: {6, 36}, keyboard.LShift33: {6, 36},
	keyboard.Z: {6, 42}, keyboard.X: {6, 45}, keyboard.C: {6, 48}, keyboard.V: {6, 51},
	keyboard.B: {6, 54},

	keyboard.N: {7, 9}, keyboard.M: {7, 12}, keyboard.Comma: {7, 15}, keyboard.Period: {7, 18},
	keyboard.FwdSl: {7, 21}, keyboard.RShift: {7, 24}, keyboard.RShift31: {7, 27},
	keyboard.RShift32: {7, 30}, keyboard.RShift33: {7, 33}, keyboard.End: {7, 36},
	keyboard.LCtrl: {7, 51}, keyboard.LFn: {7, 54},

	keyboard.Meta: {8, 9}, keyboard.LAlt: {8, 12}, keyboard.Space5_1: {8, 15},
	keyboard.Space5_2: {8, 18}, keyboard.Space5_3: {8, 21}, keyboard.Space5_4: {8, 24},
	keyboard.Space5_5: {8, 27}, keyboard.RAlt: {8, 30}, keyboard.PrtSc: {8, 33},
	keyboard.RCtrl: {8, 36}, keyboard.Up: {8, 42}, keyboard.RFn: {8, 51},

	keyboard.Left: {9, 54},
	keyboard.Down: {10, 9}, keyboard.Right: {10, 12},

	keyboard.LidLogo: {11, 9}, keyboard.LidLeft: {11, 36}, keyboard.LidRight: {11, 39},
	keyboard.LightbarRight: {11, 15}, keyboard.LightbarRightCorner: {11, 18},
	keyboard.LightbarRightBottom: {11, 21}, keyboard.LightbarLeftBottom: {11, 24},
	keyboard.LightbarLeftCorner: {11, 27}, keyboard.LightbarLeft: {11, 30},
}
