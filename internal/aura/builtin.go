package aura

import (
	"fmt"
	"strings"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// MessageLen is the length of every builtin mode and control message.
const MessageLen = 17

type Message [MessageLen]byte

// Keyboard USB product IDs (vendor 0x0b05) that speak this protocol.
var KeyboardProductIDs = []uint16{0x1866, 0x1869, 0x1854, 0x19b6}

const VendorID uint16 = 0x0b05

type Mode uint8

const (
	Static    Mode = 0
	Breathe   Mode = 1
	Strobe    Mode = 2
	Rainbow   Mode = 3
	Star      Mode = 4
	Rain      Mode = 5
	Highlight Mode = 6
	Laser     Mode = 7
	Ripple    Mode = 8
	Pulse     Mode = 10
	Comet     Mode = 11
	Flash     Mode = 12
)

var modeNames = map[Mode]string{
	Static: "Static", Breathe: "Breathe", Strobe: "Strobe", Rainbow: "Rainbow",
	Star: "Stars", Rain: "Rain", Highlight: "Highlight", Laser: "Laser",
	Ripple: "Ripple", Pulse: "Pulse", Comet: "Comet", Flash: "Flash",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, s) {
			return m, nil
		}
	}
	return Static, fmt.Errorf("aura: mode %q: %w", s, rogerr.ErrInvalidParameter)
}

// Speed is stored as its wire byte.
type Speed uint8

const (
	Low  Speed = 0xe1
	Med  Speed = 0xeb
	High Speed = 0xf5
)

// Level is 1, 2 or 3 for Low, Med and High.
func (s Speed) Level() uint8 {
	switch s {
	case Low:
		return 1
	case High:
		return 3
	}
	return 2
}

func ParseSpeed(s string) (Speed, error) {
	switch strings.ToLower(s) {
	case "low":
		return Low, nil
	case "med", "medium":
		return Med, nil
	case "high":
		return High, nil
	}
	return Med, fmt.Errorf("aura: speed %q: %w", s, rogerr.ErrInvalidParameter)
}

type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "right":
		return Right, nil
	case "left":
		return Left, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	}
	return Right, fmt.Errorf("aura: direction %q: %w", s, rogerr.ErrInvalidParameter)
}

// Zone selects which part of the keyboard a builtin mode applies to.
type Zone uint8

const (
	ZoneNone Zone = iota
	ZoneKey1
	ZoneKey2
	ZoneKey3
	ZoneKey4
	ZoneLogo
	ZoneBarLeft
	ZoneBarRight
)

func ParseZone(s string) (Zone, error) {
	switch strings.ToLower(s) {
	case "0", "none", "":
		return ZoneNone, nil
	case "1", "one":
		return ZoneKey1, nil
	case "2", "two":
		return ZoneKey2, nil
	case "3", "three":
		return ZoneKey3, nil
	case "4", "four":
		return ZoneKey4, nil
	case "5", "logo":
		return ZoneLogo, nil
	case "6", "lightbar-left":
		return ZoneBarLeft, nil
	case "7", "lightbar-right":
		return ZoneBarRight, nil
	}
	return ZoneNone, fmt.Errorf("aura: zone %q: %w", s, rogerr.ErrInvalidParameter)
}

// Effect is one builtin firmware mode with its parameters.
type Effect struct {
	Mode      Mode
	Zone      Zone
	Colour1   Colour
	Colour2   Colour
	Speed     Speed
	Direction Direction
}

func DefaultEffect(m Mode) Effect {
	return Effect{Mode: m, Colour1: DefaultColour, Speed: Med}
}

// Message encodes e as 5d b3 zone mode r g b speed dir 00 r2 g2 b2.
func (e Effect) Message() Message {
	var m Message
	m[0], m[1] = 0x5d, 0xb3
	m[2] = byte(e.Zone)
	m[3] = byte(e.Mode)
	m[4], m[5], m[6] = e.Colour1.R, e.Colour1.G, e.Colour1.B
	m[7] = byte(e.Speed)
	m[8] = byte(e.Direction)
	m[10], m[11], m[12] = e.Colour2.R, e.Colour2.G, e.Colour2.B
	return m
}

// Parameters reports which Effect fields a mode honours.
type Parameters struct {
	Zone, Colour1, Colour2, Speed, Direction bool
}

func AllowedParameters(m Mode) Parameters {
	switch m {
	case Breathe:
		return Parameters{true, true, true, true, false}
	case Strobe, Rain:
		return Parameters{true, false, false, true, false}
	case Rainbow:
		return Parameters{true, false, false, true, true}
	case Star:
		return Parameters{true, true, true, true, true}
	case Laser, Ripple:
		return Parameters{true, true, false, true, false}
	}
	// Static, Highlight, Pulse, Comet, Flash
	return Parameters{true, true, false, false, false}
}

func message(b ...byte) Message {
	var m Message
	copy(m[:], b)
	return m
}

var (
	// LEDSet and LEDApply follow every builtin mode write.
	LEDSet   = message(0x5d, 0xb5)
	LEDApply = message(0x5d, 0xb4)
)

// BrightnessMessage sets the keyboard backlight level, 0 (off) to 3.
func BrightnessMessage(level uint8) Message {
	if level > 3 {
		level = 3
	}
	return message(0x5a, 0xba, 0xc5, 0xc4, level)
}

// InitMessages wake the keyboard controller after boot.
func InitMessages() [][]byte {
	return [][]byte{
		{0x5d, 0xb9},
		[]byte("]ASUS Tech.Inc."),
		{0x5d, 0x05, 0x20, 0x31, 0x00, 0x08},
	}
}

// PowerMessage carries the four power-state bitfield bytes.
func PowerMessage(states [4]byte) Message {
	return message(0x5d, 0xbd, 0x01, states[0], states[1], states[2], states[3])
}
