package effect

import (
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
)

// Set is an ordered list of effects written together as one packet set.
// Later effects win when two target the same LED.
type Set struct {
	effects []Effect
	zoned   bool
}

func NewSet(zoned bool, effects ...Effect) *Set {
	return &Set{effects: effects, zoned: zoned}
}

func (s *Set) Zoned() bool { return s.zoned }
func (s *Set) Len() int    { return len(s.effects) }

func (s *Set) Push(e Effect) { s.effects = append(s.effects, e) }

// Insert places e at i, clamped to the list bounds.
func (s *Set) Insert(i int, e Effect) {
	if i < 0 {
		i = 0
	}
	if i > len(s.effects) {
		i = len(s.effects)
	}
	s.effects = append(s.effects, nil)
	copy(s.effects[i+1:], s.effects[i:])
	s.effects[i] = e
}

// Remove reports false if i is out of range.
func (s *Set) Remove(i int) (Effect, bool) {
	if i < 0 || i >= len(s.effects) {
		return nil, false
	}
	e := s.effects[i]
	s.effects = append(s.effects[:i], s.effects[i+1:]...)
	return e, true
}

func (s *Set) Advance(l *keyboard.Layout) {
	for _, e := range s.effects {
		e.Advance(l)
	}
}

// Packets renders the current colours into fresh reports.
func (s *Set) Packets() *aura.Packets {
	var p *aura.Packets
	if s.zoned {
		p = aura.NewZonedPackets(true)
	} else {
		p = aura.NewPerKeyPackets()
	}
	for _, e := range s.effects {
		if !p.Set(e.Target(), e.Colour()) {
			log.Trace().Str("led", string(e.Target())).Bool("zoned", s.zoned).Msg("led has no slot")
		}
	}
	return p
}
