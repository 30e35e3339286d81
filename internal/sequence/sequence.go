// Package sequence holds ordered AniMe actions and plays them back.
package sequence

import (
	"time"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/raster"
)

// Action is one step of a Sequence: an Image, an Animation or a Pause.
type Action interface{ action() }

// Image shows one buffer until the next action replaces it.
type Image struct {
	Buffer anime.DataBuffer
}

// Animation is a decoded clip and the policy that says when to stop it.
type Animation struct {
	Frames []raster.Frame
	Time   AnimTime
}

// Pause waits with the display untouched.
type Pause struct {
	D time.Duration
}

func (Image) action()     {}
func (Animation) action() {}
func (Pause) action()     {}

// Sequence is an ordered action list. It is not safe for concurrent
// mutation; callers hand a finished Sequence to the player.
type Sequence struct {
	actions []Action
}

func New(actions ...Action) *Sequence {
	return &Sequence{actions: actions}
}

func (s *Sequence) Len() int { return len(s.actions) }

// Insert places a at i; i is clamped to [0, Len].
func (s *Sequence) Insert(i int, a Action) {
	if i < 0 {
		i = 0
	}
	if i > len(s.actions) {
		i = len(s.actions)
	}
	s.actions = append(s.actions, nil)
	copy(s.actions[i+1:], s.actions[i:])
	s.actions[i] = a
}

func (s *Sequence) Push(a Action) { s.actions = append(s.actions, a) }

// Remove deletes and returns the action at i, or reports false and leaves
// the list alone when i is out of range.
func (s *Sequence) Remove(i int) (Action, bool) {
	if i < 0 || i >= len(s.actions) {
		return nil, false
	}
	a := s.actions[i]
	s.actions = append(s.actions[:i], s.actions[i+1:]...)
	return a, true
}

// Iter returns a cursor at the first action.
func (s *Sequence) Iter() *Iterator { return &Iterator{s: s} }

// Iterator walks a Sequence cyclically without consuming it.
type Iterator struct {
	s    *Sequence
	next int
}

// Next returns the next action. After the last action it reports false
// once and then starts again from the first.
func (it *Iterator) Next() (Action, bool) {
	if it.next >= len(it.s.actions) {
		it.next = 0
		return nil, false
	}
	a := it.s.actions[it.next]
	it.next++
	return a, true
}
