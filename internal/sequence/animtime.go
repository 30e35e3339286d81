package sequence

import (
	"fmt"
	"time"
)

type TimeKind int

const (
	Infinite TimeKind = iota
	Cycles
	Time
	Faded
)

// Fade ramps brightness in, shows, then ramps out. A zero Show plays the
// clip once between the ramps.
type Fade struct {
	In   time.Duration `yaml:"in"`
	Show time.Duration `yaml:"show"`
	Out  time.Duration `yaml:"out"`
}

func (f Fade) total() time.Duration { return f.In + f.Out }

// AnimTime decides when an Animation stops. The zero value plays forever.
type AnimTime struct {
	Kind  TimeKind
	Count int
	D     time.Duration
	Fade  Fade
}

func Forever() AnimTime                  { return AnimTime{Kind: Infinite} }
func Count(n int) AnimTime               { return AnimTime{Kind: Cycles, Count: n} }
func For(d time.Duration) AnimTime       { return AnimTime{Kind: Time, D: d} }
func WithFade(in, show, out time.Duration) AnimTime {
	return AnimTime{Kind: Faded, Fade: Fade{In: in, Show: show, Out: out}}
}

func (t AnimTime) String() string {
	switch t.Kind {
	case Cycles:
		return fmt.Sprintf("cycles(%d)", t.Count)
	case Time:
		return "time(" + t.D.String() + ")"
	case Faded:
		return fmt.Sprintf("fade(%v,%v,%v)", t.Fade.In, t.Fade.Show, t.Fade.Out)
	}
	return "infinite"
}
