package sequence

import "time"

// Keyframe is a value at offset T with the easing used for the segment
// that starts here.
type Keyframe struct {
	T    time.Duration `yaml:"t"`
	V    float64       `yaml:"v"`
	Ease string        `yaml:"ease,omitempty"` // "linear","smooth","cubic"
}

// Envelope is a list of keyframes sorted by T; Eval interpolates between them.
type Envelope struct {
	Keys []Keyframe `yaml:"keys"`
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// 6x^5 - 15x^4 + 10x^3
func smootherstep(x float64) float64 {
	return x * x * x * (x*(x*6-15) + 10)
}

func easeApply(kind string, x float64) float64 {
	switch kind {
	case "smooth":
		return x * x * (3 - 2*x)
	case "cubic":
		return smootherstep(x)
	}
	return x
}

// Eval returns the value at t. An empty envelope is 0; values hold flat
// before the first and after the last key.
func (e Envelope) Eval(t time.Duration) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if t <= e.Keys[0].T {
		return e.Keys[0].V
	}
	if t >= e.Keys[n-1].T {
		return e.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a, b := e.Keys[i], e.Keys[i+1]
		if t < a.T || t > b.T {
			continue
		}
		den := b.T - a.T
		if den <= 0 {
			return b.V
		}
		u := clamp01(float64(t-a.T) / float64(den))
		return a.V + (b.V-a.V)*easeApply(a.Ease, u)
	}
	return e.Keys[n-1].V
}

// fadeEnvelope ramps 0→1 over in, holds, then 1→0 over the last out of run.
func fadeEnvelope(in, out, run time.Duration, ease string) Envelope {
	return Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: ease},
		{T: in, V: 1},
		{T: run - out, V: 1, Ease: ease},
		{T: run, V: 0},
	}}
}
