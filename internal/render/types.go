package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coreman2200/rogmatrix/internal/aura"
	"github.com/coreman2200/rogmatrix/internal/effect"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// EffectConfig describes one effect as it appears in config files and
// control commands. Colours are hex strings or colour names.
type EffectConfig struct {
	Kind    string `yaml:"kind" json:"kind"`
	Led     string `yaml:"led" json:"led"`
	Colour1 string `yaml:"colour1" json:"colour1"`
	Colour2 string `yaml:"colour2,omitempty" json:"colour2,omitempty"`
	Speed   string `yaml:"speed,omitempty" json:"speed,omitempty"`
	MaxPct  uint8  `yaml:"max_pct,omitempty" json:"max_pct,omitempty"`
	MinPct  uint8  `yaml:"min_pct,omitempty" json:"min_pct,omitempty"`
}

// Params is an EffectConfig with its strings resolved.
type Params struct {
	Led              keyboard.LedCode
	Colour1, Colour2 aura.Colour
	Speed            aura.Speed
	MaxPct, MinPct   uint8
}

func (c EffectConfig) Params() (Params, error) {
	p := Params{Led: keyboard.LedCode(c.Led), Speed: aura.Med, MaxPct: c.MaxPct, MinPct: c.MinPct}
	if !p.Led.Valid() || p.Led.IsPlaceholder() {
		return p, fmt.Errorf("render: led %q: %w", c.Led, rogerr.ErrInvalidParameter)
	}
	var err error
	if p.Colour1, err = aura.ParseColour(c.Colour1); err != nil {
		return p, err
	}
	if c.Colour2 != "" {
		if p.Colour2, err = aura.ParseColour(c.Colour2); err != nil {
			return p, err
		}
	}
	if c.Speed != "" {
		if p.Speed, err = aura.ParseSpeed(c.Speed); err != nil {
			return p, err
		}
	}
	if p.MaxPct == 0 {
		p.MaxPct = 100
	}
	return p, nil
}

// Factory builds a fresh effect. Every call returns independent state.
type Factory func(p Params) effect.Effect

type Registry struct{ m map[string]Factory }

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

// DefaultRegistry knows the builtin software effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("static", func(p Params) effect.Effect { return effect.NewStatic(p.Led, p.Colour1) })
	r.Register("breathe", func(p Params) effect.Effect {
		return effect.NewBreathe(p.Led, p.Colour1, p.Colour2, p.Speed)
	})
	r.Register("flicker", func(p Params) effect.Effect {
		return effect.NewDoomFlicker(p.Led, p.Colour1, p.MaxPct, p.MinPct)
	})
	r.Register("flash", func(p Params) effect.Effect {
		return effect.NewDoomLightFlash(p.Led, p.Colour1, p.MaxPct, p.MinPct)
	})
	return r
}

func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		return
	}
	r.m[strings.ToLower(name)] = f
}

func (r *Registry) Get(name string) (Factory, bool) {
	f, ok := r.m[strings.ToLower(name)]
	return f, ok
}

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build turns configs into a Set. Nothing is returned if any entry is bad.
func (r *Registry) Build(zoned bool, cfgs []EffectConfig) (*effect.Set, error) {
	set := effect.NewSet(zoned)
	for i, c := range cfgs {
		f, ok := r.Get(c.Kind)
		if !ok {
			return nil, fmt.Errorf("render: effect %d: unknown kind %q: %w", i, c.Kind, rogerr.ErrInvalidParameter)
		}
		p, err := c.Params()
		if err != nil {
			return nil, fmt.Errorf("effect %d: %w", i, err)
		}
		set.Push(f(p))
	}
	return set, nil
}
