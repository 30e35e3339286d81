package sequence

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/raster"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// stillFrame is how long each repeat of a still lasts when it is played as
// a timed or faded animation.
const stillFrame = 33 * time.Millisecond

// Loader is the on-disk description of one action. Kind is "image", "gif"
// or "pause". Layout picks the address table: "grid" (default) for plain
// images, "diagonal" for vendor-style art drawn on the 74x36 diagonal.
type Loader struct {
	Kind        string        `yaml:"kind" json:"kind"`
	File        string        `yaml:"file,omitempty" json:"file,omitempty"`
	Layout      string        `yaml:"layout,omitempty" json:"layout,omitempty"`
	Scale       float64       `yaml:"scale,omitempty" json:"scale,omitempty"`
	ScaleY      float64       `yaml:"scale_y,omitempty" json:"scale_y,omitempty"`
	Angle       float64       `yaml:"angle,omitempty" json:"angle,omitempty"`
	Translation [2]float64    `yaml:"translation,omitempty,flow" json:"translation,omitempty"`
	Brightness  float64       `yaml:"brightness,omitempty" json:"brightness,omitempty"`
	Fineness    int           `yaml:"fineness,omitempty" json:"fineness,omitempty"`
	Physical    bool          `yaml:"physical,omitempty" json:"physical,omitempty"`
	Duration    time.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	Cycles      int           `yaml:"cycles,omitempty" json:"cycles,omitempty"`
	Fade        *Fade         `yaml:"fade,omitempty" json:"fade,omitempty"`
}

// Time derives the duration policy: fade, then cycles, then duration,
// otherwise forever.
func (l Loader) Time() AnimTime {
	switch {
	case l.Fade != nil:
		return WithFade(l.Fade.In, l.Fade.Show, l.Fade.Out)
	case l.Cycles > 0:
		return Count(l.Cycles)
	case l.Duration > 0:
		return For(l.Duration)
	}
	return Forever()
}

// Transform builds the raster transform; unset scale and brightness mean 1.
func (l Loader) Transform() raster.Transform {
	t := raster.Identity()
	if l.Scale != 0 {
		t.ScaleX, t.ScaleY = l.Scale, l.Scale
	}
	if l.ScaleY != 0 {
		t.ScaleY = l.ScaleY
	}
	if l.Brightness != 0 {
		t.Brightness = l.Brightness
	}
	t.Angle = l.Angle
	t.TX, t.TY = l.Translation[0], l.Translation[1]
	t.Fineness = l.Fineness
	t.Physical = l.Physical
	return t
}

// Action decodes the file the loader points at.
func (l Loader) Action(at layout.AnimeType) (Action, error) {
	kind := strings.ToLower(l.Kind)
	if kind == "pause" {
		if l.Duration <= 0 {
			return nil, fmt.Errorf("sequence: pause needs a duration: %w", rogerr.ErrInvalidParameter)
		}
		return Pause{D: l.Duration}, nil
	}

	addr, err := layout.ForType(at, layout.Scheme(strings.ToLower(l.Layout)))
	if err != nil {
		return nil, err
	}
	if l.Physical && addr == (layout.Grid{}) {
		addr = layout.Physical{}
	}
	tr := l.Transform()

	switch kind {
	case "gif":
		frames, err := raster.LoadGIF(l.File, tr, addr)
		if err != nil {
			return nil, fmt.Errorf("sequence: %s: %w", l.File, err)
		}
		return Animation{Frames: frames, Time: l.Time()}, nil
	case "image":
		img, err := raster.Load(l.File)
		if err != nil {
			return nil, fmt.Errorf("sequence: %s: %w", l.File, err)
		}
		buf, err := raster.Render(img, tr, addr)
		if err != nil {
			return nil, err
		}
		t := l.Time()
		if t.Kind == Infinite {
			return Image{Buffer: buf}, nil
		}
		return Animation{Frames: []raster.Frame{{Buffer: buf, Delay: stillFrame}}, Time: t}, nil
	}
	return nil, fmt.Errorf("sequence: action kind %q: %w", l.Kind, rogerr.ErrInvalidParameter)
}

// Build decodes every loader into a new Sequence.
func Build(at layout.AnimeType, loaders []Loader) (*Sequence, error) {
	s := New()
	for i, l := range loaders {
		a, err := l.Action(at)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		s.Push(a)
	}
	return s, nil
}

// LoadFile reads a YAML list of loaders.
func LoadFile(path string) ([]Loader, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	var ls []Loader
	if err := yaml.Unmarshal(b, &ls); err != nil {
		return nil, fmt.Errorf("sequence: %s: %v: %w", path, err, rogerr.ErrDecode)
	}
	return ls, nil
}
