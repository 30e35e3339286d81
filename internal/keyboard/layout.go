// Package keyboard describes keyboard LED layouts and selects one for a board.
package keyboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coreman2200/rogmatrix/internal/rogerr"
)

// Row is one physical row of keys.
type Row struct {
	Height float64   `yaml:"height"`
	Row    []LedCode `yaml:"row"`
}

// Layout is an immutable key layout loaded from a layout file.
type Layout struct {
	Patterns []string `yaml:"matches"`
	Locale   string   `yaml:"locale"`
	Rows     []Row    `yaml:"rows"`
}

// Matches reports whether any configured pattern is a case-insensitive
// substring of board.
func (l *Layout) Matches(board string) bool {
	b := strings.ToUpper(board)
	for _, m := range l.Patterns {
		if m != "" && strings.Contains(b, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

// Leds lists the codes of the layout in row order, without placeholders.
func (l *Layout) Leds() []LedCode {
	var out []LedCode
	for _, r := range l.Rows {
		for _, c := range r.Row {
			if !c.IsPlaceholder() {
				out = append(out, c)
			}
		}
	}
	return out
}

// Select returns the first layout, in list order, that matches board. The
// list order is the priority; there is no best-match scoring.
func Select(board string, layouts []Layout) (*Layout, error) {
	for i := range layouts {
		if layouts[i].Matches(board) {
			return &layouts[i], nil
		}
	}
	return nil, fmt.Errorf("keyboard: board %q: %w", board, rogerr.ErrLayoutNotFound)
}

// Parse decodes one layout description.
func Parse(b []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return Layout{}, fmt.Errorf("keyboard: parse layout: %v: %w", err, rogerr.ErrDecode)
	}
	for _, r := range l.Rows {
		for _, c := range r.Row {
			if !c.Valid() {
				return Layout{}, fmt.Errorf("keyboard: unknown led code %q: %w", c, rogerr.ErrDecode)
			}
		}
	}
	return l, nil
}

func LoadFile(path string) (Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("keyboard: %w", err)
	}
	l, err := Parse(b)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// LoadDir loads every *.yaml layout in dir ordered by file name, which is
// the order Select walks.
func LoadDir(dir string) ([]Layout, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}
	sort.Strings(paths)
	out := make([]Layout, 0, len(paths))
	for _, p := range paths {
		l, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// Fallback is a four-zone layout with lightbar that callers may use when no
// configured layout matches.
func Fallback() Layout {
	return Layout{
		Locale: "US",
		Rows: []Row{
			{Height: 1, Row: []LedCode{ZonedKbLeft, ZonedKbLeftMid, ZonedKbRightMid, ZonedKbRight}},
			{Height: 0.3, Row: []LedCode{
				LightbarLeft, LightbarLeftCorner, LightbarLeftBottom,
				LightbarRightBottom, LightbarRightCorner, LightbarRight,
			}},
		},
	}
}
