package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/gorilla/websocket"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/rogmatrix/internal/app"
	"github.com/coreman2200/rogmatrix/internal/config"
	"github.com/coreman2200/rogmatrix/internal/ctrl"
	diag "github.com/coreman2200/rogmatrix/internal/diagnostics"
	"github.com/coreman2200/rogmatrix/internal/render"
	"github.com/coreman2200/rogmatrix/internal/rogerr"
	"github.com/coreman2200/rogmatrix/internal/sequence"
	"github.com/coreman2200/rogmatrix/internal/tests"
)

type AnimeControl struct {
	Brightness *float64          `json:"brightness,omitempty"`
	On         *bool             `json:"on,omitempty"`
	Boot       *bool             `json:"boot,omitempty"`
	Play       []sequence.Loader `json:"play,omitempty"`
	Event      string            `json:"event,omitempty"`
	Once       bool              `json:"once,omitempty"`
	Stop       bool              `json:"stop,omitempty"`
}

type AuraControl struct {
	Mode       *config.Mode          `json:"mode,omitempty"`
	Brightness *uint8                `json:"brightness,omitempty"`
	Effects    []render.EffectConfig `json:"effects,omitempty"`
	Zoned      bool                  `json:"zoned,omitempty"`
	Stop       bool                  `json:"stop,omitempty"`
}

// ControlMsg is one control request. Text commands parse into the same
// shape as JSON ones.
type ControlMsg struct {
	Anime   *AnimeControl `json:"anime,omitempty"`
	Aura    *AuraControl  `json:"aura,omitempty"`
	RunTest string        `json:"runTest,omitempty"`
}

func bad(format string, a ...any) error {
	return fmt.Errorf("ws: "+format+": %w", append(a, rogerr.ErrInvalidParameter)...)
}

func onOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	}
	return false, bad("want on or off, got %q", s)
}

// kindFor guesses a loader kind from a file extension.
func kindFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return "gif"
	}
	return "image"
}

// ParseCommand reads a shell-style text command:
//
//	anime brightness 0.5
//	anime on|off
//	anime boot on|off
//	anime show <file> [once]
//	anime play <actions.yaml> [once]
//	anime event boot|wake|shutdown|system
//	anime stop
//	aura mode <mode> [colour1=.. colour2=.. speed=.. direction=.. zone=..]
//	aura brightness 0..3
//	aura effects <effects.yaml> [zoned]
//	aura stop
//	test <pattern>
func ParseCommand(line string) (ControlMsg, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return ControlMsg{}, bad("%v", err)
	}
	if len(args) < 2 {
		return ControlMsg{}, bad("command %q too short", line)
	}
	rest := args[2:]
	arg := func(i int) string {
		if i < len(rest) {
			return rest[i]
		}
		return ""
	}
	once := func(i int) bool { return strings.EqualFold(arg(i), "once") }

	switch strings.ToLower(args[0]) {
	case "test":
		return ControlMsg{RunTest: args[1]}, nil

	case "anime":
		a := &AnimeControl{}
		switch strings.ToLower(args[1]) {
		case "brightness":
			f, err := strconv.ParseFloat(arg(0), 64)
			if err != nil {
				return ControlMsg{}, bad("brightness %q", arg(0))
			}
			a.Brightness = &f
		case "on", "off":
			on := strings.EqualFold(args[1], "on")
			a.On = &on
		case "boot":
			on, err := onOff(arg(0))
			if err != nil {
				return ControlMsg{}, err
			}
			a.Boot = &on
		case "show":
			if arg(0) == "" {
				return ControlMsg{}, bad("show needs a file")
			}
			a.Play = []sequence.Loader{{Kind: kindFor(arg(0)), File: arg(0)}}
			a.Once = once(1)
		case "play":
			ls, err := sequence.LoadFile(arg(0))
			if err != nil {
				return ControlMsg{}, err
			}
			a.Play = ls
			a.Once = once(1)
		case "event":
			a.Event = strings.ToLower(arg(0))
		case "stop":
			a.Stop = true
		default:
			return ControlMsg{}, bad("anime command %q", args[1])
		}
		return ControlMsg{Anime: a}, nil

	case "aura":
		a := &AuraControl{}
		switch strings.ToLower(args[1]) {
		case "mode":
			m := &config.Mode{Mode: arg(0)}
			for _, kv := range rest[min(1, len(rest)):] {
				k, v, ok := strings.Cut(kv, "=")
				if !ok {
					return ControlMsg{}, bad("mode option %q is not key=value", kv)
				}
				switch strings.ToLower(k) {
				case "colour1", "color1":
					m.Colour1 = v
				case "colour2", "color2":
					m.Colour2 = v
				case "speed":
					m.Speed = v
				case "direction":
					m.Direction = v
				case "zone":
					m.Zone = v
				default:
					return ControlMsg{}, bad("mode option %q", k)
				}
			}
			a.Mode = m
		case "brightness":
			n, err := strconv.ParseUint(arg(0), 10, 8)
			if err != nil {
				return ControlMsg{}, bad("brightness %q", arg(0))
			}
			l := uint8(n)
			a.Brightness = &l
		case "effects":
			b, err := os.ReadFile(arg(0))
			if err != nil {
				return ControlMsg{}, fmt.Errorf("ws: %w", err)
			}
			if err := yaml.Unmarshal(b, &a.Effects); err != nil {
				return ControlMsg{}, fmt.Errorf("ws: %s: %v: %w", arg(0), err, rogerr.ErrDecode)
			}
			a.Zoned = strings.EqualFold(arg(1), "zoned")
		case "stop":
			a.Stop = true
		default:
			return ControlMsg{}, bad("aura command %q", args[1])
		}
		return ControlMsg{Aura: a}, nil
	}
	return ControlMsg{}, bad("unknown target %q", args[0])
}

// DecodeControl accepts a JSON object or a text command.
func DecodeControl(data []byte) (ControlMsg, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var m ControlMsg
		if err := json.Unmarshal(data, &m); err != nil {
			return ControlMsg{}, fmt.Errorf("ws: %v: %w", err, rogerr.ErrDecode)
		}
		return m, nil
	}
	return ParseCommand(string(data))
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		reply := map[string]any{"ok": true}
		msg, err := DecodeControl(data)
		if err == nil {
			err = s.Apply(msg)
		}
		if err != nil {
			d := diag.FromError(err)
			s.pushDiag(d)
			reply = map[string]any{"ok": false, "error": d}
		}
		b, _ := json.Marshal(reply)
		_ = conn.WriteMessage(websocket.TextMessage, b)
	}
}

// Apply runs a control request. The first failing step aborts the rest.
func (s *State) Apply(msg ControlMsg) error {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()
	if msg.Anime != nil {
		if err := s.applyAnime(msg.Anime); err != nil {
			return err
		}
	}
	if msg.Aura != nil {
		if err := s.applyAura(msg.Aura); err != nil {
			return err
		}
	}
	if msg.RunTest != "" {
		if err := s.runTest(tests.Kind(msg.RunTest)); err != nil {
			return err
		}
	}
	s.saveConfig()
	return nil
}

func (s *State) applyAnime(c *AnimeControl) error {
	a := s.core.Anime
	if a == nil {
		return fmt.Errorf("ws: no anime device: %w", rogerr.ErrDeviceNotFound)
	}
	if c.Brightness != nil {
		if err := a.SetBrightness(*c.Brightness); err != nil {
			return err
		}
		s.cfg.Anime.Brightness = *c.Brightness
	}
	if c.On != nil {
		if err := a.SetOn(*c.On); err != nil {
			return err
		}
		s.cfg.Anime.On = *c.On
	}
	if c.Boot != nil {
		if err := a.SetBoot(*c.Boot); err != nil {
			return err
		}
		s.cfg.Anime.Boot = *c.Boot
	}
	if c.Stop {
		s.tests.stop()
		a.Stop()
	}
	if len(c.Play) > 0 {
		seq, err := sequence.Build(s.core.AnimeType, c.Play)
		if err != nil {
			return err
		}
		s.tests.stop()
		s.watch(a.Run(s.ctx, seq, c.Once))
	}
	if c.Event != "" {
		switch ev := app.Event(c.Event); ev {
		case app.System, app.Boot, app.Wake, app.Shutdown:
			s.tests.stop()
			done, err := s.cond.Play(s.ctx, ev)
			if err != nil {
				return err
			}
			s.watch(done)
		default:
			return bad("event %q", c.Event)
		}
	}
	return nil
}

// watch reports a playback failure on the diagnostics socket.
func (s *State) watch(done <-chan error) {
	go func() {
		if err := <-done; err != nil && !errors.Is(err, ctrl.ErrReplaced) && s.ctx.Err() == nil {
			s.pushDiag(diag.FromError(err))
		}
	}()
}

func (s *State) applyAura(c *AuraControl) error {
	a := s.core.Aura
	if a == nil {
		return fmt.Errorf("ws: no aura device: %w", rogerr.ErrDeviceNotFound)
	}
	if c.Brightness != nil {
		if err := a.SetBrightness(*c.Brightness); err != nil {
			return err
		}
		s.cfg.Aura.Brightness = *c.Brightness
	}
	if c.Stop {
		a.Stop()
	}
	if c.Mode != nil {
		e, err := c.Mode.Effect()
		if err != nil {
			return err
		}
		a.Stop()
		s.core.Engine.SetEffects(nil)
		if err := a.WriteMode(e); err != nil {
			return err
		}
		s.cfg.Aura.Mode = *c.Mode
		s.cfg.Aura.Effects = nil
	}
	if len(c.Effects) > 0 {
		set, err := s.core.Registry.Build(c.Zoned, c.Effects)
		if err != nil {
			return err
		}
		s.core.Engine.SetEffects(set)
		if !a.Running() {
			a.Run(s.ctx, s.cfg.FPS)
		}
		s.cfg.Aura.Effects = c.Effects
		s.cfg.Aura.Zoned = c.Zoned
	}
	return nil
}

func (s *State) saveConfig() {
	if s.ConfigPath == "" {
		return
	}
	if err := config.Save(s.ConfigPath, s.cfg); err != nil {
		s.pushDiag(diag.FromError(err))
	}
}
