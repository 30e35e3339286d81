package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/rogmatrix/internal/ctrl"
	"github.com/coreman2200/rogmatrix/internal/keyboard"
	"github.com/coreman2200/rogmatrix/internal/led"
	"github.com/coreman2200/rogmatrix/internal/render"
)

// aurasim runs an effect list against a simulated keyboard and prints the
// colours of every configured LED per tick.
func main() {
	var (
		effectsPath string
		zoned       bool
		fps         int
		dur         time.Duration
	)
	flag.StringVar(&effectsPath, "effects", "", "YAML list of effects")
	flag.BoolVar(&zoned, "zoned", false, "write the zoned report instead of per-key")
	flag.IntVar(&fps, "fps", 10, "ticks per second")
	flag.DurationVar(&dur, "for", 3*time.Second, "how long to run")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfgs := []render.EffectConfig{
		{Kind: "breathe", Led: string(keyboard.ZonedKbLeft), Colour1: "red", Colour2: "blue", Speed: "high"},
		{Kind: "flicker", Led: string(keyboard.ZonedKbRight), Colour1: "orange", MaxPct: 100, MinPct: 30},
	}
	if effectsPath != "" {
		b, err := os.ReadFile(effectsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("read effects")
		}
		cfgs = nil
		if err := yaml.Unmarshal(b, &cfgs); err != nil {
			log.Fatal().Err(err).Msg("parse effects")
		}
	} else {
		zoned = true
	}

	set, err := render.DefaultRegistry().Build(zoned, cfgs)
	if err != nil {
		log.Fatal().Err(err).Msg("build effects")
	}
	l := keyboard.Fallback()
	eng := render.NewEngine(&l, set)

	sim := led.NewSim()
	a, err := ctrl.NewAura(ctrl.NewCoordinator(sim), eng)
	if err != nil {
		log.Fatal().Err(err).Msg("aura init")
	}

	leds := make([]keyboard.LedCode, len(cfgs))
	for i, c := range cfgs {
		leds[i] = keyboard.LedCode(c.Led)
	}
	tick := 0
	a.Observe(func([][]byte) {
		tick++
		p := set.Packets()
		var sb strings.Builder
		for _, code := range leds {
			c, _ := p.Get(code)
			fmt.Fprintf(&sb, " %s=%s", code, c)
		}
		fmt.Printf("[tick %04d]%s\n", tick, sb.String())
	})

	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()
	if err := <-a.Run(ctx, fps); err != nil {
		log.Fatal().Err(err).Msg("run")
	}
	fmt.Printf("done: %d ticks, %d packets\n", a.Ticks(), sim.Written())
}
