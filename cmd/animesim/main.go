package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/layout"
	"github.com/coreman2200/rogmatrix/internal/sequence"
	"github.com/coreman2200/rogmatrix/internal/ws"
)

// animesim plays an action list offline and prints a summary per frame.
func main() {
	var (
		actionsPath string
		inline      string
		board       string
		once        bool
		pngOut      string
		limit       time.Duration
	)
	flag.StringVar(&actionsPath, "actions", "", "YAML action list")
	flag.StringVar(&inline, "play", "", `single action, e.g. "gif clip.gif cycles=2" or "pause 1s"`)
	flag.StringVar(&board, "board", "GA401", "board name used to pick the panel")
	flag.BoolVar(&once, "once", true, "stop after one pass")
	flag.StringVar(&pngOut, "png", "", "write the last frame to this PNG")
	flag.DurationVar(&limit, "limit", 30*time.Second, "stop after this long")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	var loaders []sequence.Loader
	switch {
	case actionsPath != "":
		ls, err := sequence.LoadFile(actionsPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load actions")
		}
		loaders = ls
	case inline != "":
		l, err := parseInline(inline)
		if err != nil {
			log.Fatal().Err(err).Msg("parse -play")
		}
		loaders = []sequence.Loader{l}
	default:
		log.Fatal().Msg("provide -actions or -play")
	}

	at := layout.AnimeTypeFromBoard(board)
	seq, err := sequence.Build(at, loaders)
	if err != nil {
		log.Fatal().Err(err).Msg("build sequence")
	}

	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var (
		count int
		last  anime.DataBuffer
	)
	start := time.Now()
	err = sequence.Run(ctx, seq, once, func(buf anime.DataBuffer) bool {
		count++
		last = buf
		var sum, lit int
		for _, v := range buf {
			sum += int(v)
			if v > 0 {
				lit++
			}
		}
		fmt.Printf("[frame %04d] t=%6.3fs lit=%4d avg=%6.2f\n",
			count, time.Since(start).Seconds(), lit, float64(sum)/float64(len(buf)))
		return false
	})
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("playback")
	}
	fmt.Printf("done: %d frames in %v\n", count, time.Since(start).Round(time.Millisecond))

	if pngOut != "" {
		addr, err := layout.ForType(at, layout.SchemeGrid)
		if err != nil {
			log.Fatal().Err(err).Msg("preview layout")
		}
		f, err := os.Create(pngOut)
		if err != nil {
			log.Fatal().Err(err).Msg("create png")
		}
		defer f.Close()
		if err := png.Encode(f, ws.Preview(last, addr, 12)); err != nil {
			log.Fatal().Err(err).Msg("encode png")
		}
	}
}

// parseInline reads "<kind> [file|duration] [key=value...]".
func parseInline(s string) (sequence.Loader, error) {
	args, err := shlex.Split(s)
	if err != nil || len(args) < 2 {
		return sequence.Loader{}, fmt.Errorf("want <kind> <file|duration> [key=value...], got %q", s)
	}
	l := sequence.Loader{Kind: args[0]}
	if args[0] == "pause" {
		d, err := time.ParseDuration(args[1])
		if err != nil {
			return l, err
		}
		l.Duration = d
	} else {
		l.File = args[1]
	}
	for _, kv := range args[2:] {
		var err error
		switch {
		case scan(kv, "cycles=%d", &l.Cycles, &err):
		case scan(kv, "scale=%g", &l.Scale, &err):
		case scan(kv, "angle=%g", &l.Angle, &err):
		case scan(kv, "brightness=%g", &l.Brightness, &err):
		case scan(kv, "fineness=%d", &l.Fineness, &err):
		case scan(kv, "layout=%s", &l.Layout, &err):
		default:
			var d string
			if scan(kv, "duration=%s", &d, &err) {
				l.Duration, err = time.ParseDuration(d)
			} else {
				return l, fmt.Errorf("unknown option %q", kv)
			}
		}
		if err != nil {
			return l, fmt.Errorf("%s: %w", kv, err)
		}
	}
	return l, nil
}

func scan(kv, format string, dst any, errp *error) bool {
	n, err := fmt.Sscanf(kv, format, dst)
	if n == 1 {
		*errp = err
		return true
	}
	return false
}
