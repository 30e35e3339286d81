package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/rogmatrix/internal/app"
	"github.com/coreman2200/rogmatrix/internal/config"
	"github.com/coreman2200/rogmatrix/internal/ws"
)

func main() {
	// ---- Flags (remain usable; config.yaml overrides where set) ----
	var (
		fps        = flag.Int("fps", 30, "effect ticks per second")
		brightness = flag.Float64("brightness", 1, "AniMe brightness 0..1")
		animeDrv   = flag.String("anime-driver", "usb", "AniMe transport: usb | hidraw | hid | sim")
		auraDrv    = flag.String("aura-driver", "hidraw", "Aura transport: hidraw | hid | usb | sim")
		board      = flag.String("board", "", "board name override (default: DMI board_name)")
		layouts    = flag.String("layouts", "", "directory of keyboard layout YAML files")
		addr       = flag.String("addr", ":8080", "HTTP listen address")
		configPath = flag.String("config", "rogled.yaml", "path to the config file")
		simOnly    = flag.Bool("sim-only", false, "force simulation (no hardware output)")
		debug      = flag.Bool("debug", false, "debug logging")
	)
	flag.Parse()

	// ---- Logging ----
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// ---- Config: file values win over flags ----
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("config load failed; proceeding with flags")
		cfg = config.Default()
		cfg.FPS = *fps
		cfg.Anime.Brightness = *brightness
		cfg.Anime.Driver = *animeDrv
		cfg.Aura.Driver = *auraDrv
		cfg.Addr = *addr
	}
	cfg.Board = firstNonEmpty(cfg.Board, *board)
	cfg.LayoutsDir = firstNonEmpty(cfg.LayoutsDir, *layouts)
	cfg.Addr = firstNonEmpty(cfg.Addr, *addr)
	if cfg.FPS <= 0 {
		cfg.FPS = *fps
	}
	if *simOnly {
		cfg.Anime.Driver = "sim"
		cfg.Aura.Driver = "sim"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core, err := app.InitCore(ctx, cfg, cfg.Board)
	if err != nil {
		log.Fatal().Err(err).Msg("init failed")
	}
	cond := app.NewConductor(core, cfg)
	if err := cond.Start(ctx); err != nil {
		log.Error().Err(err).Msg("startup actions")
	}

	state := ws.NewState(ctx, core, cond, cfg)
	state.ConfigPath = *configPath

	// ---- HTTP routes ----
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", state.HandleFramesWS)
	mux.HandleFunc("/diag", state.HandleDiagWS)
	mux.HandleFunc("/control", state.HandleControlWS)
	mux.HandleFunc("/health", state.HandleHealth)
	mux.HandleFunc("/preview.png", state.HandlePreviewPNG)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      withCORS(mux),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("board", core.Board).
			Str("anime", core.AnimeDriver).Str("aura", core.AuraDriver).
			Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server crashed")
		}
	}()

	// ---- Graceful shutdown ----
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	s := <-ch
	log.Info().Str("signal", s.String()).Msg("shutting down")

	_ = srv.Close()
	cond.Stop()
	cancel()
	if err := core.Close(); err != nil {
		log.Warn().Err(err).Msg("closing devices")
	}
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
