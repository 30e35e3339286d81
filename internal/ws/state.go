// Package ws serves the preview, control and diagnostics websockets.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.uber.org/atomic"

	"github.com/coreman2200/rogmatrix/internal/anime"
	"github.com/coreman2200/rogmatrix/internal/app"
	"github.com/coreman2200/rogmatrix/internal/config"
	diag "github.com/coreman2200/rogmatrix/internal/diagnostics"
)

type State struct {
	mu   sync.RWMutex
	ctx  context.Context
	core *app.Core
	cond *app.Conductor
	cfg  *config.Config

	ConfigPath string

	frameID     atomic.Uint64
	startTime   time.Time
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool

	tests testTask
	// applyMu serialises control requests and config edits.
	applyMu sync.Mutex
}

// NewState hooks the controllers so every frame that reaches a device is
// broadcast to preview clients. ctx bounds everything started from
// control commands.
func NewState(ctx context.Context, core *app.Core, cond *app.Conductor, cfg *config.Config) *State {
	s := &State{
		ctx:         ctx,
		core:        core,
		cond:        cond,
		cfg:         cfg,
		startTime:   time.Now(),
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
	}
	if core.Anime != nil {
		core.Anime.Observe(func(buf anime.DataBuffer) { s.broadcastFrame("anime", buf[:]) })
	}
	if core.Aura != nil {
		core.Aura.Observe(func(pkts [][]byte) {
			var flat []byte
			for _, p := range pkts {
				flat = append(flat, p...)
			}
			s.broadcastFrame("aura", flat)
		})
	}
	return s
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()
	s.sendTopology(conn)

	go s.drain(conn, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	go s.drain(conn, s.diagClients)
}

// drain reads until the peer goes away, then forgets it.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]bool) {
	defer func() {
		s.mu.Lock()
		delete(set, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"frame_id": s.frameID.Load(),
		"uptime_s": time.Since(s.startTime).Seconds(),
		"board":    s.core.Board,
		"skipped":  s.core.Skipped(),
		"anime":    s.core.Anime != nil && s.core.Anime.Running(),
		"aura":     s.core.Aura != nil && s.core.Aura.Running(),
	}
	if s.core.Anime != nil {
		resp["brightness"] = s.core.Anime.Brightness()
	}
	if s.core.Engine != nil {
		resp["render_ms"] = s.core.Engine.Last.RenderMS
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) topology() map[string]any {
	top := map[string]any{
		"board":        s.core.Board,
		"anime_type":   s.core.AnimeType.String(),
		"anime_driver": s.core.AnimeDriver,
		"aura_driver":  s.core.AuraDriver,
		"effects":      s.core.Registry.List(),
	}
	if s.core.Layout != nil {
		top["locale"] = s.core.Layout.Locale
		top["leds"] = s.core.Layout.Leds()
	}
	return top
}

func (s *State) sendTopology(conn *websocket.Conn) {
	b, _ := json.Marshal(s.topology())
	s.mu.Lock()
	defer s.mu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

type frame struct {
	T       int64  `json:"t"`
	FrameID uint64 `json:"frame_id"`
	Kind    string `json:"kind"`
	Data    []byte `json:"data"`
}

func (s *State) broadcastFrame(kind string, data []byte) {
	id := s.frameID.Inc()
	b, _ := json.Marshal(frame{T: time.Now().UnixNano(), FrameID: id, Kind: kind, Data: data})
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}
