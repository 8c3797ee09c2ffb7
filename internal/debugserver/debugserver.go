// Package debugserver exposes a read-only websocket telemetry feed of
// the running machine's register and PPU-mode state, for external
// development tooling. It is never required for emulation correctness.
package debugserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmgcore/dmgemu/internal/emulator"
	"github.com/dmgcore/dmgemu/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Snapshot is the JSON payload pushed to every connected client.
type Snapshot struct {
	PC         uint16 `json:"pc"`
	SP         uint16 `json:"sp"`
	A          uint8  `json:"a"`
	F          uint8  `json:"f"`
	LY         uint8  `json:"ly"`
	Mode       uint8  `json:"mode"`
	FrameCount uint64 `json:"frameCount"`
}

// Server broadcasts Snapshot frames to any number of connected clients
// at a fixed tick rate.
type Server struct {
	gb *emulator.GameBoy

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// New returns a telemetry server for gb.
func New(gb *emulator.GameBoy) *Server {
	return &Server{gb: gb, clients: make(map[*websocket.Conn]chan []byte)}
}

// ListenAndServe upgrades every connection to addr and starts the
// broadcast loop; it blocks until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleWS)

	go s.broadcastLoop()

	logging.Log.Infof("debugserver: listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Log.Warnf("debugserver: upgrade failed: %v", err)
		return
	}

	send := make(chan []byte, 16)
	s.mu.Lock()
	s.clients[conn] = send
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	for msg := range send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		snap := Snapshot{
			PC:         s.gb.CPU.PC,
			SP:         s.gb.CPU.SP,
			A:          s.gb.CPU.A,
			F:          s.gb.CPU.F,
			LY:         s.gb.Bus.PPU.ReadLY(),
			Mode:       uint8(s.gb.Bus.PPU.Mode()),
			FrameCount: s.gb.FrameCount,
		}
		payload, err := json.Marshal(snap)
		if err != nil {
			continue
		}

		s.mu.Lock()
		for _, ch := range s.clients {
			select {
			case ch <- payload:
			default:
			}
		}
		s.mu.Unlock()
	}
}
