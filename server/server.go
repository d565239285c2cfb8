// Package server is the browser shell around the engine: a chi router for
// pointer input and settings, plus a websocket hub for status pushes. It is a
// single human against the in-process computer; there is no network
// multiplayer.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Laserlicht/toweroops/engine"
	"github.com/Laserlicht/toweroops/game"
	"github.com/Laserlicht/toweroops/storage"
)

type Server struct {
	engine *engine.Engine
	store  *storage.Store
	hub    *Hub
}

func New(eng *engine.Engine, store *storage.Store, hub *Hub) *Server {
	return &Server{engine: eng, store: store, hub: hub}
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/new", s.handleNewGame)
	r.Post("/api/move", s.handleMove)
	r.Get("/api/legal", s.handleLegal)
	r.Post("/api/tip", s.handleTip)
	r.Post("/api/surrender", s.handleSurrender)
	r.Get("/api/settings", s.handleGetSettings)
	r.Put("/api/settings", s.handlePutSettings)
	r.Get("/api/stats", s.handleStats)
	r.Delete("/api/stats", s.handleResetStats)
	r.Get("/ws", s.handleWS)

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusFromState(s.engine.Snapshot()))
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	s.engine.Reset()
	s.publish()
	writeJSON(w, http.StatusOK, statusFromState(s.engine.Snapshot()))
}

// handleMove applies the player's pick and, while the round continues, the
// computer's reply.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	result := s.engine.Apply(req.Col, req.Row, true)
	if result == game.Invalid {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "illegal move"})
		return
	}

	if result == game.Continue {
		s.engine.ComputerTurn()
	}

	s.publish()
	writeJSON(w, http.StatusOK, statusFromState(s.engine.Snapshot()))
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	col, errCol := strconv.Atoi(r.URL.Query().Get("col"))
	row, errRow := strconv.Atoi(r.URL.Query().Get("row"))
	if errCol != nil || errRow != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid coordinates"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"legal": s.engine.IsLegal(col, row)})
}

func (s *Server) handleTip(w http.ResponseWriter, r *http.Request) {
	col, row, ok := s.engine.Tip()
	if !ok {
		writeJSON(w, http.StatusConflict, errorResponse{Error: "round is over"})
		return
	}
	s.publish()
	writeJSON(w, http.StatusOK, game.Coord{Col: col, Row: row})
}

func (s *Server) handleSurrender(w http.ResponseWriter, r *http.Request) {
	s.engine.Surrender()
	s.publish()
	writeJSON(w, http.StatusOK, statusFromState(s.engine.Snapshot()))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg := s.store.LoadSettings()
	writeJSON(w, http.StatusOK, settingsDTO{
		AILevel:        s.engine.AILevel(),
		AnimationSpeed: cfg.AnimationSpeed,
	})
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payload"})
		return
	}

	s.engine.SetAILevel(req.AILevel)

	cfg := s.store.LoadSettings()
	cfg.AILevel = s.engine.AILevel()
	if req.AnimationSpeed > 0 {
		cfg.AnimationSpeed = req.AnimationSpeed
	}
	if err := s.store.SaveSettings(cfg); err != nil {
		log.Warn().Err(err).Msg("failed to persist settings")
	}

	writeJSON(w, http.StatusOK, settingsDTO{
		AILevel:        cfg.AILevel,
		AnimationSpeed: cfg.AnimationSpeed,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	s.engine.ResetStats()
	writeJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{send: make(chan []byte, 16)}
	s.hub.register(c)
	c.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(statusFromState(s.engine.Snapshot()))})

	go func() {
		defer conn.Close()
		for data := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.unregister(c)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		switch msg.Type {
		case "request_status":
			c.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(statusFromState(s.engine.Snapshot()))})
		case "hover":
			var coord game.Coord
			if err := json.Unmarshal(msg.Payload, &coord); err == nil {
				s.engine.UpdateHover(coord.Col, coord.Row)
			}
		}
	}
}

func (s *Server) publish() {
	s.hub.Publish(statusFromState(s.engine.Snapshot()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("failed to encode response")
	}
}
