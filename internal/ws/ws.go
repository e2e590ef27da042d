// Package ws exposes the room sessions over WebSockets. Each room has a
// hub of live connections; session broadcast callbacks fan events out
// through it.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/robert-carpenter/spellcast-clone/internal/game"
)

// writeTimeout bounds a single event write so one stalled client cannot
// block the session goroutine.
const writeTimeout = 5 * time.Second

// ClientMessage is the envelope clients send over the socket.
type ClientMessage struct {
	Type    string   `json:"type"`
	TileIDs []string `json:"tileIds,omitempty"` // submit_word
	TileID  string   `json:"tileId,omitempty"`  // swap_apply
	Letter  string   `json:"letter,omitempty"`  // swap_apply
}

// roomHub tracks the live connections of one room.
type roomHub struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn // playerID -> connection
}

func newRoomHub() *roomHub {
	return &roomHub{conns: make(map[string]*websocket.Conn)}
}

func (h *roomHub) set(playerID string, c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if old, ok := h.conns[playerID]; ok && old != c {
		old.Close(websocket.StatusPolicyViolation, "superseded by a new connection")
	}
	h.conns[playerID] = c
}

// remove drops the mapping only if it still points at c, so a fast
// reconnect is not clobbered by the old connection's teardown.
func (h *roomHub) remove(playerID string, c *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[playerID] != c {
		return false
	}
	delete(h.conns, playerID)
	return true
}

func (h *roomHub) sendTo(playerID string, ev game.GameEvent) {
	h.mu.Lock()
	c := h.conns[playerID]
	h.mu.Unlock()
	if c == nil {
		return
	}
	writeEvent(c, ev)
}

func (h *roomHub) broadcast(ev game.GameEvent) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()
	for _, c := range conns {
		writeEvent(c, ev)
	}
}

func writeEvent(c *websocket.Conn, ev game.GameEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c, ev); err != nil {
		logrus.WithError(err).Debug("ws: event write failed")
	}
}

// Server routes HTTP and WebSocket traffic into the room manager.
type Server struct {
	manager *game.Manager

	mu   sync.Mutex
	hubs map[string]*roomHub
}

// NewServer wraps a manager for transport.
func NewServer(m *game.Manager) *Server {
	return &Server{manager: m, hubs: make(map[string]*roomHub)}
}

// Routes registers the server's endpoints on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/rooms", s.handleCreateRoom)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// handleCreateRoom allocates a room and returns its join code.
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess := s.manager.CreateRoom()
	s.wireSession(sess)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"code": sess.Code})
}

// handleWS upgrades the connection and joins the player to the room
// named in the query string.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.URL.Query().Get("room"))
	playerID := r.URL.Query().Get("player")
	name := r.URL.Query().Get("name")
	if code == "" || playerID == "" {
		http.Error(w, "room and player are required", http.StatusBadRequest)
		return
	}
	if name == "" {
		name = playerID
	}
	if _, err := s.manager.GetRoom(code); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws: accept failed")
		return
	}

	hub := s.hub(code)
	hub.set(playerID, c)

	sess, err := s.manager.JoinRoom(code, playerID, name)
	if err != nil {
		hub.remove(playerID, c)
		c.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}

	log := logrus.WithFields(logrus.Fields{"room": code, "player": playerID})
	log.Info("ws: connected")
	s.readLoop(r.Context(), c, hub, sess, playerID, log)
}

// readLoop decodes and dispatches client messages until the connection
// drops, then hands the player to the session's disconnect flow.
func (s *Server) readLoop(ctx context.Context, c *websocket.Conn, hub *roomHub, sess *game.Session, playerID string, log *logrus.Entry) {
	defer func() {
		if hub.remove(playerID, c) {
			sess.HandleDisconnect(playerID)
		}
		c.Close(websocket.StatusNormalClosure, "")
		log.Info("ws: disconnected")
	}()

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, c, &msg); err != nil {
			return
		}
		s.dispatch(sess, playerID, msg, c, hub)
	}
}

// dispatch routes one client message to the session.
func (s *Server) dispatch(sess *game.Session, playerID string, msg ClientMessage, c *websocket.Conn, hub *roomHub) {
	switch msg.Type {
	case "start_game":
		sess.StartGame(playerID)
	case "submit_word":
		sess.SubmitWord(playerID, msg.TileIDs)
	case "shuffle":
		sess.Shuffle(playerID)
	case "swap_request":
		sess.RequestSwap(playerID)
	case "swap_apply":
		sess.ApplySwap(playerID, msg.TileID, msg.Letter)
	case "swap_cancel":
		sess.CancelSwap(playerID)
	case "leave":
		hub.remove(playerID, c)
		sess.HandleLeave(playerID)
		c.Close(websocket.StatusNormalClosure, "left the room")
	default:
		writeEvent(c, game.GameEvent{
			Type:     game.EventPrivateActionFail,
			PlayerID: playerID,
			Payload:  map[string]interface{}{"message": "unknown message type: " + msg.Type},
		})
	}
}

// hub returns the room's connection hub, creating it on first use.
func (s *Server) hub(code string) *roomHub {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hubs[code]
	if !ok {
		h = newRoomHub()
		s.hubs[code] = h
	}
	return h
}

// wireSession points a session's broadcast callbacks at the room hub
// and arranges hub cleanup when the room empties.
func (s *Server) wireSession(sess *game.Session) {
	hub := s.hub(sess.Code)
	sess.BroadcastFn = hub.broadcast
	sess.BroadcastToPlayerFn = hub.sendTo

	inner := sess.OnEmpty
	sess.OnEmpty = func(code string) {
		s.mu.Lock()
		delete(s.hubs, code)
		s.mu.Unlock()
		if inner != nil {
			inner(code)
		}
	}
}
