// internal/game/manager.go
package game

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/robert-carpenter/spellcast-clone/engine"
)

// Errors returned by room lookup and join operations.
var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// joinCodeLength is the number of characters in a room join code.
const joinCodeLength = 6

// ManagerConfig carries the per-room settings the manager stamps onto
// every session it creates.
type ManagerConfig struct {
	TotalRounds     int
	TurnDuration    time.Duration
	DisconnectGrace time.Duration
	LobbyResetDelay time.Duration
	MaxPlayers      int
}

// Manager owns the live sessions, keyed by join code.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg  ManagerConfig
	dict engine.Dictionary
}

// NewManager creates an empty room registry.
func NewManager(cfg ManagerConfig, dict engine.Dictionary) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		dict:     dict,
	}
}

// CreateRoom allocates a session under a fresh join code.
func (m *Manager) CreateRoom() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	code := m.newJoinCode()
	s := NewSession(code, m.cfg.TotalRounds, m.dict)
	s.TurnDuration = m.cfg.TurnDuration
	s.DisconnectGrace = m.cfg.DisconnectGrace
	s.LobbyResetDelay = m.cfg.LobbyResetDelay
	s.OnEmpty = m.removeEmpty
	m.sessions[code] = s

	logrus.WithField("room", code).Info("room created")
	return s
}

// GetRoom looks a session up by join code, case-insensitively.
func (m *Manager) GetRoom(code string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[strings.ToUpper(code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s, nil
}

// JoinRoom resolves the room and enforces the player cap before the
// join is applied. Rejoining players never count against the cap.
func (m *Manager) JoinRoom(code, playerID, name string) (*Session, error) {
	s, err := m.GetRoom(code)
	if err != nil {
		return nil, err
	}
	s.Mu.Lock()
	full := s.Room.FindPlayer(playerID) == nil &&
		m.cfg.MaxPlayers > 0 && len(s.Room.Players) >= m.cfg.MaxPlayers
	s.Mu.Unlock()
	if full {
		return nil, ErrRoomFull
	}
	s.HandleJoin(playerID, name)
	return s, nil
}

// RoomCount returns the number of live sessions.
func (m *Manager) RoomCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, s := range m.sessions {
		s.Close()
		delete(m.sessions, code)
	}
}

// removeEmpty discards a session after its last player left. Wired into
// each session's OnEmpty callback.
func (m *Manager) removeEmpty(code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[code]
	if !ok {
		return
	}
	s.Close()
	delete(m.sessions, code)
	logrus.WithField("room", code).Info("empty room removed")
}

// newJoinCode derives a short uppercase code from a fresh UUID,
// retrying on the unlikely collision.
// Assumes lock is held by caller.
func (m *Manager) newJoinCode() string {
	for {
		id := uuid.New()
		code := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:joinCodeLength])
		if _, taken := m.sessions[code]; !taken {
			return code
		}
	}
}
