// internal/game/session.go
package game

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/robert-carpenter/spellcast-clone/engine"
	"github.com/robert-carpenter/spellcast-clone/internal/cache"
)

// GameEventType identifies a room event broadcast to clients.
type GameEventType string

// Event types pushed over the room's WebSocket connections.
const (
	EventRoomState          GameEventType = "room_state"
	EventPlayerJoined       GameEventType = "player_joined"
	EventPlayerLeft         GameEventType = "player_left"
	EventPlayerDisconnected GameEventType = "player_disconnected"
	EventPlayerReconnected  GameEventType = "player_reconnected"
	EventGameStarted        GameEventType = "game_started"
	EventPlayerTurn         GameEventType = "player_turn"
	EventWordAccepted       GameEventType = "word_accepted"
	EventBoardShuffled      GameEventType = "board_shuffled"
	EventSwapModeStarted    GameEventType = "swap_mode_started"
	EventTileSwapped        GameEventType = "tile_swapped"
	EventSwapCancelled      GameEventType = "swap_cancelled"
	EventGameEnd            GameEventType = "game_end"
	EventRoomReset          GameEventType = "room_reset"
	EventPrivateActionFail  GameEventType = "private_action_fail" // Private: a rejected action with a reason.
)

// GameEvent is the standard structure for broadcasting room changes.
type GameEvent struct {
	Type     GameEventType          `json:"type"`
	PlayerID string                 `json:"playerId,omitempty"` // Initiating or targeted player.
	Payload  map[string]interface{} `json:"payload,omitempty"`
	Room     *engine.RoomSnapshot   `json:"room,omitempty"` // Full room state for sync-style events.
}

// Session wraps one engine room with concurrency control, timers, and
// broadcast plumbing. The engine itself is single-threaded; every entry
// point here takes the session mutex first.
type Session struct {
	Code string       // Join code clients use to address the room.
	Room *engine.Room // Authoritative room and game state.
	Dict engine.Dictionary

	TotalRounds     int
	TurnDuration    time.Duration // 0 disables the turn timer.
	DisconnectGrace time.Duration // 0 removes disconnected players immediately.
	LobbyResetDelay time.Duration // 0 disables the automatic return to lobby.

	Mu sync.Mutex

	turnEpoch   int // Increments on every turn change; stale timer fires check it.
	turnTimer   *time.Timer
	graceTimers map[string]*time.Timer
	resetTimer  *time.Timer
	actionIndex int

	// Communication callbacks.
	BroadcastFn         func(ev GameEvent)
	BroadcastToPlayerFn func(playerID string, ev GameEvent)
	OnEmpty             func(code string) // Invoked after the last player leaves.

	log *logrus.Entry
}

// NewSession creates a session for a fresh lobby room.
func NewSession(code string, totalRounds int, dict engine.Dictionary) *Session {
	return &Session{
		Code:        code,
		Room:        engine.NewRoom(code, totalRounds),
		Dict:        dict,
		TotalRounds: totalRounds,
		graceTimers: make(map[string]*time.Timer),
		log:         logrus.WithField("room", code),
	}
}

// HandleJoin adds or reconnects a player and broadcasts the new roster.
func (s *Session) HandleJoin(playerID, name string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	existing := s.Room.FindPlayer(playerID)
	p := engine.AddPlayer(s.Room, playerID, name)
	s.cancelGraceTimer(playerID)

	evType := EventPlayerJoined
	if existing != nil {
		evType = EventPlayerReconnected
	}
	s.log.WithFields(logrus.Fields{"player": playerID, "spectator": p.IsSpectator}).Info("player joined")
	s.logAction(playerID, string(evType), map[string]interface{}{"name": name, "spectator": p.IsSpectator})

	s.fireEvent(GameEvent{Type: evType, PlayerID: playerID})
	s.broadcastRoomState()
}

// HandleLeave removes a player outright. The engine resolves host
// transfer and mid-turn succession.
func (s *Session) HandleLeave(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.removePlayer(playerID, "left")
}

// HandleDisconnect marks a player disconnected and arms the grace timer.
// The player is only removed if the timer lapses without a reconnect.
func (s *Session) HandleDisconnect(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	p := s.Room.FindPlayer(playerID)
	if p == nil || !p.Connected {
		return
	}
	p.Connected = false
	s.log.WithField("player", playerID).Info("player disconnected")
	s.logAction(playerID, string(EventPlayerDisconnected), nil)
	s.fireEvent(GameEvent{Type: EventPlayerDisconnected, PlayerID: playerID})

	if s.DisconnectGrace <= 0 {
		s.removePlayer(playerID, "disconnected")
		return
	}
	s.cancelGraceTimer(playerID)
	s.graceTimers[playerID] = time.AfterFunc(s.DisconnectGrace, func() {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		p := s.Room.FindPlayer(playerID)
		if p == nil || p.Connected {
			return // Reconnected in time.
		}
		delete(s.graceTimers, playerID)
		s.removePlayer(playerID, "grace timer expired")
	})
	s.broadcastRoomState()
}

// HandleReconnect restores a disconnected player and sends them the
// current room state privately.
func (s *Session) HandleReconnect(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	p := s.Room.FindPlayer(playerID)
	if p == nil {
		return
	}
	p.Connected = true
	s.cancelGraceTimer(playerID)
	s.log.WithField("player", playerID).Info("player reconnected")
	s.logAction(playerID, string(EventPlayerReconnected), nil)

	s.fireEventToPlayer(playerID, GameEvent{Type: EventRoomState, Room: s.snapshot()})
	s.fireEvent(GameEvent{Type: EventPlayerReconnected, PlayerID: playerID})
	s.broadcastRoomState()
}

// StartGame begins a new game. Only the host may start, and only from
// the lobby.
func (s *Session) StartGame(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Room.HostID != playerID {
		s.failToPlayer(playerID, "Only the host can start the game.")
		return
	}
	if g := s.Room.Game; g != nil && !g.Completed {
		s.failToPlayer(playerID, "A game is already in progress.")
		return
	}
	if len(s.Room.ActivePlayers()) == 0 {
		s.failToPlayer(playerID, "Nobody to play with yet.")
		return
	}
	s.cancelResetTimer()

	seed := uint64(time.Now().UnixNano())
	engine.StartNewGame(s.Room, s.TotalRounds, seed)
	s.log.WithField("rounds", s.TotalRounds).Info("game started")
	s.logAction(playerID, string(EventGameStarted), map[string]interface{}{"rounds": s.TotalRounds})

	s.fireEvent(GameEvent{Type: EventGameStarted, PlayerID: playerID})
	s.broadcastRoomState()
	s.afterTurnChange()
}

// SubmitWord applies a word submission for playerID. Rejections are
// reported privately; accepted words broadcast the result and the new
// state.
func (s *Session) SubmitWord(playerID string, tileIDs []string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	res, err := engine.SubmitWord(s.Room, playerID, tileIDs, s.Dict)
	if err != nil {
		s.failToPlayer(playerID, err.Error())
		return
	}
	s.log.WithFields(logrus.Fields{"player": playerID, "word": res.Word, "points": res.Points}).Info("word accepted")
	s.logAction(playerID, string(EventWordAccepted), map[string]interface{}{
		"word": res.Word, "points": res.Points, "gems": res.Gems,
	})

	s.fireEvent(GameEvent{
		Type:     EventWordAccepted,
		PlayerID: playerID,
		Payload: map[string]interface{}{
			"word":          res.Word,
			"points":        res.Points,
			"gems":          res.Gems,
			"longWordBonus": res.LongWordBonus,
		},
	})
	s.broadcastRoomState()
	s.afterTurnChange()
}

// Shuffle spends one gem to shuffle the board. Does not consume the
// turn.
func (s *Session) Shuffle(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if err := engine.ShuffleBoard(s.Room, playerID); err != nil {
		s.failToPlayer(playerID, err.Error())
		return
	}
	s.logAction(playerID, string(EventBoardShuffled), nil)
	s.fireEvent(GameEvent{Type: EventBoardShuffled, PlayerID: playerID})
	s.broadcastRoomState()
}

// RequestSwap enters swap mode for playerID without charging gems yet.
func (s *Session) RequestSwap(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if err := engine.RequestSwapMode(s.Room, playerID); err != nil {
		s.failToPlayer(playerID, err.Error())
		return
	}
	s.logAction(playerID, string(EventSwapModeStarted), nil)
	s.fireEvent(GameEvent{Type: EventSwapModeStarted, PlayerID: playerID})
	s.broadcastRoomState()
}

// ApplySwap replaces one tile's letter, charging the swap cost.
func (s *Session) ApplySwap(playerID, tileID, letter string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if err := engine.ApplySwap(s.Room, playerID, tileID, letter); err != nil {
		s.failToPlayer(playerID, err.Error())
		return
	}
	s.logAction(playerID, string(EventTileSwapped), map[string]interface{}{
		"tileId": tileID, "letter": strings.ToUpper(letter),
	})
	s.fireEvent(GameEvent{
		Type:     EventTileSwapped,
		PlayerID: playerID,
		Payload:  map[string]interface{}{"tileId": tileID},
	})
	s.broadcastRoomState()
}

// CancelSwap leaves swap mode without charge.
func (s *Session) CancelSwap(playerID string) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	engine.CancelSwap(s.Room, playerID)
	s.fireEvent(GameEvent{Type: EventSwapCancelled, PlayerID: playerID})
	s.broadcastRoomState()
}

// Close stops all timers. Called when the manager discards the session.
func (s *Session) Close() {
	s.Mu.Lock()
	defer s.Mu.Unlock()
	s.stopTurnTimer()
	s.cancelResetTimer()
	for id, t := range s.graceTimers {
		t.Stop()
		delete(s.graceTimers, id)
	}
}

// removePlayer takes a player out of the room and handles the fallout:
// host transfer and turn succession happen in the engine, game end and
// empty-room cleanup here.
// Assumes lock is held by caller.
func (s *Session) removePlayer(playerID, reason string) {
	s.cancelGraceTimer(playerID)
	if !engine.RemovePlayer(s.Room, playerID) {
		return
	}
	s.log.WithFields(logrus.Fields{"player": playerID, "reason": reason}).Info("player removed")
	s.logAction(playerID, string(EventPlayerLeft), map[string]interface{}{"reason": reason})
	s.fireEvent(GameEvent{Type: EventPlayerLeft, PlayerID: playerID})

	if len(s.Room.Players) == 0 {
		s.stopTurnTimer()
		s.cancelResetTimer()
		if s.OnEmpty != nil {
			go s.OnEmpty(s.Code)
		}
		return
	}
	s.broadcastRoomState()
	s.afterTurnChange()
}

// afterTurnChange runs whenever the current turn may have moved: it
// announces the turn, reschedules the timer, and detects game end.
// Assumes lock is held by caller.
func (s *Session) afterTurnChange() {
	g := s.Room.Game
	if g == nil {
		return
	}
	if g.Completed {
		s.handleGameEnd()
		return
	}
	s.scheduleTurnTimer()
	snap := engine.ToPublicGameState(s.Room)
	if snap == nil {
		return
	}
	s.fireEvent(GameEvent{
		Type:     EventPlayerTurn,
		PlayerID: snap.CurrentPlayerID,
		Payload:  map[string]interface{}{"round": snap.Round},
	})
}

// scheduleTurnTimer arms the timer for the current turn. A fire is only
// honored if the epoch still matches, so late fires after a submission
// are dropped.
// Assumes lock is held by caller.
func (s *Session) scheduleTurnTimer() {
	s.stopTurnTimer()
	if s.TurnDuration <= 0 {
		return
	}
	s.turnEpoch++
	epoch := s.turnEpoch
	s.turnTimer = time.AfterFunc(s.TurnDuration, func() {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		if epoch != s.turnEpoch {
			return
		}
		s.handleTurnTimeout()
	})
}

// handleTurnTimeout forfeits the current turn.
// Assumes lock is held by caller.
func (s *Session) handleTurnTimeout() {
	g := s.Room.Game
	if g == nil || g.Completed {
		return
	}
	s.log.Debug("turn timer expired")
	s.logAction("", "turn_timeout", nil)
	engine.AdvanceTurn(s.Room)
	s.broadcastRoomState()
	s.afterTurnChange()
}

// handleGameEnd broadcasts the result and schedules the return to
// lobby.
// Assumes lock is held by caller.
func (s *Session) handleGameEnd() {
	g := s.Room.Game
	s.stopTurnTimer()

	scores := make(map[string]interface{}, len(s.Room.Players))
	for _, p := range s.Room.Players {
		scores[p.ID] = p.Score
	}
	s.log.WithField("winner", g.WinnerID).Info("game ended")
	s.logAction("", string(EventGameEnd), map[string]interface{}{"winner": g.WinnerID, "scores": scores})
	s.fireEvent(GameEvent{
		Type:     EventGameEnd,
		PlayerID: g.WinnerID,
		Payload:  map[string]interface{}{"winner": g.WinnerID, "scores": scores},
	})

	if s.LobbyResetDelay <= 0 {
		return
	}
	s.cancelResetTimer()
	s.resetTimer = time.AfterFunc(s.LobbyResetDelay, func() {
		s.Mu.Lock()
		defer s.Mu.Unlock()
		s.resetTimer = nil
		if s.Room.Game == nil || !s.Room.Game.Completed {
			return
		}
		engine.ResetToLobby(s.Room)
		s.fireEvent(GameEvent{Type: EventRoomReset})
		s.broadcastRoomState()
	})
}

// snapshot builds the public room projection.
// Assumes lock is held by caller.
func (s *Session) snapshot() *engine.RoomSnapshot {
	snap := engine.ToPublicRoom(s.Room)
	return &snap
}

// broadcastRoomState pushes the full public state to everyone.
// Assumes lock is held by caller.
func (s *Session) broadcastRoomState() {
	s.fireEvent(GameEvent{Type: EventRoomState, Room: s.snapshot()})
}

// failToPlayer reports a rejected action privately.
// Assumes lock is held by caller.
func (s *Session) failToPlayer(playerID, reason string) {
	s.fireEventToPlayer(playerID, GameEvent{
		Type:     EventPrivateActionFail,
		PlayerID: playerID,
		Payload:  map[string]interface{}{"message": reason},
	})
}

// fireEvent broadcasts an event to all connected players.
// Assumes lock is held by caller.
func (s *Session) fireEvent(ev GameEvent) {
	if s.BroadcastFn == nil {
		s.log.WithField("type", ev.Type).Warn("BroadcastFn is nil, dropping event")
		return
	}
	s.BroadcastFn(ev)
}

// fireEventToPlayer sends an event to a single player.
// Assumes lock is held by caller.
func (s *Session) fireEventToPlayer(playerID string, ev GameEvent) {
	if s.BroadcastToPlayerFn == nil {
		s.log.WithField("type", ev.Type).Warn("BroadcastToPlayerFn is nil, dropping event")
		return
	}
	s.BroadcastToPlayerFn(playerID, ev)
}

// stopTurnTimer invalidates any pending turn timer fire.
// Assumes lock is held by caller.
func (s *Session) stopTurnTimer() {
	s.turnEpoch++
	if s.turnTimer != nil {
		s.turnTimer.Stop()
		s.turnTimer = nil
	}
}

func (s *Session) cancelResetTimer() {
	if s.resetTimer != nil {
		s.resetTimer.Stop()
		s.resetTimer = nil
	}
}

func (s *Session) cancelGraceTimer(playerID string) {
	if t, ok := s.graceTimers[playerID]; ok {
		t.Stop()
		delete(s.graceTimers, playerID)
	}
}

// logAction queues an action record for the historian. Fire-and-forget;
// a nil Redis client disables history.
// Assumes lock is held by caller.
func (s *Session) logAction(actorID, actionType string, payload map[string]interface{}) {
	s.actionIndex++
	rec := cache.RoomActionRecord{
		RoomID:        s.Code,
		ActionIndex:   s.actionIndex,
		ActorPlayerID: actorID,
		ActionType:    actionType,
		ActionPayload: payload,
		Timestamp:     time.Now().UnixMilli(),
	}
	go func(rec cache.RoomActionRecord) {
		if cache.Rdb == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := cache.PublishRoomAction(ctx, rec); err != nil {
			logrus.WithError(err).WithField("room", rec.RoomID).Error("failed publishing action record")
		}
	}(rec)
}
