package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-carpenter/spellcast-clone/internal/game"
	"github.com/robert-carpenter/spellcast-clone/internal/words"
)

func newTestServer(t *testing.T) (*httptest.Server, *Server) {
	t.Helper()
	m := game.NewManager(game.ManagerConfig{TotalRounds: 3, MaxPlayers: 8}, words.New("CAT"))
	srv := NewServer(m)
	mux := http.NewServeMux()
	srv.Routes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	t.Cleanup(m.Shutdown)
	return ts, srv
}

func createRoom(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/rooms", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body["code"], 6)
	return body["code"]
}

func dial(t *testing.T, ts *httptest.Server, code, player string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := strings.Replace(ts.URL, "http", "ws", 1) +
		"/ws?room=" + code + "&player=" + player + "&name=" + player
	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close(websocket.StatusNormalClosure, "") })
	return c
}

// readUntil drains events until one of the wanted type arrives.
func readUntil(t *testing.T, c *websocket.Conn, want game.GameEventType) game.GameEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		var ev game.GameEvent
		require.NoError(t, wsjson.Read(ctx, c, &ev), "waiting for %s", want)
		if ev.Type == want {
			return ev
		}
	}
}

// TestCreateRoomAndJoin verifies the create/join round trip delivers
// the room state to the joining client.
func TestCreateRoomAndJoin(t *testing.T) {
	ts, _ := newTestServer(t)
	code := createRoom(t, ts)

	c := dial(t, ts, code, "p1")
	ev := readUntil(t, c, game.EventRoomState)
	require.NotNil(t, ev.Room)
	assert.Equal(t, "p1", ev.Room.HostID)
	require.Len(t, ev.Room.Players, 1)
}

// TestJoinUnknownRoom verifies dialing a bad code is rejected before
// the upgrade.
func TestJoinUnknownRoom(t *testing.T) {
	ts, _ := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := strings.Replace(ts.URL, "http", "ws", 1) + "/ws?room=NOSUCH&player=p1"
	_, resp, err := websocket.Dial(ctx, url, nil)
	require.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

// TestStartGameBroadcast verifies a host start reaches every client.
func TestStartGameBroadcast(t *testing.T) {
	ts, _ := newTestServer(t)
	code := createRoom(t, ts)

	c1 := dial(t, ts, code, "p1")
	readUntil(t, c1, game.EventRoomState)
	c2 := dial(t, ts, code, "p2")
	readUntil(t, c2, game.EventRoomState)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, c1, ClientMessage{Type: "start_game"}))

	readUntil(t, c1, game.EventGameStarted)
	ev := readUntil(t, c2, game.EventRoomState)
	require.NotNil(t, ev.Room.Game)
	assert.Equal(t, 1, ev.Room.Game.Round)
}

// TestUnknownMessageType verifies an unrecognized envelope gets a
// private failure instead of killing the connection.
func TestUnknownMessageType(t *testing.T) {
	ts, _ := newTestServer(t)
	code := createRoom(t, ts)
	c := dial(t, ts, code, "p1")
	readUntil(t, c, game.EventRoomState)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, c, ClientMessage{Type: "bogus"}))

	ev := readUntil(t, c, game.EventPrivateActionFail)
	assert.Contains(t, ev.Payload["message"], "unknown message type")
}
