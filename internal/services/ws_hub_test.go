package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialTestConn spins up a WebSocket endpoint that registers the server
// side of the connection in the hub, and returns both ends.
func dialTestConn(t *testing.T, hub *WSHub, userID string) (client, server *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.Register(userID, conn)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	select {
	case server = <-serverConns:
	case <-time.After(time.Second):
		t.Fatal("server connection was not established")
	}
	return client, server
}

func readMessage(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHubSendToUser(t *testing.T) {
	hub := NewWSHub()
	client, _ := dialTestConn(t, hub, "alice")

	online := true
	require.NoError(t, hub.SendToUser("alice", WSMessage{Type: "partner_status", Online: &online}))

	msg := readMessage(t, client)
	assert.Equal(t, "partner_status", msg.Type)
	require.NotNil(t, msg.Online)
	assert.True(t, *msg.Online)
}

func TestHubSendToOfflineUser(t *testing.T) {
	hub := NewWSHub()
	err := hub.SendToUser("nobody", WSMessage{Type: "partner_status"})
	assert.Error(t, err)
}

func TestHubIsOnline(t *testing.T) {
	hub := NewWSHub()
	assert.False(t, hub.IsOnline("alice"))

	_, server := dialTestConn(t, hub, "alice")
	assert.True(t, hub.IsOnline("alice"))

	hub.Unregister("alice", server)
	assert.False(t, hub.IsOnline("alice"))
}

func TestHubRegisterSupersedes(t *testing.T) {
	hub := NewWSHub()
	_, firstServer := dialTestConn(t, hub, "alice")
	client2, _ := dialTestConn(t, hub, "alice")

	// The stale connection's teardown must not evict its replacement.
	hub.Unregister("alice", firstServer)
	assert.True(t, hub.IsOnline("alice"))

	require.NoError(t, hub.SendToUser("alice", WSMessage{Type: "couple_deleted"}))
	msg := readMessage(t, client2)
	assert.Equal(t, "couple_deleted", msg.Type)
}

func TestHubRelayGameEvent(t *testing.T) {
	hub := NewWSHub()
	_, _ = dialTestConn(t, hub, "alice")
	bobClient, _ := dialTestConn(t, hub, "bob")

	payload := json.RawMessage(`{"category":"животные","word":"кошка"}`)
	require.NoError(t, hub.RelayGameEvent("alice", "bob", "who_am_i", payload, 0))

	msg := readMessage(t, bobClient)
	assert.Equal(t, "game_event", msg.Type)
	assert.Equal(t, "alice", msg.InitiatorID)
	assert.Equal(t, "who_am_i", msg.Game)
	assert.JSONEq(t, string(payload), string(msg.Payload))
	assert.NotZero(t, msg.Timestamp)
}

func TestHubRelayGameEventOfflinePartner(t *testing.T) {
	hub := NewWSHub()
	aliceClient, _ := dialTestConn(t, hub, "alice")

	require.NoError(t, hub.RelayGameEvent("alice", "bob", "drawing", nil, 0))

	// The initiator gets an error instead of the event going nowhere.
	msg := readMessage(t, aliceClient)
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "Partner is offline", msg.Message)
}

func TestHubNotifyPartnerStatusNoop(t *testing.T) {
	hub := NewWSHub()
	// Neither an empty nor an offline partner may panic or error.
	hub.NotifyPartnerStatus("", true)
	hub.NotifyPartnerStatus("offline-user", false)
}
