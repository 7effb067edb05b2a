package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/meetspace/signaling-server/internal/auth"
	"github.com/meetspace/signaling-server/internal/config"
	"github.com/meetspace/signaling-server/internal/core"
	"github.com/meetspace/signaling-server/internal/proto"
)

func startTestServer(t *testing.T) (*httptest.Server, *auth.Service) {
	t.Helper()

	nop := zerolog.Nop()
	// Liveness probing pushed far out so tests never read ping noise.
	hub := core.NewHub(&nop, time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	tokens := auth.NewService(&auth.Config{
		Secret: []byte("test-secret"),
		Issuer: "test",
		TTL:    time.Hour,
	})

	server := NewServer(hub, tokens, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		SendBuffer:        32,
	}, &nop)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, tokens
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws" + query
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func sendInbound(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", msgType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

type outboundFrame struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// readEvent reads frames until one with the wanted event name arrives.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var frame outboundFrame
		if err := wsjson.Read(ctx, conn, &frame); err != nil {
			t.Fatalf("read while waiting for %q: %v", event, err)
		}
		if frame.Event == event {
			return frame.Data
		}
	}
}

// waitRoomUsers polls the /rooms endpoint until the named room holds
// the expected number of users, returning its user list.
func waitRoomUsers(t *testing.T, ts *httptest.Server, room string, count int) []RoomUser {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	var last RoomsResponse
	for time.Now().Before(deadline) {
		resp, err := ts.Client().Get(ts.URL + "/rooms")
		if err != nil {
			t.Fatalf("rooms request: %v", err)
		}
		var body RoomsResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			t.Fatalf("decode rooms response: %v", err)
		}
		last = body
		for _, entry := range body.Rooms {
			if entry.RoomID == room && entry.UserCount == count {
				return entry.Users
			}
		}
		if room == "" && count == 0 && len(body.Rooms) == 0 {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %q never reached %d users, last: %+v", room, count, last)
	return nil
}
