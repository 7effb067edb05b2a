package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/meetspace/signaling-server/internal/proto"
)

func TestHealthcheck(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/healthcheck")
	if err != nil {
		t.Fatalf("healthcheck request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode healthcheck: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf("unexpected healthcheck body: %+v", body)
	}
}

func TestRoomsEmptyByDefault(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/rooms")
	if err != nil {
		t.Fatalf("rooms request: %v", err)
	}
	defer resp.Body.Close()

	var body RoomsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode rooms: %v", err)
	}
	if len(body.Rooms) != 0 {
		t.Fatalf("expected no rooms, got %+v", body.Rooms)
	}
}

func TestRoomsListsMembers(t *testing.T) {
	ts, _ := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts, "")
	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{RoomID: "standup", Username: "alice"})

	users := waitRoomUsers(t, ts, "standup", 1)
	if users[0].Username != "alice" || users[0].UserID == "" {
		t.Fatalf("unexpected rooms listing: %+v", users)
	}
}

func TestGuestEndpoint(t *testing.T) {
	ts, tokens := startTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/guest", "application/json", strings.NewReader(`{"username":"dave"}`))
	if err != nil {
		t.Fatalf("guest request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode guest response: %v", err)
	}

	claims, err := tokens.Validate(body.Token)
	if err != nil {
		t.Fatalf("returned token does not validate: %v", err)
	}
	if claims.Username != "dave" || !claims.IsGuest {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestGuestEndpointRejectsMissingUsername(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/api/guest", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("guest request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
