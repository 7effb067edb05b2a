package http

import (
	"context"
	"testing"
	"time"

	"github.com/meetspace/signaling-server/internal/proto"
)

// The upgrade must succeed through the exact handler NewServer wires up:
// gin's response writer refuses to hijack once headers are written, so
// /ws has to bypass the gin router while REST stays behind it.
func TestServerHandlerAllowsWebSocketUpgrade(t *testing.T) {
	ts, _ := startTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(t, ctx, ts, "")
	sendInbound(t, ctx, conn, proto.InboundTypeJoin, proto.JoinData{RoomID: "lobby", Username: "ada"})

	// Both surfaces share one handler: the socket reached the hub and the
	// gin-served /rooms route reflects it.
	users := waitRoomUsers(t, ts, "lobby", 1)
	if users[0].Username != "ada" {
		t.Fatalf("expected ada in lobby, got %+v", users)
	}
}
