package core

import (
	"context"
	"testing"
	"time"
)

func testContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 3*time.Second)
}

// startHub runs a hub with liveness probing pushed far out so tests
// never see ping noise.
func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(nil, time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustNoEvent drains the channel for a short window and fails if an
// event of the given kind shows up.
func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v received: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// waitMembers polls the hub snapshot until the room holds the
// expected number of members. Tests use it to sequence joins from
// different connections, which have no ordering guarantee between
// each other.
func waitMembers(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()

	ctx, cancel := testContext(t)
	defer cancel()

	var last []RoomInfo
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		info, err := hub.Snapshot(ctx)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		for _, r := range info {
			if r.Name == room && len(r.Members) == want {
				return
			}
		}
		last = info
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room %q never reached %d members, last snapshot: %+v", room, want, last)
}

// waitRooms polls the hub snapshot until it holds the expected number
// of rooms.
func waitRooms(t *testing.T, hub *Hub, want int) []RoomInfo {
	t.Helper()

	ctx, cancel := testContext(t)
	defer cancel()

	var last []RoomInfo
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		info, err := hub.Snapshot(ctx)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if len(info) == want {
			return info
		}
		last = info
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d rooms, last snapshot: %+v", want, last)
	return nil
}
