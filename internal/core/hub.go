package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type opKind int

const (
	opRegister opKind = iota
	opUnregister
	opCommand
)

type hubOp struct {
	kind   opKind
	client *Client
	cmd    *Command
}

// Hub coordinates rooms, membership and signal relay. All state
// (directory, registry, client table) is owned by the single Run
// goroutine; transports talk to it exclusively through channels, so
// events from one connection are processed in the order they were
// sent and no locking is needed.
type Hub struct {
	log       *zerolog.Logger
	directory *Directory
	registry  *Registry

	ops       chan hubOp
	snapshots chan chan []RoomInfo

	clients map[string]*Client
	// peerStatus tracks the last reported peer-connection state per
	// (reporter, peer) pair; cleared when the reporter disconnects.
	peerStatus map[string]map[string]string

	heartbeatInterval time.Duration
	staleThreshold    time.Duration
}

const (
	defaultHeartbeatInterval = 10 * time.Second
	defaultStaleThreshold    = 60 * time.Second
)

// NewHub creates a hub with the given liveness settings. Zero
// durations fall back to the defaults (10s probe, 60s stale).
func NewHub(logger *zerolog.Logger, heartbeatInterval, staleThreshold time.Duration) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if heartbeatInterval <= 0 {
		heartbeatInterval = defaultHeartbeatInterval
	}
	if staleThreshold <= 0 {
		staleThreshold = defaultStaleThreshold
	}
	return &Hub{
		log:               logger,
		directory:         NewDirectory(),
		registry:          NewRegistry(),
		ops:               make(chan hubOp, 64),
		snapshots:         make(chan chan []RoomInfo),
		clients:           make(map[string]*Client),
		peerStatus:        make(map[string]map[string]string),
		heartbeatInterval: heartbeatInterval,
		staleThreshold:    staleThreshold,
	}
}

// RegisterClient admits a connection into the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.ops <- hubOp{kind: opRegister, client: c}
}

// UnregisterClient releases a connection and everything tied to it.
// Safe to call more than once.
func (h *Hub) UnregisterClient(c *Client) {
	h.ops <- hubOp{kind: opUnregister, client: c}
}

// Snapshot returns a copy of the current room directory, serialized
// through the hub loop so it observes a consistent instant.
func (h *Hub) Snapshot(ctx context.Context) ([]RoomInfo, error) {
	reply := make(chan []RoomInfo, 1)
	select {
	case h.snapshots <- reply:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case info := <-reply:
		return info, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run processes hub operations until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case op := <-h.ops:
			switch op.kind {
			case opRegister:
				h.admit(op.client)
			case opUnregister:
				h.release(op.client)
			case opCommand:
				h.dispatch(op.client, op.cmd)
			}
		case reply := <-h.snapshots:
			reply <- h.directory.Snapshot()
		case <-ticker.C:
			h.probe()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) admit(c *Client) {
	if _, ok := h.clients[c.ID]; ok {
		return
	}
	h.clients[c.ID] = c
	h.registry.Admit(c.ID)
	h.log.Info().Str("conn_id", c.ID).Msg("client connected")

	// Pump the client's command channel into the hub loop. One pump
	// per connection keeps its events FIFO.
	go func() {
		for {
			select {
			case cmd, ok := <-c.Commands:
				if !ok {
					return
				}
				select {
				case h.ops <- hubOp{kind: opCommand, client: c, cmd: cmd}:
				case <-c.done:
					return
				}
			case <-c.done:
				return
			}
		}
	}()
}

// release runs the Disconnect transition: remove the member from its
// room, notify the remaining members, and drop all bookkeeping tied
// to the connection id. Idempotent.
func (h *Hub) release(c *Client) {
	if !h.registry.Release(c.ID) {
		return
	}
	if roomID, ok := h.directory.RoomOf(c.ID); ok {
		h.leave(c, roomID)
	}
	delete(h.peerStatus, c.ID)
	delete(h.clients, c.ID)
	close(c.done)
	h.log.Info().Str("conn_id", c.ID).Msg("client disconnected")
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	if _, ok := h.clients[c.ID]; !ok {
		return // connection already released
	}
	// Any inbound traffic counts as liveness.
	h.registry.Heartbeat(c.ID)

	switch cmd.Kind {
	case CommandJoinRoom:
		h.join(c, cmd.Room, cmd.Name)
	case CommandLeaveRoom:
		h.leave(c, cmd.Room)
	case CommandSendSignal:
		h.relay(c, cmd.Target, cmd.Signal, EventIncomingSignal)
	case CommandReturnSignal:
		h.relay(c, cmd.Target, cmd.Signal, EventSignalAnswer)
	case CommandChatMessage:
		h.chat(c, cmd.Room, cmd.Text)
	case CommandConnectionStatus:
		h.connectionStatus(c, cmd.Target, cmd.Status)
	case CommandICEStateChange:
		h.iceStateChange(c, cmd.Target, cmd.Status)
	case CommandVideoStreamStatus:
		h.videoStreamStatus(c, cmd.Target, cmd.Status)
	case CommandHeartbeat:
		h.send(c, &Event{Kind: EventPong})
	case CommandHeartbeatAck:
		// Liveness already recorded above.
	default:
		h.log.Warn().Str("conn_id", c.ID).Int("kind", int(cmd.Kind)).Msg("unknown command")
	}
}

// join runs the Join transition: normalize the room id, implicitly
// leave any other room, register membership, introduce the existing
// members to the joiner and the joiner to the existing members.
func (h *Hub) join(c *Client, roomID, displayName string) {
	roomID = NormalizeRoomID(roomID)
	if roomID == "" {
		h.log.Warn().Str("conn_id", c.ID).Msg("join with empty room id dropped")
		return
	}

	if displayName == "" {
		// Fall back to the transport-seeded name (e.g. guest token).
		displayName = c.Name
	}

	if c.CurrentRoom != "" && c.CurrentRoom != roomID {
		h.leave(c, c.CurrentRoom)
	}

	_, added := h.directory.AddMember(roomID, c.ID, displayName)
	c.CurrentRoom = roomID
	c.Name = displayName

	others := h.directory.Members(roomID, c.ID)
	if len(others) > 0 {
		h.send(c, &Event{Kind: EventCurrentMembers, Members: others})
	}

	// A repeated join re-broadcasts member-joined; clients use it as
	// a keep-alive and tolerate duplicates.
	h.broadcast(roomID, c.ID, &Event{
		Kind:   EventMemberJoined,
		Sender: c.ID,
		Name:   displayName,
	})

	h.log.Info().
		Str("conn_id", c.ID).
		Str("room", roomID).
		Str("username", displayName).
		Bool("new_member", added).
		Msg("joined room")
}

// leave runs the Leave transition. A connection that is not a member
// of the room is a no-op: no state change, no broadcast.
func (h *Hub) leave(c *Client, roomID string) {
	roomID = NormalizeRoomID(roomID)
	name, removed := h.directory.RemoveMember(roomID, c.ID)
	if !removed {
		return
	}
	if c.CurrentRoom == roomID {
		c.CurrentRoom = ""
	}

	h.broadcast(roomID, c.ID, &Event{
		Kind:   EventMemberLeft,
		Sender: c.ID,
		Name:   name,
	})

	h.log.Info().
		Str("conn_id", c.ID).
		Str("room", roomID).
		Str("username", name).
		Msg("left room")
}

// relay forwards an opaque signaling payload to the target, which
// must be a distinct member of the sender's current room. Failures go
// back to the sender only.
func (h *Hub) relay(c *Client, targetID string, signal []byte, kind EventKind) {
	if targetID == c.ID {
		h.sendRelayError(c, targetID, RelayErrSelf)
		return
	}
	target, ok := h.clients[targetID]
	if !ok || c.CurrentRoom == "" || !h.directory.IsMember(c.CurrentRoom, targetID) {
		h.sendRelayError(c, targetID, RelayErrNotInRoom)
		return
	}

	ev := &Event{Kind: kind, Sender: c.ID, Signal: signal}
	if kind == EventIncomingSignal {
		ev.Name = c.Name
	}
	h.send(target, ev)
}

func (h *Hub) sendRelayError(c *Client, targetID, reason string) {
	h.log.Debug().
		Str("conn_id", c.ID).
		Str("target", targetID).
		Str("reason", reason).
		Msg("signal relay failed")
	h.send(c, &Event{Kind: EventSignalError, Target: targetID, Error: reason})
}

// chat relays a chat line to every member of the room except the
// sender. The room id comes from the payload and is normalized like
// everywhere else.
func (h *Hub) chat(c *Client, roomID, text string) {
	roomID = NormalizeRoomID(roomID)
	if roomID == "" {
		return
	}
	h.broadcast(roomID, c.ID, &Event{
		Kind:   EventChatMessage,
		Sender: c.ID,
		Text:   text,
	})
}

func (h *Hub) connectionStatus(c *Client, peerID, status string) {
	states, ok := h.peerStatus[c.ID]
	if !ok {
		states = make(map[string]string)
		h.peerStatus[c.ID] = states
	}
	states[peerID] = status

	h.log.Debug().
		Str("conn_id", c.ID).
		Str("peer", peerID).
		Str("status", status).
		Msg("peer connection status")

	if peer, ok := h.clients[peerID]; ok {
		h.send(peer, &Event{Kind: EventPeerStatus, Sender: c.ID, Status: status})
	}
}

// iceStateChange asks both sides to verify their video elements once
// the ICE layer reports a usable path.
func (h *Hub) iceStateChange(c *Client, peerID, state string) {
	if state != "connected" && state != "completed" {
		return
	}
	h.send(c, &Event{Kind: EventCheckVideo, Target: peerID})
	if peer, ok := h.clients[peerID]; ok {
		h.send(peer, &Event{Kind: EventCheckVideo, Target: c.ID})
	}
}

func (h *Hub) videoStreamStatus(c *Client, peerID, status string) {
	if status != "black" {
		return
	}
	if peer, ok := h.clients[peerID]; ok {
		h.send(peer, &Event{Kind: EventRestartVideo, Sender: c.ID})
	}
}

// probe pings every live connection and logs the ones that went
// silent. Stale connections are never evicted here; the transport's
// close event is the only removal trigger.
func (h *Hub) probe() {
	ping := &Event{Kind: EventPing}
	for _, c := range h.clients {
		h.send(c, ping)
	}
	for _, id := range h.registry.MarkStale(h.staleThreshold) {
		h.log.Warn().Str("conn_id", id).Msg("connection appears to be lost (no pong)")
	}
}

// broadcast delivers an event to every member of the room except the
// excluded connection.
func (h *Hub) broadcast(roomID, exclude string, ev *Event) {
	for _, m := range h.directory.Members(roomID, exclude) {
		if c, ok := h.clients[m.ID]; ok {
			h.send(c, ev)
		}
	}
}

func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
		h.log.Debug().Str("conn_id", c.ID).Int("kind", int(ev.Kind)).Msg("event dropped, slow consumer")
	}
}
