package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventCurrentMembers delivers the existing member list to a
	// client that just joined a non-empty room.
	EventCurrentMembers EventKind = iota
	// EventMemberJoined notifies existing members about a new member.
	EventMemberJoined
	// EventMemberLeft notifies remaining members about a departure.
	EventMemberLeft
	// EventIncomingSignal delivers a relayed offer/ICE payload.
	EventIncomingSignal
	// EventSignalAnswer delivers a relayed answer payload.
	EventSignalAnswer
	// EventSignalError tells the sender a relay attempt failed.
	EventSignalError
	// EventChatMessage delivers a relayed chat line.
	EventChatMessage
	// EventPeerStatus forwards a peer-connection state report.
	EventPeerStatus
	// EventCheckVideo asks a client to verify its video element once
	// ICE reaches a connected state.
	EventCheckVideo
	// EventRestartVideo asks a client to restart a stream a peer
	// reported as black.
	EventRestartVideo
	// EventPing is the server-initiated liveness probe.
	EventPing
	// EventPong answers a client-initiated heartbeat.
	EventPong
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Sender  string // connection id the event originates from
	Name    string // display name of the originating connection
	Target  string // failed relay target (EventSignalError), or peer id
	Members []Member
	Signal  json.RawMessage
	Text    string
	Status  string
	Error   string
}
