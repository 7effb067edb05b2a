package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom places the client into a room, implicitly
	// leaving its previous one.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom removes the client from a room.
	CommandLeaveRoom
	// CommandSendSignal relays an offer/ICE payload to a target peer.
	CommandSendSignal
	// CommandReturnSignal relays an answer payload to a target peer.
	CommandReturnSignal
	// CommandChatMessage relays a chat line to the other room members.
	CommandChatMessage
	// CommandConnectionStatus records and forwards a peer-connection
	// state report.
	CommandConnectionStatus
	// CommandICEStateChange reports an ICE connection state change.
	CommandICEStateChange
	// CommandVideoStreamStatus reports the health of a peer's video
	// stream.
	CommandVideoStreamStatus
	// CommandHeartbeat is a client-initiated ping; the hub answers
	// with a pong event.
	CommandHeartbeat
	// CommandHeartbeatAck is the client's reply to a server ping.
	CommandHeartbeatAck
)

// Command represents an action requested by a client. The signaling
// payload is never inspected; it travels as raw JSON end to end.
type Command struct {
	Kind   CommandKind
	Room   string
	Name   string
	Target string
	Signal json.RawMessage
	Text   string
	Status string
}
