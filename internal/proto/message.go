package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Inbound message types.
const (
	InboundTypeJoin        = "join-room"
	InboundTypeLeave       = "leave-room"
	InboundTypeSignal      = "send-signal"
	InboundTypeReturn      = "returning-signal"
	InboundTypeChat        = "chat-message"
	InboundTypeConnStatus  = "connection-status"
	InboundTypeICEState    = "ice-state-change"
	InboundTypeVideoStatus = "video-stream-status"
	InboundTypePing        = "ping"
	InboundTypePong        = "pong"
)

// Outbound envelope type and event names.
const (
	OutboundTypeEvent = "event"

	EventCurrentMembers = "current-members"
	EventMemberJoined   = "member-joined"
	EventMemberLeft     = "member-left"
	EventIncomingSignal = "incoming-signal"
	EventSignalAnswer   = "signal-answer"
	EventSignalError    = "signal-error"
	EventChatMessage    = "chat-message"
	EventPeerStatus     = "peer-connection-status"
	EventCheckVideo     = "check-video-display"
	EventRestartVideo   = "restart-video-stream"
	EventPing           = "ping"
	EventPong           = "pong"
)

// JoinData requests membership in a room.
type JoinData struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// LeaveData requests departure from a room.
type LeaveData struct {
	RoomID string `json:"roomId"`
}

// SignalData carries an opaque WebRTC payload toward a target peer.
// The signal itself is never inspected by the server.
type SignalData struct {
	TargetID string          `json:"targetId"`
	Signal   json.RawMessage `json:"signal"`
	Username string          `json:"username,omitempty"`
}

// ChatData is a chat line addressed to a room.
type ChatData struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

// PeerStatusData reports the state of a peer connection or stream.
type PeerStatusData struct {
	PeerID string `json:"peerId"`
	Status string `json:"status"`
}

// ICEStateData reports an ICE connection state change toward a peer.
type ICEStateData struct {
	PeerID string `json:"peerId"`
	State  string `json:"state"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
}

// MemberInfo is one room member as seen on the wire.
type MemberInfo struct {
	ConnectionID string `json:"connectionId"`
	DisplayName  string `json:"displayName"`
}

// IncomingSignalData delivers a relayed offer/ICE payload.
type IncomingSignalData struct {
	Signal      json.RawMessage `json:"signal"`
	SenderID    string          `json:"senderId"`
	DisplayName string          `json:"displayName"`
}

// SignalAnswerData delivers a relayed answer payload.
type SignalAnswerData struct {
	Signal   json.RawMessage `json:"signal"`
	SenderID string          `json:"senderId"`
}

// SignalErrorData tells the sender a relay attempt failed.
type SignalErrorData struct {
	Error    string `json:"error"`
	TargetID string `json:"targetId"`
}

// ChatMessageData delivers a relayed chat line.
type ChatMessageData struct {
	SenderID string `json:"senderId"`
	Message  string `json:"message"`
}

// PeerStatusEventData forwards a peer-connection state report.
type PeerStatusEventData struct {
	From   string `json:"from"`
	Status string `json:"status"`
}

// CheckVideoData asks a client to verify video toward a peer.
type CheckVideoData struct {
	PeerID string `json:"peerId"`
}

// RestartVideoData asks a client to restart its outgoing stream.
type RestartVideoData struct {
	RequestedBy string `json:"requestedBy"`
}
