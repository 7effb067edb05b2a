package http

import (
	"encoding/json"
	"fmt"

	"github.com/meetspace/signaling-server/internal/core"
	"github.com/meetspace/signaling-server/internal/proto"
)

// inboundToCommand maps a wire envelope to a core command. A non-nil
// error means the event is malformed and must be dropped.
func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, err
		}
		if core.NormalizeRoomID(join.RoomID) == "" {
			return nil, fmt.Errorf("join-room: roomId is required")
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.RoomID,
			Name: join.Username,
		}, nil
	case proto.InboundTypeLeave:
		var leave proto.LeaveData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, err
		}
		if core.NormalizeRoomID(leave.RoomID) == "" {
			return nil, fmt.Errorf("leave-room: roomId is required")
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: leave.RoomID,
		}, nil
	case proto.InboundTypeSignal, proto.InboundTypeReturn:
		var sig proto.SignalData
		if err := json.Unmarshal(inbound.Data, &sig); err != nil {
			return nil, err
		}
		if sig.TargetID == "" {
			return nil, fmt.Errorf("%s: targetId is required", inbound.Type)
		}
		kind := core.CommandSendSignal
		if inbound.Type == proto.InboundTypeReturn {
			kind = core.CommandReturnSignal
		}
		return &core.Command{
			Kind:   kind,
			Target: sig.TargetID,
			Signal: sig.Signal,
		}, nil
	case proto.InboundTypeChat:
		var chat proto.ChatData
		if err := json.Unmarshal(inbound.Data, &chat); err != nil {
			return nil, err
		}
		if core.NormalizeRoomID(chat.RoomID) == "" {
			return nil, fmt.Errorf("chat-message: roomId is required")
		}
		return &core.Command{
			Kind: core.CommandChatMessage,
			Room: chat.RoomID,
			Text: chat.Message,
		}, nil
	case proto.InboundTypeConnStatus:
		var status proto.PeerStatusData
		if err := json.Unmarshal(inbound.Data, &status); err != nil {
			return nil, err
		}
		if status.PeerID == "" {
			return nil, fmt.Errorf("connection-status: peerId is required")
		}
		return &core.Command{
			Kind:   core.CommandConnectionStatus,
			Target: status.PeerID,
			Status: status.Status,
		}, nil
	case proto.InboundTypeICEState:
		var ice proto.ICEStateData
		if err := json.Unmarshal(inbound.Data, &ice); err != nil {
			return nil, err
		}
		if ice.PeerID == "" {
			return nil, fmt.Errorf("ice-state-change: peerId is required")
		}
		return &core.Command{
			Kind:   core.CommandICEStateChange,
			Target: ice.PeerID,
			Status: ice.State,
		}, nil
	case proto.InboundTypeVideoStatus:
		var status proto.PeerStatusData
		if err := json.Unmarshal(inbound.Data, &status); err != nil {
			return nil, err
		}
		if status.PeerID == "" {
			return nil, fmt.Errorf("video-stream-status: peerId is required")
		}
		return &core.Command{
			Kind:   core.CommandVideoStreamStatus,
			Target: status.PeerID,
			Status: status.Status,
		}, nil
	case proto.InboundTypePing:
		return &core.Command{Kind: core.CommandHeartbeat}, nil
	case proto.InboundTypePong:
		return &core.Command{Kind: core.CommandHeartbeatAck}, nil
	default:
		return nil, fmt.Errorf("unknown message type %q", inbound.Type)
	}
}

func memberInfos(members []core.Member) []proto.MemberInfo {
	out := make([]proto.MemberInfo, 0, len(members))
	for _, m := range members {
		out = append(out, proto.MemberInfo{ConnectionID: m.ID, DisplayName: m.Name})
	}
	return out
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventCurrentMembers:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventCurrentMembers,
			Data:  memberInfos(event.Members),
		}
	case core.EventMemberJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMemberJoined,
			Data:  proto.MemberInfo{ConnectionID: event.Sender, DisplayName: event.Name},
		}
	case core.EventMemberLeft:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMemberLeft,
			Data:  proto.MemberInfo{ConnectionID: event.Sender, DisplayName: event.Name},
		}
	case core.EventIncomingSignal:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventIncomingSignal,
			Data: proto.IncomingSignalData{
				Signal:      event.Signal,
				SenderID:    event.Sender,
				DisplayName: event.Name,
			},
		}
	case core.EventSignalAnswer:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventSignalAnswer,
			Data: proto.SignalAnswerData{
				Signal:   event.Signal,
				SenderID: event.Sender,
			},
		}
	case core.EventSignalError:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventSignalError,
			Data: proto.SignalErrorData{
				Error:    event.Error,
				TargetID: event.Target,
			},
		}
	case core.EventChatMessage:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventChatMessage,
			Data: proto.ChatMessageData{
				SenderID: event.Sender,
				Message:  event.Text,
			},
		}
	case core.EventPeerStatus:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPeerStatus,
			Data: proto.PeerStatusEventData{
				From:   event.Sender,
				Status: event.Status,
			},
		}
	case core.EventCheckVideo:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventCheckVideo,
			Data:  proto.CheckVideoData{PeerID: event.Target},
		}
	case core.EventRestartVideo:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRestartVideo,
			Data:  proto.RestartVideoData{RequestedBy: event.Sender},
		}
	case core.EventPing:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventPing}
	case core.EventPong:
		return proto.Outbound{Type: proto.OutboundTypeEvent, Event: proto.EventPong}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
