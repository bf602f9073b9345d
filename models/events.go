package models

import (
	"encoding/json"
	"fmt"
)

// ServerEvent is one decoded server-to-client event. Concrete types are the
// *Event structs below; decode raw frames with ParseEvent.
type ServerEvent interface {
	EventType() string
}

type ErrorEvent struct {
	Error string `json:"error"`
}

type AuthenticatedEvent struct{}

type PongEvent struct {
	Data int64 `json:"data"`
}

// ReadyEvent is the initial state snapshot sent after authentication.
type ReadyEvent struct {
	Users    []User    `json:"users"`
	Servers  []Server  `json:"servers"`
	Channels []Channel `json:"channels"`
	Members  []Member  `json:"members"`
}

type MessageEvent struct {
	Message
}

type MessageUpdateEvent struct {
	ID      MessageID      `json:"id"`
	Channel ChannelID      `json:"channel"`
	Data    PartialMessage `json:"data"`
}

type MessageDeleteEvent struct {
	ID      MessageID `json:"id"`
	Channel ChannelID `json:"channel"`
}

type ChannelCreateEvent struct {
	Channel
}

type ChannelUpdateEvent struct {
	ID    ChannelID      `json:"id"`
	Data  PartialChannel `json:"data"`
	Clear []ClearField   `json:"clear,omitempty"`
}

type ChannelDeleteEvent struct {
	ID ChannelID `json:"id"`
}

type ChannelGroupJoinEvent struct {
	ID   ChannelID `json:"id"`
	User UserID    `json:"user"`
}

type ChannelGroupLeaveEvent struct {
	ID   ChannelID `json:"id"`
	User UserID    `json:"user"`
}

type ChannelStartTypingEvent struct {
	ID   ChannelID `json:"id"`
	User UserID    `json:"user"`
}

type ChannelStopTypingEvent struct {
	ID   ChannelID `json:"id"`
	User UserID    `json:"user"`
}

type ServerUpdateEvent struct {
	ID    ServerID      `json:"id"`
	Data  PartialServer `json:"data"`
	Clear []ClearField  `json:"clear,omitempty"`
}

type ServerDeleteEvent struct {
	ID ServerID `json:"id"`
}

type ServerMemberJoinEvent struct {
	ID   ServerID `json:"id"`
	User UserID   `json:"user"`
}

type ServerMemberLeaveEvent struct {
	ID   ServerID `json:"id"`
	User UserID   `json:"user"`
}

type ServerMemberUpdateEvent struct {
	ID    MemberCompositeID `json:"id"`
	Data  PartialMember     `json:"data"`
	Clear []ClearField      `json:"clear,omitempty"`
}

type ServerRoleUpdateEvent struct {
	ID     ServerID     `json:"id"`
	RoleID RoleID       `json:"role_id"`
	Data   PartialRole  `json:"data"`
	Clear  []ClearField `json:"clear,omitempty"`
}

type ServerRoleDeleteEvent struct {
	ID     ServerID `json:"id"`
	RoleID RoleID   `json:"role_id"`
}

type UserUpdateEvent struct {
	ID    UserID       `json:"id"`
	Data  PartialUser  `json:"data"`
	Clear []ClearField `json:"clear,omitempty"`
}

type UserRelationshipEvent struct {
	ID     UserID `json:"id"`
	User   UserID `json:"user"`
	Status string `json:"status"`
}

func (*ErrorEvent) EventType() string              { return "Error" }
func (*AuthenticatedEvent) EventType() string      { return "Authenticated" }
func (*PongEvent) EventType() string               { return "Pong" }
func (*ReadyEvent) EventType() string              { return "Ready" }
func (*MessageEvent) EventType() string            { return "Message" }
func (*MessageUpdateEvent) EventType() string      { return "MessageUpdate" }
func (*MessageDeleteEvent) EventType() string      { return "MessageDelete" }
func (*ChannelCreateEvent) EventType() string      { return "ChannelCreate" }
func (*ChannelUpdateEvent) EventType() string      { return "ChannelUpdate" }
func (*ChannelDeleteEvent) EventType() string      { return "ChannelDelete" }
func (*ChannelGroupJoinEvent) EventType() string   { return "ChannelGroupJoin" }
func (*ChannelGroupLeaveEvent) EventType() string  { return "ChannelGroupLeave" }
func (*ChannelStartTypingEvent) EventType() string { return "ChannelStartTyping" }
func (*ChannelStopTypingEvent) EventType() string  { return "ChannelStopTyping" }
func (*ServerUpdateEvent) EventType() string       { return "ServerUpdate" }
func (*ServerDeleteEvent) EventType() string       { return "ServerDelete" }
func (*ServerMemberJoinEvent) EventType() string   { return "ServerMemberJoin" }
func (*ServerMemberLeaveEvent) EventType() string  { return "ServerMemberLeave" }
func (*ServerMemberUpdateEvent) EventType() string { return "ServerMemberUpdate" }
func (*ServerRoleUpdateEvent) EventType() string   { return "ServerRoleUpdate" }
func (*ServerRoleDeleteEvent) EventType() string   { return "ServerRoleDelete" }
func (*UserUpdateEvent) EventType() string         { return "UserUpdate" }
func (*UserRelationshipEvent) EventType() string   { return "UserRelationship" }

// ParseEvent decodes one raw event frame by its "type" tag.
func ParseEvent(data []byte) (ServerEvent, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("error decoding event envelope: %w", err)
	}

	var ev ServerEvent
	switch envelope.Type {
	case "Error":
		ev = &ErrorEvent{}
	case "Authenticated":
		ev = &AuthenticatedEvent{}
	case "Pong":
		ev = &PongEvent{}
	case "Ready":
		ev = &ReadyEvent{}
	case "Message":
		ev = &MessageEvent{}
	case "MessageUpdate":
		ev = &MessageUpdateEvent{}
	case "MessageDelete":
		ev = &MessageDeleteEvent{}
	case "ChannelCreate":
		ev = &ChannelCreateEvent{}
	case "ChannelUpdate":
		ev = &ChannelUpdateEvent{}
	case "ChannelDelete":
		ev = &ChannelDeleteEvent{}
	case "ChannelGroupJoin":
		ev = &ChannelGroupJoinEvent{}
	case "ChannelGroupLeave":
		ev = &ChannelGroupLeaveEvent{}
	case "ChannelStartTyping":
		ev = &ChannelStartTypingEvent{}
	case "ChannelStopTyping":
		ev = &ChannelStopTypingEvent{}
	case "ServerUpdate":
		ev = &ServerUpdateEvent{}
	case "ServerDelete":
		ev = &ServerDeleteEvent{}
	case "ServerMemberJoin":
		ev = &ServerMemberJoinEvent{}
	case "ServerMemberLeave":
		ev = &ServerMemberLeaveEvent{}
	case "ServerMemberUpdate":
		ev = &ServerMemberUpdateEvent{}
	case "ServerRoleUpdate":
		ev = &ServerRoleUpdateEvent{}
	case "ServerRoleDelete":
		ev = &ServerRoleDeleteEvent{}
	case "UserUpdate":
		ev = &UserUpdateEvent{}
	case "UserRelationship":
		ev = &UserRelationshipEvent{}
	default:
		return nil, fmt.Errorf("unknown event type %q", envelope.Type)
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("error decoding %s event: %w", envelope.Type, err)
	}

	return ev, nil
}

// AuthenticateEvent is the client-to-server login frame.
type AuthenticateEvent struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// PingEvent is the client-to-server keep-alive frame.
type PingEvent struct {
	Type string `json:"type"`
	Data int64  `json:"data"`
}
