// Package client decodes inbound protocol events, mirrors them into the
// cache, and fans them out to application handlers and the command
// framework.
package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"revoltkit/framework"
	"revoltkit/models"
)

// Handlers holds one optional callback per event type. Nil fields are
// no-ops; set only the ones you need. Callbacks run on a goroutine per
// event and always observe cache state at least as fresh as their event.
type Handlers struct {
	Error              func(ctx context.Context, fc *framework.Context, ev *models.ErrorEvent)
	Authenticated      func(ctx context.Context, fc *framework.Context, ev *models.AuthenticatedEvent)
	Pong               func(ctx context.Context, fc *framework.Context, ev *models.PongEvent)
	Ready              func(ctx context.Context, fc *framework.Context, ev *models.ReadyEvent)
	Message            func(ctx context.Context, fc *framework.Context, ev *models.MessageEvent)
	MessageUpdate      func(ctx context.Context, fc *framework.Context, ev *models.MessageUpdateEvent)
	MessageDelete      func(ctx context.Context, fc *framework.Context, ev *models.MessageDeleteEvent)
	ChannelCreate      func(ctx context.Context, fc *framework.Context, ev *models.ChannelCreateEvent)
	ChannelUpdate      func(ctx context.Context, fc *framework.Context, ev *models.ChannelUpdateEvent)
	ChannelDelete      func(ctx context.Context, fc *framework.Context, ev *models.ChannelDeleteEvent)
	ChannelGroupJoin   func(ctx context.Context, fc *framework.Context, ev *models.ChannelGroupJoinEvent)
	ChannelGroupLeave  func(ctx context.Context, fc *framework.Context, ev *models.ChannelGroupLeaveEvent)
	ChannelStartTyping func(ctx context.Context, fc *framework.Context, ev *models.ChannelStartTypingEvent)
	ChannelStopTyping  func(ctx context.Context, fc *framework.Context, ev *models.ChannelStopTypingEvent)
	ServerUpdate       func(ctx context.Context, fc *framework.Context, ev *models.ServerUpdateEvent)
	ServerDelete       func(ctx context.Context, fc *framework.Context, ev *models.ServerDeleteEvent)
	ServerMemberJoin   func(ctx context.Context, fc *framework.Context, ev *models.ServerMemberJoinEvent)
	ServerMemberLeave  func(ctx context.Context, fc *framework.Context, ev *models.ServerMemberLeaveEvent)
	ServerMemberUpdate func(ctx context.Context, fc *framework.Context, ev *models.ServerMemberUpdateEvent)
	ServerRoleUpdate   func(ctx context.Context, fc *framework.Context, ev *models.ServerRoleUpdateEvent)
	ServerRoleDelete   func(ctx context.Context, fc *framework.Context, ev *models.ServerRoleDeleteEvent)
	UserUpdate         func(ctx context.Context, fc *framework.Context, ev *models.UserUpdateEvent)
	UserRelationship   func(ctx context.Context, fc *framework.Context, ev *models.UserRelationshipEvent)
}

// Client is the event dispatch and cache-sync wrapper. Dispatch is called
// with one decoded event at a time, in arrival order: cache mutations
// happen synchronously before the handler fan-out, so a slow handler never
// blocks decoding of the next event and never observes stale cache state
// for its own event.
type Client struct {
	fc       *framework.Context
	handlers Handlers
	fw       *framework.Framework

	closed atomic.Bool
	wg     sync.WaitGroup
}

func New(fc *framework.Context, handlers Handlers) *Client {
	return &Client{fc: fc, handlers: handlers}
}

// WithFramework attaches a command framework; every message event is also
// offered to it for command dispatch.
func (c *Client) WithFramework(fw *framework.Framework) *Client {
	c.fw = fw
	return c
}

// Close stops dispatching new events. Handlers already spawned run to
// completion independently; there is no cancellation signal into them.
func (c *Client) Close() {
	c.closed.Store(true)
}

// Wait blocks until all spawned handler goroutines have returned.
func (c *Client) Wait() {
	c.wg.Wait()
}

// Dispatch applies an event's cache effect and hands it to handlers.
func (c *Client) Dispatch(ctx context.Context, ev models.ServerEvent) {
	if c.closed.Load() {
		return
	}

	c.sync(ev)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.invoke(ctx, ev)
	}()
}

// sync applies the cache-relevant effect of an event. Events for entities
// the cache never saw are dropped silently; the cache is best-effort.
func (c *Client) sync(ev models.ServerEvent) {
	cc := c.fc.Cache
	if cc == nil {
		return
	}

	switch e := ev.(type) {
	case *models.ReadyEvent:
		for _, u := range e.Users {
			cc.PutUser(u)
		}
		for _, s := range e.Servers {
			cc.PutServer(s)
			for id, r := range s.Roles {
				cc.PutRole(id, r)
			}
		}
		for _, ch := range e.Channels {
			cc.PutChannel(ch)
		}
		for _, m := range e.Members {
			cc.PutMember(m)
		}
	case *models.MessageEvent:
		cc.PutMessage(e.Message)
	case *models.MessageUpdateEvent:
		cc.PatchMessage(e.Channel, e.ID, e.Data)
	case *models.MessageDeleteEvent:
		cc.DeleteMessage(e.Channel, e.ID)
	case *models.ChannelCreateEvent:
		cc.PutChannel(e.Channel)
	case *models.ChannelUpdateEvent:
		cc.PatchChannel(e.ID, e.Data, e.Clear)
	case *models.ChannelDeleteEvent:
		cc.DeleteChannel(e.ID)
	case *models.ServerUpdateEvent:
		cc.PatchServer(e.ID, e.Data, e.Clear)
	case *models.ServerDeleteEvent:
		cc.DeleteServer(e.ID)
	case *models.ServerMemberUpdateEvent:
		cc.PatchMember(e.ID, e.Data, e.Clear)
	case *models.ServerMemberLeaveEvent:
		cc.DeleteMember(models.MemberCompositeID{Server: e.ID, User: e.User})
	case *models.ServerRoleUpdateEvent:
		cc.PatchRole(e.RoleID, e.Data, e.Clear)
	case *models.UserUpdateEvent:
		cc.PatchUser(e.ID, e.Data, e.Clear)
	}
}

func (c *Client) invoke(ctx context.Context, ev models.ServerEvent) {
	switch e := ev.(type) {
	case *models.ErrorEvent:
		log.Warn().Str("error", e.Error).Msg("server reported error")
		if c.handlers.Error != nil {
			c.handlers.Error(ctx, c.fc, e)
		}
	case *models.AuthenticatedEvent:
		if c.handlers.Authenticated != nil {
			c.handlers.Authenticated(ctx, c.fc, e)
		}
	case *models.PongEvent:
		if c.handlers.Pong != nil {
			c.handlers.Pong(ctx, c.fc, e)
		}
	case *models.ReadyEvent:
		if c.handlers.Ready != nil {
			c.handlers.Ready(ctx, c.fc, e)
		}
	case *models.MessageEvent:
		if c.handlers.Message != nil {
			c.handlers.Message(ctx, c.fc, e)
		}
		if c.fw != nil {
			c.fw.HandleMessage(ctx, c.fc, &e.Message)
		}
	case *models.MessageUpdateEvent:
		if c.handlers.MessageUpdate != nil {
			c.handlers.MessageUpdate(ctx, c.fc, e)
		}
	case *models.MessageDeleteEvent:
		if c.handlers.MessageDelete != nil {
			c.handlers.MessageDelete(ctx, c.fc, e)
		}
	case *models.ChannelCreateEvent:
		if c.handlers.ChannelCreate != nil {
			c.handlers.ChannelCreate(ctx, c.fc, e)
		}
	case *models.ChannelUpdateEvent:
		if c.handlers.ChannelUpdate != nil {
			c.handlers.ChannelUpdate(ctx, c.fc, e)
		}
	case *models.ChannelDeleteEvent:
		if c.handlers.ChannelDelete != nil {
			c.handlers.ChannelDelete(ctx, c.fc, e)
		}
	case *models.ChannelGroupJoinEvent:
		if c.handlers.ChannelGroupJoin != nil {
			c.handlers.ChannelGroupJoin(ctx, c.fc, e)
		}
	case *models.ChannelGroupLeaveEvent:
		if c.handlers.ChannelGroupLeave != nil {
			c.handlers.ChannelGroupLeave(ctx, c.fc, e)
		}
	case *models.ChannelStartTypingEvent:
		if c.handlers.ChannelStartTyping != nil {
			c.handlers.ChannelStartTyping(ctx, c.fc, e)
		}
	case *models.ChannelStopTypingEvent:
		if c.handlers.ChannelStopTyping != nil {
			c.handlers.ChannelStopTyping(ctx, c.fc, e)
		}
	case *models.ServerUpdateEvent:
		if c.handlers.ServerUpdate != nil {
			c.handlers.ServerUpdate(ctx, c.fc, e)
		}
	case *models.ServerDeleteEvent:
		if c.handlers.ServerDelete != nil {
			c.handlers.ServerDelete(ctx, c.fc, e)
		}
	case *models.ServerMemberJoinEvent:
		if c.handlers.ServerMemberJoin != nil {
			c.handlers.ServerMemberJoin(ctx, c.fc, e)
		}
	case *models.ServerMemberLeaveEvent:
		if c.handlers.ServerMemberLeave != nil {
			c.handlers.ServerMemberLeave(ctx, c.fc, e)
		}
	case *models.ServerMemberUpdateEvent:
		if c.handlers.ServerMemberUpdate != nil {
			c.handlers.ServerMemberUpdate(ctx, c.fc, e)
		}
	case *models.ServerRoleUpdateEvent:
		if c.handlers.ServerRoleUpdate != nil {
			c.handlers.ServerRoleUpdate(ctx, c.fc, e)
		}
	case *models.ServerRoleDeleteEvent:
		if c.handlers.ServerRoleDelete != nil {
			c.handlers.ServerRoleDelete(ctx, c.fc, e)
		}
	case *models.UserUpdateEvent:
		if c.handlers.UserUpdate != nil {
			c.handlers.UserUpdate(ctx, c.fc, e)
		}
	case *models.UserRelationshipEvent:
		if c.handlers.UserRelationship != nil {
			c.handlers.UserRelationship(ctx, c.fc, e)
		}
	}
}
