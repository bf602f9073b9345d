// Package cache keeps a best-effort in-memory mirror of entities observed on
// the wire. It is never authoritative: entries are overwritten when a fresh
// copy arrives, removed on explicit delete events, and never expire.
package cache

import (
	"sync"

	"revoltkit/models"
)

// Options configures a Cache.
type Options struct {
	// MaxMessages bounds the number of messages kept per channel.
	// 0 disables message caching entirely.
	MaxMessages int
}

// Cache holds one table per entity kind. Each table has its own lock, so
// writes to different tables proceed in parallel; no operation ever spans
// two tables.
type Cache struct {
	opts Options

	usersMu sync.RWMutex
	users   map[models.UserID]models.User

	serversMu sync.RWMutex
	servers   map[models.ServerID]models.Server

	rolesMu sync.RWMutex
	roles   map[models.RoleID]models.Role

	membersMu sync.RWMutex
	members   map[models.MemberCompositeID]models.Member

	channelsMu sync.RWMutex
	channels   map[models.ChannelID]models.Channel

	messagesMu sync.RWMutex
	messages   map[models.ChannelID]*messageTable
}

// messageTable keeps per-channel messages plus their insertion order for
// FIFO eviction.
type messageTable struct {
	byID  map[models.MessageID]models.Message
	order []models.MessageID
}

func New(opts Options) *Cache {
	return &Cache{
		opts:     opts,
		users:    make(map[models.UserID]models.User),
		servers:  make(map[models.ServerID]models.Server),
		roles:    make(map[models.RoleID]models.Role),
		members:  make(map[models.MemberCompositeID]models.Member),
		channels: make(map[models.ChannelID]models.Channel),
		messages: make(map[models.ChannelID]*messageTable),
	}
}

func (c *Cache) User(id models.UserID) (models.User, bool) {
	c.usersMu.RLock()
	defer c.usersMu.RUnlock()

	u, ok := c.users[id]
	return u, ok
}

func (c *Cache) PutUser(u models.User) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	c.users[u.ID] = u
}

// PatchUser applies a partial update to a cached user. Patching an entity
// that is not cached is a no-op.
func (c *Cache) PatchUser(id models.UserID, p models.PartialUser, clear []models.ClearField) {
	c.usersMu.Lock()
	defer c.usersMu.Unlock()

	u, ok := c.users[id]
	if !ok {
		return
	}
	u.Apply(p, clear)
	c.users[id] = u
}

func (c *Cache) Server(id models.ServerID) (models.Server, bool) {
	c.serversMu.RLock()
	defer c.serversMu.RUnlock()

	s, ok := c.servers[id]
	return s, ok
}

func (c *Cache) PutServer(s models.Server) {
	c.serversMu.Lock()
	defer c.serversMu.Unlock()

	c.servers[s.ID] = s
}

func (c *Cache) PatchServer(id models.ServerID, p models.PartialServer, clear []models.ClearField) {
	c.serversMu.Lock()
	defer c.serversMu.Unlock()

	s, ok := c.servers[id]
	if !ok {
		return
	}
	s.Apply(p, clear)
	c.servers[id] = s
}

func (c *Cache) DeleteServer(id models.ServerID) {
	c.serversMu.Lock()
	defer c.serversMu.Unlock()

	delete(c.servers, id)
}

func (c *Cache) Role(id models.RoleID) (models.Role, bool) {
	c.rolesMu.RLock()
	defer c.rolesMu.RUnlock()

	r, ok := c.roles[id]
	return r, ok
}

func (c *Cache) PutRole(id models.RoleID, r models.Role) {
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()

	c.roles[id] = r
}

func (c *Cache) PatchRole(id models.RoleID, p models.PartialRole, clear []models.ClearField) {
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()

	r, ok := c.roles[id]
	if !ok {
		return
	}
	r.Apply(p, clear)
	c.roles[id] = r
}

func (c *Cache) DeleteRole(id models.RoleID) {
	c.rolesMu.Lock()
	defer c.rolesMu.Unlock()

	delete(c.roles, id)
}

func (c *Cache) Member(id models.MemberCompositeID) (models.Member, bool) {
	c.membersMu.RLock()
	defer c.membersMu.RUnlock()

	m, ok := c.members[id]
	return m, ok
}

func (c *Cache) PutMember(m models.Member) {
	c.membersMu.Lock()
	defer c.membersMu.Unlock()

	c.members[m.ID] = m
}

func (c *Cache) PatchMember(id models.MemberCompositeID, p models.PartialMember, clear []models.ClearField) {
	c.membersMu.Lock()
	defer c.membersMu.Unlock()

	m, ok := c.members[id]
	if !ok {
		return
	}
	m.Apply(p, clear)
	c.members[id] = m
}

func (c *Cache) DeleteMember(id models.MemberCompositeID) {
	c.membersMu.Lock()
	defer c.membersMu.Unlock()

	delete(c.members, id)
}

func (c *Cache) Channel(id models.ChannelID) (models.Channel, bool) {
	c.channelsMu.RLock()
	defer c.channelsMu.RUnlock()

	ch, ok := c.channels[id]
	return ch, ok
}

func (c *Cache) PutChannel(ch models.Channel) {
	c.channelsMu.Lock()
	defer c.channelsMu.Unlock()

	c.channels[ch.ID] = ch
}

func (c *Cache) PatchChannel(id models.ChannelID, p models.PartialChannel, clear []models.ClearField) {
	c.channelsMu.Lock()
	defer c.channelsMu.Unlock()

	ch, ok := c.channels[id]
	if !ok {
		return
	}
	ch.Apply(p, clear)
	c.channels[id] = ch
}

// DeleteChannel removes the channel and any messages cached for it.
func (c *Cache) DeleteChannel(id models.ChannelID) {
	c.channelsMu.Lock()
	delete(c.channels, id)
	c.channelsMu.Unlock()

	c.messagesMu.Lock()
	delete(c.messages, id)
	c.messagesMu.Unlock()
}

func (c *Cache) Message(channel models.ChannelID, id models.MessageID) (models.Message, bool) {
	c.messagesMu.RLock()
	defer c.messagesMu.RUnlock()

	t, ok := c.messages[channel]
	if !ok {
		return models.Message{}, false
	}
	m, ok := t.byID[id]
	return m, ok
}

// MessageCount returns how many messages are cached for a channel.
func (c *Cache) MessageCount(channel models.ChannelID) int {
	c.messagesMu.RLock()
	defer c.messagesMu.RUnlock()

	t, ok := c.messages[channel]
	if !ok {
		return 0
	}
	return len(t.byID)
}

// PutMessage inserts a message, evicting the oldest-inserted message once
// the per-channel capacity is exceeded.
func (c *Cache) PutMessage(m models.Message) {
	if c.opts.MaxMessages <= 0 {
		return
	}

	c.messagesMu.Lock()
	defer c.messagesMu.Unlock()

	t, ok := c.messages[m.Channel]
	if !ok {
		t = &messageTable{byID: make(map[models.MessageID]models.Message)}
		c.messages[m.Channel] = t
	}

	if _, exists := t.byID[m.ID]; !exists {
		t.order = append(t.order, m.ID)
	}
	t.byID[m.ID] = m

	for len(t.byID) > c.opts.MaxMessages {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.byID, oldest)
	}
}

func (c *Cache) PatchMessage(channel models.ChannelID, id models.MessageID, p models.PartialMessage) {
	c.messagesMu.Lock()
	defer c.messagesMu.Unlock()

	t, ok := c.messages[channel]
	if !ok {
		return
	}
	m, ok := t.byID[id]
	if !ok {
		return
	}
	m.Apply(p, nil)
	t.byID[id] = m
}

func (c *Cache) DeleteMessage(channel models.ChannelID, id models.MessageID) {
	c.messagesMu.Lock()
	defer c.messagesMu.Unlock()

	t, ok := c.messages[channel]
	if !ok {
		return
	}
	if _, exists := t.byID[id]; !exists {
		return
	}
	delete(t.byID, id)
	for i, mid := range t.order {
		if mid == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}
