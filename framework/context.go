package framework

import (
	"context"

	"revoltkit/cache"
	"revoltkit/models"
	"revoltkit/rest"
)

// Context is the per-connection state threaded through every handler and
// parameter extraction: the REST API, an optional cache, and whatever
// shared state the application wants its handlers to see.
type Context struct {
	API   rest.API
	Cache *cache.Cache

	// Data is application-owned. Build a struct of your shared fields at
	// startup and read it back with a type assertion in handlers.
	Data any
}

// User resolves a user through the cache, falling back to the network and
// backfilling the cache on a miss.
func (c *Context) User(ctx context.Context, id models.UserID) (models.User, error) {
	if c.Cache != nil {
		if u, ok := c.Cache.User(id); ok {
			return u, nil
		}
	}

	u, err := c.API.FetchUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if c.Cache != nil {
		c.Cache.PutUser(u)
	}
	return u, nil
}

// Channel resolves a channel, cache first.
func (c *Context) Channel(ctx context.Context, id models.ChannelID) (models.Channel, error) {
	if c.Cache != nil {
		if ch, ok := c.Cache.Channel(id); ok {
			return ch, nil
		}
	}

	ch, err := c.API.FetchChannel(ctx, id)
	if err != nil {
		return models.Channel{}, err
	}

	if c.Cache != nil {
		c.Cache.PutChannel(ch)
	}
	return ch, nil
}

// Server resolves a server, cache first.
func (c *Context) Server(ctx context.Context, id models.ServerID) (models.Server, error) {
	if c.Cache != nil {
		if s, ok := c.Cache.Server(id); ok {
			return s, nil
		}
	}

	s, err := c.API.FetchServer(ctx, id)
	if err != nil {
		return models.Server{}, err
	}

	if c.Cache != nil {
		c.Cache.PutServer(s)
	}
	return s, nil
}

// Member resolves a membership record, cache first.
func (c *Context) Member(ctx context.Context, server models.ServerID, user models.UserID) (models.Member, error) {
	id := models.MemberCompositeID{Server: server, User: user}
	if c.Cache != nil {
		if m, ok := c.Cache.Member(id); ok {
			return m, nil
		}
	}

	m, err := c.API.FetchMember(ctx, server, user)
	if err != nil {
		return models.Member{}, err
	}

	if c.Cache != nil {
		c.Cache.PutMember(m)
	}
	return m, nil
}

// SendText posts a plain text message to a channel.
func (c *Context) SendText(ctx context.Context, channel models.ChannelID, content string) (models.Message, error) {
	return c.API.SendMessage(ctx, channel, rest.SendMessageParams{Content: content})
}

// Msg is the immutable per-dispatch snapshot handed to every parameter
// extraction: the inbound message plus the command's remaining argument
// text.
type Msg struct {
	Message *models.Message
	Args    string
}
