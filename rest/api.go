package rest

import (
	"context"

	"revoltkit/models"
)

// SendMessageParams is the payload for posting a message to a channel.
type SendMessageParams struct {
	Content     string   `json:"content"`
	Nonce       string   `json:"nonce,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	Replies     []Reply  `json:"replies,omitempty"`
}

type Reply struct {
	ID      models.MessageID `json:"id"`
	Mention bool             `json:"mention"`
}

// API is the surface of the HTTP layer the client and the command framework
// consume. Implementations must be safe for concurrent use.
type API interface {
	// FetchUser retrieves a user by id.
	FetchUser(ctx context.Context, id models.UserID) (models.User, error)
	// FetchChannel retrieves a channel by id.
	FetchChannel(ctx context.Context, id models.ChannelID) (models.Channel, error)
	// FetchServer retrieves a server by id.
	FetchServer(ctx context.Context, id models.ServerID) (models.Server, error)
	// FetchMember retrieves a user's membership record in a server.
	FetchMember(ctx context.Context, server models.ServerID, user models.UserID) (models.Member, error)
	// SendMessage posts a message to a channel and returns the created message.
	SendMessage(ctx context.Context, channel models.ChannelID, params SendMessageParams) (models.Message, error)
}
