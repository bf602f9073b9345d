// Package params provides the built-in command parameter types for the
// framework's extraction pipeline.
package params

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"revoltkit/args"
	"revoltkit/framework"
	"revoltkit/models"
)

// ErrMentionDelimiter is returned for a mention with mismatched open and
// close delimiters; it is distinct from an invalid id.
var ErrMentionDelimiter = errors.New("mismatched mention delimiters")

// Text is the untrimmed passthrough of one raw token. It never fails on a
// present token.
type Text string

func (Text) FromToken(_ context.Context, _ *framework.Context, _ *framework.Msg,
	tok args.Token) (Text, error) {
	return Text(tok.Text), nil
}

func (Text) ArgOptions() framework.ArgOptions {
	return framework.ArgOptions{NoTrim: true}
}

// parseMention accepts either a raw 26 character id or a mention wrapped in
// open...">", e.g. "<@ID>".
func parseMention(s, open string) (string, error) {
	if strings.HasPrefix(s, open) {
		if !strings.HasSuffix(s, ">") || len(s) < len(open)+1 {
			return "", fmt.Errorf("%w: %q", ErrMentionDelimiter, s)
		}
		s = s[len(open) : len(s)-1]
	} else if strings.HasSuffix(s, ">") {
		return "", fmt.Errorf("%w: %q", ErrMentionDelimiter, s)
	}

	if err := models.CheckID(s); err != nil {
		return "", err
	}

	return s, nil
}

// UserID parses a raw id or a "<@ID>" mention.
type UserID models.UserID

func (UserID) FromToken(_ context.Context, _ *framework.Context, _ *framework.Msg,
	tok args.Token) (UserID, error) {
	id, err := parseMention(tok.Text, "<@")
	if err != nil {
		return "", err
	}
	return UserID(id), nil
}

// ChannelID parses a raw id or a "<#ID>" mention.
type ChannelID models.ChannelID

func (ChannelID) FromToken(_ context.Context, _ *framework.Context, _ *framework.Msg,
	tok args.Token) (ChannelID, error) {
	id, err := parseMention(tok.Text, "<#")
	if err != nil {
		return "", err
	}
	return ChannelID(id), nil
}

// User parses a user id or mention and resolves the full entity, cache
// first with a network fallback.
type User models.User

func (User) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	tok args.Token) (User, error) {
	id, err := UserID("").FromToken(ctx, fc, m, tok)
	if err != nil {
		return User{}, err
	}

	u, err := fc.User(ctx, models.UserID(id))
	if err != nil {
		return User{}, err
	}
	return User(u), nil
}

// Channel parses a channel id or mention and resolves the full entity.
type Channel models.Channel

func (Channel) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	tok args.Token) (Channel, error) {
	id, err := ChannelID("").FromToken(ctx, fc, m, tok)
	if err != nil {
		return Channel{}, err
	}

	ch, err := fc.Channel(ctx, models.ChannelID(id))
	if err != nil {
		return Channel{}, err
	}
	return Channel(ch), nil
}

// RawArgs passes the entire remaining argument string through without
// lexing. It consumes no token and always succeeds.
type RawArgs string

func (RawArgs) FromToken(_ context.Context, _ *framework.Context, m *framework.Msg,
	_ args.Token) (RawArgs, error) {
	return RawArgs(m.Args), nil
}

func (RawArgs) ArgOptions() framework.ArgOptions {
	return framework.ArgOptions{NoToken: true}
}

func (RawArgs) FallbackArg(_ context.Context, _ *framework.Context, m *framework.Msg) (RawArgs, error) {
	return RawArgs(m.Args), nil
}

// Author resolves the invoking user's full entity. It consumes no token.
type Author models.User

func (Author) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	_ args.Token) (Author, error) {
	u, err := fc.User(ctx, m.Message.Author)
	if err != nil {
		return Author{}, err
	}
	return Author(u), nil
}

func (Author) ArgOptions() framework.ArgOptions {
	return framework.ArgOptions{NoToken: true}
}

// Member resolves the invoking user's membership record in the server the
// message was sent in. It consumes no token and fails with ErrNotInServer
// for direct or group messages.
type Member models.Member

func (Member) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	_ args.Token) (Member, error) {
	ch, err := fc.Channel(ctx, m.Message.Channel)
	if err != nil {
		return Member{}, err
	}
	if !ch.InServer() {
		return Member{}, framework.ErrNotInServer
	}

	mem, err := fc.Member(ctx, ch.Server, m.Message.Author)
	if err != nil {
		return Member{}, err
	}
	return Member(mem), nil
}

func (Member) ArgOptions() framework.ArgOptions {
	return framework.ArgOptions{NoToken: true}
}
