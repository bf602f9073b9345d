package params

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"revoltkit/args"
	"revoltkit/framework"
)

// Option makes a parameter optional: a token the inner type cannot parse
// is pushed back for the next parameter and yields an empty Option, and a
// missing token yields an empty Option without error. It never fails.
type Option[T framework.Param[T]] struct {
	Value T
	OK    bool
}

func (Option[T]) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	tok args.Token) (Option[T], error) {
	var zero T

	v, err := zero.FromToken(ctx, fc, m, tok)
	if err != nil {
		if errors.Is(err, framework.ErrPushBack) {
			return Option[T]{Value: v, OK: true}, framework.ErrPushBack
		}
		log.Trace().Err(err).Str("token", tok.Text).Msg("optional argument did not parse, pushing token back")
		return Option[T]{}, framework.ErrPushBack
	}

	return Option[T]{Value: v, OK: true}, nil
}

func (Option[T]) ArgOptions() framework.ArgOptions {
	var zero T
	return framework.OptionsOf(zero)
}

func (Option[T]) FallbackArg(_ context.Context, _ *framework.Context, _ *framework.Msg) (Option[T], error) {
	return Option[T]{}, nil
}

// Rest makes the inner parameter consume the whole remaining argument text
// instead of one token.
type Rest[T framework.Param[T]] struct {
	Value T
}

func (Rest[T]) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	tok args.Token) (Rest[T], error) {
	var zero T

	v, err := zero.FromToken(ctx, fc, m, tok)
	if err != nil {
		return Rest[T]{}, err
	}
	return Rest[T]{Value: v}, nil
}

func (Rest[T]) ArgOptions() framework.ArgOptions {
	var zero T
	opts := framework.OptionsOf(zero)
	opts.Rest = true
	return opts
}

// Unquote strips one layer of surrounding double quotes off the token
// before delegating to the inner type. Tokens without both quotes pass
// through unchanged.
type Unquote[T framework.Param[T]] struct {
	Value T
}

func (Unquote[T]) FromToken(ctx context.Context, fc *framework.Context, m *framework.Msg,
	tok args.Token) (Unquote[T], error) {
	var zero T

	if len(tok.Text) >= 2 && strings.HasPrefix(tok.Text, `"`) && strings.HasSuffix(tok.Text, `"`) {
		tok.Text = tok.Text[1 : len(tok.Text)-1]
	}

	v, err := zero.FromToken(ctx, fc, m, tok)
	if err != nil {
		return Unquote[T]{}, err
	}
	return Unquote[T]{Value: v}, nil
}

func (Unquote[T]) ArgOptions() framework.ArgOptions {
	var zero T
	return framework.OptionsOf(zero)
}
