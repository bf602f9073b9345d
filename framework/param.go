package framework

import (
	"context"
	"errors"
	"strings"

	"revoltkit/args"
)

// Param is implemented by types usable as typed command parameters. The
// method is called on the zero value of T; it derives the parameter from
// the token the extraction driver pulled for it.
//
// A type can further implement ArgOptions() ArgOptions to change how its
// token is pulled, and FallbackArg(ctx, fc, m) (T, error) to supply a value
// when the argument stream is exhausted. Without a fallback, a missing
// token fails with ErrNotEnoughArgs.
type Param[T any] interface {
	FromToken(ctx context.Context, fc *Context, m *Msg, tok args.Token) (T, error)
}

// ArgOptions declares how a parameter consumes the token stream. The zero
// value means: consume one token and trim surrounding whitespace.
type ArgOptions struct {
	// Rest consumes everything left instead of a single token.
	Rest bool
	// NoToken consumes nothing; FromToken receives an empty token.
	NoToken bool
	// NoTrim keeps the raw token text as lexed.
	NoTrim bool
}

type fallbackParam[T any] interface {
	FallbackArg(ctx context.Context, fc *Context, m *Msg) (T, error)
}

// OptionsOf reports the ArgOptions a parameter value declares; wrapper
// parameter types use it to inherit their inner type's behavior.
func OptionsOf(p any) ArgOptions {
	if o, ok := p.(interface{ ArgOptions() ArgOptions }); ok {
		return o.ArgOptions()
	}
	return ArgOptions{}
}

// nextArg pulls one parameter value off the lexer, applying the tuple rule:
// trim if configured, honor push-back, and fall back when no token remains.
func nextArg[T Param[T]](ctx context.Context, fc *Context, m *Msg, lex *args.Lexer) (T, error) {
	var zero T
	opts := OptionsOf(zero)

	var tok args.Token
	ok := true
	switch {
	case opts.NoToken:
	case opts.Rest:
		tok, ok = lex.Rest()
	default:
		tok, ok = lex.Next()
	}

	if !ok {
		if f, hasFallback := any(zero).(fallbackParam[T]); hasFallback {
			return f.FallbackArg(ctx, fc, m)
		}
		return zero, ErrNotEnoughArgs
	}

	if !opts.NoToken && !opts.NoTrim {
		tok.Text = strings.TrimSpace(tok.Text)
	}

	v, err := zero.FromToken(ctx, fc, m, tok)
	if err != nil {
		if errors.Is(err, ErrPushBack) {
			lex.PushBack()
			return v, nil
		}
		return zero, err
	}

	return v, nil
}

// Handler runs a resolved command against its remaining argument text.
type Handler func(ctx context.Context, fc *Context, m *Msg, cfg args.Config) error

// Args0 through Args5 adapt a function with typed parameters into a
// Handler. Each parameter type's extraction runs in declaration order over
// one lexer before the function body is invoked; the first unrecoverable
// extraction error aborts the command.

func Args0(fn func(ctx context.Context, fc *Context, m *Msg) error) Handler {
	return func(ctx context.Context, fc *Context, m *Msg, _ args.Config) error {
		return fn(ctx, fc, m)
	}
}

func Args1[T1 Param[T1]](fn func(ctx context.Context, fc *Context, m *Msg, p1 T1) error) Handler {
	return func(ctx context.Context, fc *Context, m *Msg, cfg args.Config) error {
		lex := args.NewLexer(m.Args, cfg)
		p1, err := nextArg[T1](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		return fn(ctx, fc, m, p1)
	}
}

func Args2[T1 Param[T1], T2 Param[T2]](
	fn func(ctx context.Context, fc *Context, m *Msg, p1 T1, p2 T2) error) Handler {
	return func(ctx context.Context, fc *Context, m *Msg, cfg args.Config) error {
		lex := args.NewLexer(m.Args, cfg)
		p1, err := nextArg[T1](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p2, err := nextArg[T2](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		return fn(ctx, fc, m, p1, p2)
	}
}

func Args3[T1 Param[T1], T2 Param[T2], T3 Param[T3]](
	fn func(ctx context.Context, fc *Context, m *Msg, p1 T1, p2 T2, p3 T3) error) Handler {
	return func(ctx context.Context, fc *Context, m *Msg, cfg args.Config) error {
		lex := args.NewLexer(m.Args, cfg)
		p1, err := nextArg[T1](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p2, err := nextArg[T2](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p3, err := nextArg[T3](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		return fn(ctx, fc, m, p1, p2, p3)
	}
}

func Args4[T1 Param[T1], T2 Param[T2], T3 Param[T3], T4 Param[T4]](
	fn func(ctx context.Context, fc *Context, m *Msg, p1 T1, p2 T2, p3 T3, p4 T4) error) Handler {
	return func(ctx context.Context, fc *Context, m *Msg, cfg args.Config) error {
		lex := args.NewLexer(m.Args, cfg)
		p1, err := nextArg[T1](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p2, err := nextArg[T2](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p3, err := nextArg[T3](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p4, err := nextArg[T4](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		return fn(ctx, fc, m, p1, p2, p3, p4)
	}
}

func Args5[T1 Param[T1], T2 Param[T2], T3 Param[T3], T4 Param[T4], T5 Param[T5]](
	fn func(ctx context.Context, fc *Context, m *Msg, p1 T1, p2 T2, p3 T3, p4 T4, p5 T5) error) Handler {
	return func(ctx context.Context, fc *Context, m *Msg, cfg args.Config) error {
		lex := args.NewLexer(m.Args, cfg)
		p1, err := nextArg[T1](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p2, err := nextArg[T2](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p3, err := nextArg[T3](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p4, err := nextArg[T4](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		p5, err := nextArg[T5](ctx, fc, m, lex)
		if err != nil {
			return err
		}
		return fn(ctx, fc, m, p1, p2, p3, p4, p5)
	}
}
