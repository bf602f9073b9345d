// Package framework routes chat messages to typed command handlers: a
// prefix check, resolution against a nested group tree, and a type-driven
// argument extraction pipeline in front of each handler.
package framework

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"revoltkit/models"
)

// MessageHook observes a message that did not dispatch a command.
type MessageHook func(ctx context.Context, fc *Context, message *models.Message)

// AfterHook receives every dispatched command's result, nil or not. The
// framework itself never reports errors to the chat channel; that is the
// hook's decision.
type AfterHook func(ctx context.Context, fc *Context, m *Msg, cmd *Command, err error)

// Framework decides per message whether it is a command invocation and
// runs it. It holds no per-message state and is safe to share across
// concurrently dispatched messages once configured.
type Framework struct {
	prefix         string
	root           *Group
	normalMessage  MessageHook
	unknownCommand MessageHook
	after          AfterHook
}

func New() *Framework {
	return &Framework{prefix: "!", root: Root()}
}

func (f *Framework) WithPrefix(prefix string) *Framework {
	f.prefix = prefix
	return f
}

func (f *Framework) WithRoot(root *Group) *Framework {
	f.root = root
	return f
}

// OnNormalMessage registers the hook for text messages without the prefix.
func (f *Framework) OnNormalMessage(hook MessageHook) *Framework {
	f.normalMessage = hook
	return f
}

// OnUnknownCommand registers the hook for prefixed text that resolves to
// no command.
func (f *Framework) OnUnknownCommand(hook MessageHook) *Framework {
	f.unknownCommand = hook
	return f
}

func (f *Framework) After(hook AfterHook) *Framework {
	f.after = hook
	return f
}

// HandleMessage runs the three-branch dispatch: non-text messages are
// ignored, unprefixed text goes to the normal-message hook, prefixed text
// resolves and runs a command whose result is forwarded to the after hook.
func (f *Framework) HandleMessage(ctx context.Context, fc *Context, message *models.Message) {
	if !message.IsText() {
		return
	}

	if !strings.HasPrefix(message.Content, f.prefix) {
		if f.normalMessage != nil {
			f.normalMessage(ctx, fc, message)
		}
		return
	}

	input := message.Content[len(f.prefix):]
	cmd, remaining, ok := f.root.Resolve(input)
	if !ok {
		log.Debug().Str("input", input).Msg("no command matched")
		if f.unknownCommand != nil {
			f.unknownCommand(ctx, fc, message)
		}
		return
	}

	l := log.With().
		Str("command", cmd.Name).
		Str("channel", string(message.Channel)).
		Str("author", string(message.Author)).
		Logger()
	l.Debug().Str("args", remaining).Msg("dispatching command")

	m := &Msg{Message: message, Args: remaining}

	err := cmd.Handler(ctx, fc, m, cmd.Args)
	if err != nil {
		l.Debug().Err(err).Msg("command returned error")
	}

	if f.after != nil {
		f.after(ctx, fc, m, cmd, err)
	}
}
