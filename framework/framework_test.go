package framework

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revoltkit/models"
)

func noopHandler(_ context.Context, _ *Context, _ *Msg) error {
	return nil
}

func textMessage(content string) *models.Message {
	return &models.Message{
		ID:      "01H0000000000000000MESSAGE",
		Channel: "01H0000000000000000CHANNE1",
		Author:  "01H0000000000000000A7TH0RX",
		Content: content,
	}
}

func TestHandleMessageDispatchesCommand(t *testing.T) {
	var calls atomic.Int32
	var gotArgs string

	root := Root(
		NewGroup("General").
			AddCommand(NewCommand("ping", Args0(func(_ context.Context, _ *Context, m *Msg) error {
				calls.Add(1)
				gotArgs = m.Args
				return nil
			}))),
	)
	fw := New().WithPrefix("!").WithRoot(root)

	fw.HandleMessage(t.Context(), &Context{}, textMessage("!ping"))

	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, gotArgs)
}

func TestHandleMessageDispatchesConcurrently(t *testing.T) {
	var pings atomic.Int32

	root := Root(
		NewGroup("General").
			AddCommand(NewCommand("ping", Args0(func(_ context.Context, _ *Context, _ *Msg) error {
				pings.Add(1)
				return nil
			}))).
			AddCommand(NewCommand("other", Args0(noopHandler))),
	)
	fw := New().WithPrefix("!").WithRoot(root)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fw.HandleMessage(context.Background(), &Context{}, textMessage("!other unrelated"))
		}()
	}

	fw.HandleMessage(t.Context(), &Context{}, textMessage("!ping"))
	wg.Wait()

	assert.Equal(t, int32(1), pings.Load())
}

func TestHandleMessageIgnoresNonText(t *testing.T) {
	hookCalled := false

	fw := New().
		OnNormalMessage(func(_ context.Context, _ *Context, _ *models.Message) {
			hookCalled = true
		}).
		OnUnknownCommand(func(_ context.Context, _ *Context, _ *models.Message) {
			hookCalled = true
		})

	system := textMessage("")
	system.System = &models.SystemMessage{Type: "user_joined"}

	fw.HandleMessage(t.Context(), &Context{}, system)
	fw.HandleMessage(t.Context(), &Context{}, textMessage(""))

	assert.False(t, hookCalled)
}

func TestHandleMessageNormalMessageHook(t *testing.T) {
	var got string

	fw := New().WithPrefix("!").
		OnNormalMessage(func(_ context.Context, _ *Context, m *models.Message) {
			got = m.Content
		})

	fw.HandleMessage(t.Context(), &Context{}, textMessage("just chatting"))

	assert.Equal(t, "just chatting", got)
}

func TestHandleMessageUnknownCommandHook(t *testing.T) {
	unknown := false

	root := Root(NewGroup("General").AddCommand(NewCommand("ping", Args0(noopHandler))))
	fw := New().WithPrefix("!").WithRoot(root).
		OnUnknownCommand(func(_ context.Context, _ *Context, _ *models.Message) {
			unknown = true
		})

	fw.HandleMessage(t.Context(), &Context{}, textMessage("!nosuchcommand"))

	assert.True(t, unknown)
}

func TestHandleMessageAfterHookReceivesHandlerError(t *testing.T) {
	handlerErr := errors.New("boom")
	var gotCmd *Command
	var gotErr error

	root := Root(
		NewGroup("General").
			AddCommand(NewCommand("fail", Args0(func(_ context.Context, _ *Context, _ *Msg) error {
				return handlerErr
			}))),
	)
	fw := New().WithPrefix("!").WithRoot(root).
		After(func(_ context.Context, _ *Context, _ *Msg, cmd *Command, err error) {
			gotCmd = cmd
			gotErr = err
		})

	fw.HandleMessage(t.Context(), &Context{}, textMessage("!fail"))

	require.NotNil(t, gotCmd)
	assert.Equal(t, "fail", gotCmd.Name)
	assert.Equal(t, handlerErr, gotErr)
}

func TestHandleMessageAfterHookReceivesExtractionError(t *testing.T) {
	var gotErr error

	root := Root(
		NewGroup("General").
			AddCommand(NewCommand("add", Args1(func(_ context.Context, _ *Context, _ *Msg, n intArg) error {
				return nil
			}))),
	)
	fw := New().WithPrefix("!").WithRoot(root).
		After(func(_ context.Context, _ *Context, _ *Msg, _ *Command, err error) {
			gotErr = err
		})

	fw.HandleMessage(t.Context(), &Context{}, textMessage("!add notanumber"))

	require.Error(t, gotErr)
}

func TestHandleMessageAfterHookRunsOnSuccess(t *testing.T) {
	afterRan := false

	root := Root(NewGroup("General").AddCommand(NewCommand("ping", Args0(noopHandler))))
	fw := New().WithPrefix("!").WithRoot(root).
		After(func(_ context.Context, _ *Context, _ *Msg, _ *Command, err error) {
			afterRan = true
			assert.NoError(t, err)
		})

	fw.HandleMessage(t.Context(), &Context{}, textMessage("!ping"))

	assert.True(t, afterRan)
}
