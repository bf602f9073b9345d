package framework

import "errors"

var (
	// ErrNotEnoughArgs is returned when a parameter needs a token but the
	// argument stream is exhausted.
	ErrNotEnoughArgs = errors.New("not enough arguments")

	// ErrNotInServer is returned when a member resolution is attempted for
	// a message that did not originate in a server channel.
	ErrNotInServer = errors.New("message not sent in a server")

	// ErrPushBack signals that a parameter declined its token and the
	// token must be re-presented to the next parameter. It is returned
	// together with the parameter's value and is consumed by the
	// extraction driver, never surfaced to handlers.
	ErrPushBack = errors.New("push back token")
)
