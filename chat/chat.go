// Package chat is the small slice of the chat platform that commands
// depend on: private replies, room broadcasts and command registration.
package chat

import (
	"context"
	"time"

	"github.com/rlindsey28/chat-dice/logger"

	"go.uber.org/zap"
)

// Caller identifies who issued a command and in which room.
type Caller struct {
	User string
	Room string
}

// Invocation is the host side of a single command call.
type Invocation interface {
	User() string
	Room() string
	// Reply sends msg privately to the caller.
	Reply(ctx context.Context, msg string) error
	// Broadcast sends line to everyone in the caller's room.
	Broadcast(ctx context.Context, line string) error
	// Parse dispatches line as if the caller had typed it.
	Parse(ctx context.Context, line string) error
}

// Handler runs a command. target is the raw text after the command name.
// Returned errors are treated as internal failures.
type Handler func(ctx context.Context, inv Invocation, target string) error

// Registrar maps command names to handlers.
type Registrar interface {
	Handle(name string, h Handler)
	Alias(alias, name string)
	Help(name string, lines ...string)
}

// Broadcast is a line delivered to a room.
type Broadcast struct {
	Room         string    `json:"room"`
	User         string    `json:"user"`
	Line         string    `json:"line"`
	InvocationID string    `json:"invocation_id"`
	SentAt       time.Time `json:"sent_at"`
}

// Sink delivers broadcasts to the observers of a room.
type Sink interface {
	Broadcast(ctx context.Context, b Broadcast) error
}

// LogSink writes broadcasts to the context logger. It is used when no
// message transport is configured.
type LogSink struct{}

func (LogSink) Broadcast(ctx context.Context, b Broadcast) error {
	logger.FromCtx(ctx).Info("broadcast", zap.String("room", b.Room), zap.String("line", b.Line))
	return nil
}
