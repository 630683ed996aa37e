package chat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rlindsey28/chat-dice/logger"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const name = "chat"

// maxDepth bounds nested Parse calls so alias cycles terminate.
const maxDepth = 8

const internalErrorReply = "The command failed because of an internal error. It has been logged."

var (
	tracer = otel.Tracer(name)

	ErrTooDeep = errors.New("chat: command nesting too deep")
)

// Transcript is everything a dispatched command emitted.
type Transcript struct {
	Replies    []string `json:"replies"`
	Broadcasts []string `json:"broadcasts"`
}

// Router is an in-process command host. Commands are registered through
// the Registrar methods and run with Dispatch.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	aliases  map[string]string
	help     map[string][]string

	sink Sink
	now  func() time.Time
}

var _ Registrar = (*Router)(nil)

// NewRouter returns a Router delivering broadcasts to sink, or LogSink if
// sink is nil.
func NewRouter(sink Sink) *Router {
	if sink == nil {
		sink = LogSink{}
	}
	return &Router{
		handlers: make(map[string]Handler),
		aliases:  make(map[string]string),
		help:     make(map[string][]string),
		sink:     sink,
		now:      time.Now,
	}
}

func (r *Router) Handle(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[strings.ToLower(name)] = h
}

// Alias makes alias run the command name. Help for name is also shown for
// alias.
func (r *Router) Alias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = strings.ToLower(name)
}

func (r *Router) Help(name string, lines ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.help[strings.ToLower(name)] = lines
}

// Commands lists the registered command names and aliases.
func (r *Router) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers)+len(r.aliases))
	for n := range r.handlers {
		names = append(names, n)
	}
	for n := range r.aliases {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs line for caller. User mistakes end up as replies in the
// transcript; the returned error is only set for internal failures, in
// which case the transcript carries a generic reply.
func (r *Router) Dispatch(ctx context.Context, caller Caller, line string) (Transcript, error) {
	id := uuid.NewString()
	ctx = logger.WithCtx(ctx, logger.FromCtx(ctx).With(
		zap.String("invocation_id", id),
		zap.String("room", caller.Room),
		zap.String("user", caller.User),
	))
	ctx, span := tracer.Start(ctx, "dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("chat.room", caller.Room), attribute.String("chat.invocation_id", id))

	inv := &invocation{router: r, caller: caller, id: id, transcript: &Transcript{}}
	err := inv.Parse(ctx, line)
	if err != nil {
		logger.FromCtx(ctx).Error("command failed", zap.String("line", line), zap.Error(err))
		span.SetStatus(otelcodes.Error, "command failed")
		span.RecordError(err)
		inv.transcript.Replies = append(inv.transcript.Replies, internalErrorReply)
		return *inv.transcript, err
	}
	span.SetStatus(otelcodes.Ok, "success")
	return *inv.transcript, nil
}

func (r *Router) resolve(name string) (string, Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := 0; i < maxDepth; i++ {
		if h, ok := r.handlers[name]; ok {
			return name, h, true
		}
		target, ok := r.aliases[name]
		if !ok {
			break
		}
		name = target
	}
	return name, nil, false
}

// helpFor finds help lines for a command, following aliases.
func (r *Router) helpFor(name string) ([]string, bool) {
	name = strings.TrimPrefix(strings.ToLower(name), "/")
	canonical, _, _ := r.resolve(name)

	r.mu.RLock()
	defer r.mu.RUnlock()
	if lines, ok := r.help[canonical]; ok {
		return lines, true
	}
	lines, ok := r.help[name]
	return lines, ok
}

type invocation struct {
	router     *Router
	caller     Caller
	id         string
	depth      int
	transcript *Transcript
}

func (i *invocation) User() string { return i.caller.User }
func (i *invocation) Room() string { return i.caller.Room }

func (i *invocation) Reply(_ context.Context, msg string) error {
	i.transcript.Replies = append(i.transcript.Replies, msg)
	return nil
}

func (i *invocation) Broadcast(ctx context.Context, line string) error {
	err := i.router.sink.Broadcast(ctx, Broadcast{
		Room:         i.caller.Room,
		User:         i.caller.User,
		Line:         line,
		InvocationID: i.id,
		SentAt:       i.router.now(),
	})
	if err != nil {
		return fmt.Errorf("broadcast to room %q: %w", i.caller.Room, err)
	}
	i.transcript.Broadcasts = append(i.transcript.Broadcasts, line)
	return nil
}

func (i *invocation) Parse(ctx context.Context, line string) error {
	if i.depth >= maxDepth {
		return ErrTooDeep
	}
	i.depth++
	defer func() { i.depth-- }()

	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return i.Reply(ctx, `Messages sent here must be commands starting with "/".`)
	}
	cmd, target, _ := strings.Cut(line[1:], " ")
	cmd = strings.ToLower(cmd)
	target = strings.TrimSpace(target)

	if cmd == "help" {
		return i.showHelp(ctx, target)
	}
	if _, h, ok := i.router.resolve(cmd); ok {
		return h(ctx, i, target)
	}
	if base, ok := strings.CutSuffix(cmd, "help"); ok && base != "" {
		return i.showHelp(ctx, base)
	}
	return i.Reply(ctx, fmt.Sprintf("The command '/%s' does not exist.", cmd))
}

func (i *invocation) showHelp(ctx context.Context, topic string) error {
	if topic == "" {
		return i.Reply(ctx, "Usage: /help <command>. Commands: /"+strings.Join(i.router.Commands(), ", /"))
	}
	lines, ok := i.router.helpFor(topic)
	if !ok {
		return i.Reply(ctx, fmt.Sprintf("Could not find help for '/%s'.", strings.TrimPrefix(topic, "/")))
	}
	return i.Reply(ctx, strings.Join(lines, "\n"))
}
