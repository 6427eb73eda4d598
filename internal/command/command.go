// Package command routes prefixed chat messages to handlers and parses the
// free-text argument forms the bot accepts.
package command

import (
	"context"
	"strings"

	"github.com/WST-T/pweaseHiredMe/internal/chat"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HandlerFunc handles one command invocation and returns the reply text, or
// "" for no reply.
type HandlerFunc func(ctx context.Context, msg *chat.Message, args string) string

// Router dispatches inbound messages whose content starts with the command
// prefix. Unknown commands and non-command chatter are ignored.
type Router struct {
	prefix   string
	log      *zap.SugaredLogger
	handlers map[string]HandlerFunc
}

func NewRouter(prefix string, log *zap.Logger) *Router {
	return &Router{
		prefix:   prefix,
		log:      log.Sugar(),
		handlers: make(map[string]HandlerFunc),
	}
}

func (r *Router) Handle(name string, fn HandlerFunc) {
	r.handlers[strings.ToLower(name)] = fn
}

// Dispatch runs the matching handler, if any. The second return value
// reports whether the message was a recognized command.
func (r *Router) Dispatch(ctx context.Context, msg *chat.Message) (string, bool) {
	if !strings.HasPrefix(msg.Content, r.prefix) {
		return "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(msg.Content, r.prefix))
	name := rest
	args := ""
	if i := strings.IndexAny(rest, " \t"); i >= 0 {
		name, args = rest[:i], strings.TrimSpace(rest[i+1:])
	}

	fn, ok := r.handlers[strings.ToLower(name)]
	if !ok {
		return "", false
	}

	requestID := uuid.NewString()
	r.log.Infow("command received",
		"request_id", requestID,
		"command", name,
		"owner_id", msg.AuthorID,
		"owner_name", msg.AuthorName,
	)

	reply := fn(ctx, msg, args)

	r.log.Debugw("command handled",
		"request_id", requestID,
		"command", name,
		"replied", reply != "",
	)
	return reply, true
}

// SplitArgs splits a command argument string on whitespace, keeping
// double-quoted spans together. Inside quotes a backslash escapes the next
// character literally.
func SplitArgs(s string) []string {
	var out []string
	var cur strings.Builder
	inQuote := false
	quoted := false

	flush := func() {
		if quoted || cur.Len() > 0 {
			out = append(out, cur.String())
		}
		cur.Reset()
		quoted = false
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\' && i+1 < len(s):
			i++
			cur.WriteByte(s[i])
		case c == '"':
			inQuote = !inQuote
			quoted = true
		case !inQuote && (c == ' ' || c == '\t'):
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}
