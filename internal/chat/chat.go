// Package chat defines the boundary to the chat platform. The real platform
// connection is external to this service; everything in here is expressed
// against these types so any chat SDK can be wired in behind them.
package chat

import "context"

// Message is one inbound chat message, mapped from whatever the platform
// delivers.
type Message struct {
	AuthorID   int64
	AuthorName string
	ChannelID  int64
	Admin      bool
	Content    string
}

// Messenger is the outbound side of the chat connection.
type Messenger interface {
	// Send posts text to a channel.
	Send(ctx context.Context, channelID int64, text string) error
	// Ready returns a channel that is closed once the connection can
	// deliver messages. Scheduled jobs hold their first tick on it.
	Ready() <-chan struct{}
}
