package chat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// Console is a reference Messenger that reads commands from an io.Reader and
// writes outbound messages to an io.Writer. It stands in for a chat SDK
// connection during local runs; every line is treated as a message from a
// single privileged operator identity.
type Console struct {
	in        io.Reader
	out       io.Writer
	channelID int64

	mu    sync.Mutex
	ready chan struct{}
	once  sync.Once
}

const (
	consoleAuthorID   = 1
	consoleAuthorName = "console"
)

func NewConsole(in io.Reader, out io.Writer, channelID int64) *Console {
	return &Console{
		in:        in,
		out:       out,
		channelID: channelID,
		ready:     make(chan struct{}),
	}
}

func (c *Console) Ready() <-chan struct{} {
	return c.ready
}

func (c *Console) Send(_ context.Context, channelID int64, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.out, "[#%d]\n%s\n", channelID, text)
	return err
}

// Run pumps input lines through dispatch until the reader is exhausted or the
// context is cancelled. Non-empty replies are written back to the output.
func (c *Console) Run(ctx context.Context, dispatch func(ctx context.Context, msg *Message) string) error {
	c.once.Do(func() { close(c.ready) })

	// On cancellation the reader goroutine may stay blocked in Scan until
	// the process exits; stdin has no portable interrupt. Run is only
	// cancelled at shutdown, so the leak lasts no longer than the process.
	lines := make(chan string)
	errCh := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errCh <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errCh:
					return err
				default:
					return nil
				}
			}
			if line == "" {
				continue
			}
			msg := &Message{
				AuthorID:   consoleAuthorID,
				AuthorName: consoleAuthorName,
				ChannelID:  c.channelID,
				Admin:      true,
				Content:    line,
			}
			if reply := dispatch(ctx, msg); reply != "" {
				if err := c.Send(ctx, c.channelID, reply); err != nil {
					return err
				}
			}
		}
	}
}
