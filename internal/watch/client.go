// Package watch is the socket.io client side of broadcast: it follows a
// served diagram and can submit edits to it.
package watch

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/stagegrid/internal/broadcast"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/editor"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultPath is the socket.io endpoint used when the URL carries no path.
const DefaultPath = "/socket.io/"

// Options tune the connection.
type Options struct {
	Namespace          string
	InsecureSkipVerify bool
	// ConnectTimeout bounds the wait for the initial connection. Zero means
	// 15 seconds.
	ConnectTimeout time.Duration
}

// Client follows one served diagram.
type Client struct {
	io     *socket.Socket
	logger *slog.Logger

	mu      sync.Mutex
	closed  bool
	updates chan editor.Update
	errs    chan broadcast.CommandError
}

// Dial connects to a broadcast server and waits for the connection to be
// established.
func Dial(ctx context.Context, rawURL string, opts Options) (*Client, error) {
	logger := ctxlog.FromContext(ctx).With("url", rawURL)

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL %q needs a scheme and a host", rawURL)
	}
	path := parsedURL.Path
	if path == "" || path == "/" {
		path = DefaultPath
	}
	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	sockOpts := socket.DefaultOptions()
	sockOpts.SetPath(path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		sockOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sockOpts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sockOpts)
	io := manager.Socket(namespace, sockOpts)

	c := &Client{
		io:      io,
		logger:  logger,
		updates: make(chan editor.Update, 8),
		errs:    make(chan broadcast.CommandError, 8),
	}

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("Connection attempt failed.", "error", err)
		connectChan <- err
	})
	io.On(types.EventName(broadcast.EventDiagram), c.onDiagram)
	io.On(types.EventName(broadcast.EventCommandError), c.onCommandError)

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return c, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}
}

// Updates delivers every diagram state the server publishes. A slow reader
// loses intermediate states, never the newest.
func (c *Client) Updates() <-chan editor.Update {
	return c.updates
}

// Errors delivers rejections of commands this client sent.
func (c *Client) Errors() <-chan broadcast.CommandError {
	return c.errs
}

// Send submits one edit. The outcome arrives as a new update or as an error
// on Errors.
func (c *Client) Send(cmd editor.Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("client is closed")
	}
	c.io.Emit(broadcast.EventCommand, cmd)
	c.logger.Debug("Command sent.", "op", cmd.Op, "stage", cmd.Stage, "id", cmd.ID)
	return nil
}

// Close disconnects and closes both channels.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.io.Disconnect()
	close(c.updates)
	close(c.errs)
	c.logger.Debug("Client closed.")
}

func (c *Client) onDiagram(data ...any) {
	var u editor.Update
	if err := decodePayload(data, &u); err != nil {
		c.logger.Warn("Ignoring malformed diagram event.", "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	offerLatest(c.updates, u)
}

func (c *Client) onCommandError(data ...any) {
	var ce broadcast.CommandError
	if err := decodePayload(data, &ce); err != nil {
		c.logger.Warn("Ignoring malformed command_error event.", "error", err)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	offerLatest(c.errs, ce)
}

// offerLatest sends v without blocking, evicting the oldest queued value
// when the channel is full.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// decodePayload re-encodes the first event argument into out.
func decodePayload(data []any, out any) error {
	if len(data) == 0 {
		return errors.New("event carries no payload")
	}
	var raw []byte
	switch v := data[0].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		raw = b
	}
	return json.Unmarshal(raw, out)
}
