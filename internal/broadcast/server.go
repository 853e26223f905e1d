package broadcast

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/editor"
	"github.com/zishang520/socket.io/v2/socket"
)

// Source is the editor surface the server needs.
type Source interface {
	Current() editor.Update
	Apply(ctx context.Context, cmd editor.Command) (editor.Update, error)
	Subscribe(buffer int) (<-chan editor.Update, func())
}

// Server publishes a Source to socket.io clients.
type Server struct {
	src    Source
	io     *socket.Server
	ctx    context.Context
	logger *slog.Logger
}

// New creates a server for src. ctx supplies the logger and is handed to
// every command the server applies.
func New(ctx context.Context, src Source) *Server {
	s := &Server{
		src:    src,
		io:     socket.NewServer(nil, nil),
		ctx:    ctx,
		logger: ctxlog.FromContext(ctx).With("component", "broadcast"),
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler returns the socket.io HTTP handler, to be mounted at /socket.io/.
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(nil)
}

// Run forwards every editor update to all connected clients until ctx is
// done or the editor closes.
func (s *Server) Run(ctx context.Context) {
	updates, cancel := s.src.Subscribe(8)
	defer cancel()

	s.logger.Debug("Broadcast loop started.")
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Broadcast loop stopped.", "reason", ctx.Err())
			return
		case u, ok := <-updates:
			if !ok {
				s.logger.Debug("Broadcast loop stopped.", "reason", "editor closed")
				return
			}
			s.io.Emit(EventDiagram, u)
			s.logger.Debug("Diagram broadcast.", "version", u.Version)
		}
	}
}

// Close disconnects every client.
func (s *Server) Close() {
	s.io.Close(nil)
}

func (s *Server) onConnection(clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*socket.Socket)
	if !ok {
		s.logger.Error("Unexpected connection payload.", "type", fmt.Sprintf("%T", clients[0]))
		return
	}
	logger := s.logger.With("sid", client.Id())
	logger.Info("Client connected.")

	client.Emit(EventDiagram, s.src.Current())

	client.On(EventCommand, func(args ...any) {
		cmd, err := decodeCommand(args)
		if err == nil {
			_, err = s.src.Apply(ctxlog.WithLogger(s.ctx, logger), cmd)
		}
		if err != nil {
			logger.Warn("Command rejected.", "op", cmd.Op, "error", err)
			client.Emit(EventCommandError, CommandError{Command: cmd, Error: err.Error()})
		}
	})

	client.On("disconnect", func(reason ...any) {
		logger.Info("Client disconnected.", "reason", reason)
	})
}
