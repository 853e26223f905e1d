package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/stagegrid/internal/broadcast"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/editor"
)

// shutdownTimeout bounds the graceful HTTP shutdown.
const shutdownTimeout = 5 * time.Second

// Serve loads the definition, hosts it in an editor and publishes it over
// socket.io until ctx is cancelled. /health answers on the same address.
func (a *App) Serve(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	diagram, w, err := a.load(ctx)
	if err != nil {
		return err
	}

	ed := editor.New(diagram.Name, w)
	defer ed.Close()
	bs := broadcast.New(ctx, ed)
	defer bs.Close()

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", bs.Handler())
	mux.HandleFunc("/health", a.healthHandler)

	ln, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.Addr, err)
	}
	httpServer := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	runCtx, stopBroadcast := context.WithCancel(ctx)
	defer stopBroadcast()
	go bs.Run(runCtx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(ln)
	}()
	a.logger.Info("📡 Diagram server starting", "diagram", diagram.Name, "address", ln.Addr().String())
	if a.onListen != nil {
		a.onListen(ln.Addr())
	}

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("diagram server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("📡 Shutting down diagram server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Diagram server shutdown failed", "error", err)
		return err
	}
	a.logger.Debug("Diagram server shut down gracefully.")
	return nil
}
