package app

import (
	"context"
	"io"
	"log/slog"
	"net"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/flow"
	"github.com/specialistvlad/stagegrid/internal/render"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	// onListen is called with the bound address once Serve is accepting
	// connections.
	onListen func(net.Addr)
}

// NewApp is the constructor for the main application. Rendered output goes to
// outW and logs to logW, each App with its own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")
	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Render loads the definition, builds it and writes the rendered diagram.
func (a *App) Render(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	diagram, w, err := a.load(ctx)
	if err != nil {
		return err
	}
	return a.write(diagram.Name, 0, w.Snapshot())
}

func (a *App) write(name string, version uint64, snap flow.Snapshot) error {
	return render.Write(a.outW, name, version, snap, render.Options{
		Connectors: a.config.ShowConnectors,
		Items:      a.config.ShowItems,
	})
}
