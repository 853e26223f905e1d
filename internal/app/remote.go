package app

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/editor"
	"github.com/specialistvlad/stagegrid/internal/watch"
)

// editTimeout bounds the wait for the server's answer to an edit.
const editTimeout = 10 * time.Second

// Watch follows a served diagram and renders every version it receives until
// ctx is cancelled or the server goes away.
func (a *App) Watch(ctx context.Context, url string) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	c, err := watch.Dial(ctx, url, watch.Options{})
	if err != nil {
		return err
	}
	defer c.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-c.Updates():
			if !ok {
				return nil
			}
			if err := a.write(u.Diagram, u.Version, u.Snapshot); err != nil {
				return err
			}
		}
	}
}

// Edit sends one command to a served diagram and renders the resulting
// version. A rejected command is returned as an error.
func (a *App) Edit(ctx context.Context, url string, cmd editor.Command) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := watch.Dial(ctx, url, watch.Options{})
	if err != nil {
		return err
	}
	defer c.Close()

	timeout := time.After(editTimeout)
	sent := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("timed out after %s waiting for the server to apply %s", editTimeout, cmd.Op)
		case ce, ok := <-c.Errors():
			if !ok {
				return fmt.Errorf("connection to %s closed", url)
			}
			if sameCommand(ce.Command, cmd) {
				return fmt.Errorf("server rejected %s %q: %s", cmd.Op, cmd.ID, ce.Error)
			}
		case u, ok := <-c.Updates():
			if !ok {
				return fmt.Errorf("connection to %s closed", url)
			}
			// The first update is the state on connect; send only once the
			// server is known to be talking to us.
			if !sent {
				if err := c.Send(cmd); err != nil {
					return err
				}
				sent = true
				continue
			}
			if u.Command != nil && sameCommand(*u.Command, cmd) {
				a.logger.Info("Edit applied.", "op", cmd.Op, "id", cmd.ID, "version", u.Version)
				return a.write(u.Diagram, u.Version, u.Snapshot)
			}
		}
	}
}

func sameCommand(a, b editor.Command) bool {
	return a.Op == b.Op && a.Stage == b.Stage && a.ID == b.ID
}
