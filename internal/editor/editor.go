package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/flow"
)

// Update is published after every applied command and served to late
// joiners as the current state.
type Update struct {
	Diagram  string        `json:"diagram"`
	Version  uint64        `json:"version"`
	Snapshot flow.Snapshot `json:"snapshot"`
	// Command is the edit that produced this version, nil for the initial
	// state.
	Command *Command `json:"command,omitempty"`
}

// Editor serializes access to one workflow.
type Editor struct {
	name string

	mu      sync.Mutex
	w       *flow.Workflow
	version uint64
	nextSub int
	subs    map[int]chan Update
	closed  bool
}

// New wraps w. The editor takes ownership; callers must not touch w directly
// afterwards.
func New(name string, w *flow.Workflow) *Editor {
	return &Editor{
		name: name,
		w:    w,
		subs: make(map[int]chan Update),
	}
}

// Name returns the diagram name.
func (e *Editor) Name() string {
	return e.name
}

// Current returns the latest state.
func (e *Editor) Current() Update {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.updateLocked(nil)
}

// Apply validates and runs one command. Failed commands leave the workflow
// and the version untouched and publish nothing.
func (e *Editor) Apply(ctx context.Context, cmd Command) (Update, error) {
	logger := ctxlog.FromContext(ctx).With("op", cmd.Op, "stage", cmd.Stage, "id", cmd.ID)

	if err := cmd.Validate(); err != nil {
		logger.Debug("Command rejected.", "error", err)
		return Update{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return Update{}, fmt.Errorf("editor for %q is closed", e.name)
	}
	if err := cmd.applyTo(e.w); err != nil {
		logger.Debug("Command failed.", "error", err)
		return Update{}, err
	}

	e.version++
	u := e.updateLocked(&cmd)
	e.publishLocked(u)
	logger.Info("Command applied.", "version", u.Version, "subscribers", len(e.subs))
	return u, nil
}

// Subscribe registers a listener. The channel first receives the current
// state and then every later update. The returned function unsubscribes and
// closes the channel; it is safe to call more than once.
func (e *Editor) Subscribe(buffer int) (<-chan Update, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Update, buffer)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(ch)
		return ch, func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	ch <- e.updateLocked(nil)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			if sub, ok := e.subs[id]; ok {
				delete(e.subs, id)
				close(sub)
			}
		})
	}
}

// Close closes every subscriber channel and rejects further commands.
func (e *Editor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for id, ch := range e.subs {
		delete(e.subs, id)
		close(ch)
	}
}

func (e *Editor) updateLocked(cmd *Command) Update {
	return Update{
		Diagram:  e.name,
		Version:  e.version,
		Snapshot: e.w.Snapshot(),
		Command:  cmd,
	}
}

// publishLocked delivers u to every subscriber without blocking. A full
// channel loses its oldest pending update to make room.
func (e *Editor) publishLocked(u Update) {
	for _, ch := range e.subs {
		select {
		case ch <- u:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- u:
		default:
		}
	}
}
