package editor

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/flow"
	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// ErrInvalidCommand is wrapped when a command is malformed before it ever
// reaches the workflow.
var ErrInvalidCommand = errors.New("invalid command")

// Op names a workflow mutation.
type Op string

const (
	OpAddItem          Op = "add_item"
	OpInsertStageAfter Op = "insert_stage_after"
	OpRemoveItem       Op = "remove_item"
)

// Command is the wire form of one edit. Stage is an observable stage index.
type Command struct {
	Op    Op                `json:"op"`
	Stage int               `json:"stage"`
	ID    string            `json:"id"`
	Label string            `json:"label,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// Validate checks the command's shape: a known op and a well-formed id.
func (c Command) Validate() error {
	switch c.Op {
	case OpAddItem, OpInsertStageAfter, OpRemoveItem:
	default:
		return fmt.Errorf("unknown op %q: %w", c.Op, ErrInvalidCommand)
	}
	if _, err := itemid.Parse(c.ID); err != nil {
		return fmt.Errorf("%s: %v: %w", c.Op, err, ErrInvalidCommand)
	}
	return nil
}

func (c Command) item() flow.Item {
	item := flow.NewItem(itemid.ID(c.ID), c.Label)
	item.Meta = c.Meta
	return item
}

// applyTo runs the command against w.
func (c Command) applyTo(w *flow.Workflow) error {
	switch c.Op {
	case OpAddItem:
		return w.AddItem(c.Stage, c.item())
	case OpInsertStageAfter:
		return w.InsertStageAfter(c.Stage, c.item())
	case OpRemoveItem:
		return w.RemoveItem(c.Stage, itemid.ID(c.ID))
	}
	return fmt.Errorf("unknown op %q: %w", c.Op, ErrInvalidCommand)
}
