package flow

import (
	"log/slog"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Workflow is the diagram aggregate. It owns the full stage sequence and the
// connector set; both are changed only through its mutation methods.
type Workflow struct {
	stages     []*Stage
	connectors connectorSet
	// owner maps every item id to the stage currently holding it.
	owner  map[itemid.ID]*Stage
	ids    itemid.Generator
	logger *slog.Logger
	checks bool
}

// Option configures a Workflow at construction time.
type Option func(*Workflow)

// WithLogger sets the logger used to report structural transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithIDGenerator sets the generator used for the start, end and junction
// items the workflow creates itself.
func WithIDGenerator(g itemid.Generator) Option {
	return func(w *Workflow) {
		if g != nil {
			w.ids = g
		}
	}
}

// WithInvariantChecks makes every mutation validate the whole aggregate
// afterwards and panic on a violation. Meant for development and tests.
func WithInvariantChecks() Option {
	return func(w *Workflow) {
		w.checks = true
	}
}

// New creates a workflow holding the start stage, one empty separator, the
// end stage and a single start→end connector.
func New(opts ...Option) *Workflow {
	w := &Workflow{
		owner:  make(map[itemid.ID]*Stage),
		ids:    itemid.UUIDGenerator{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	startItem := Item{ID: w.ids.NewID(), Role: RoleStart, Label: "Start"}
	endItem := Item{ID: w.ids.NewID(), Role: RoleEnd, Label: "End"}
	start := newStage(StageStart, startItem)
	end := newStage(StageEnd, endItem)

	w.stages = []*Stage{start, newStage(StageSeparator), end}
	w.owner[startItem.ID] = start
	w.owner[endItem.ID] = end
	w.connectors.add(Connector{Source: startItem.ID, Target: endItem.ID})

	w.logger.Debug("Workflow created.", "start", startItem.ID, "end", endItem.ID)
	return w
}

// Start returns the start item.
func (w *Workflow) Start() Item {
	return w.stages[0].items[0]
}

// End returns the end item.
func (w *Workflow) End() Item {
	return w.stages[len(w.stages)-1].items[0]
}
