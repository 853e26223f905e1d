package builder

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/flow"
	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Build constructs a workflow from a diagram definition. Extra options are
// applied after the ones the builder derives from the diagram and the context.
func Build(ctx context.Context, d *config.Diagram, opts ...flow.Option) (*flow.Workflow, error) {
	logger := ctxlog.FromContext(ctx).With("diagram", d.Name)
	logger.Debug("Build: Starting workflow construction.", "stages", len(d.Stages))

	ids, err := itemid.NewGenerator(d.IDScheme)
	if err != nil {
		return nil, fmt.Errorf("diagram %q: %w", d.Name, err)
	}
	opts = append([]flow.Option{flow.WithIDGenerator(ids), flow.WithLogger(logger)}, opts...)
	w := flow.New(opts...)

	for i, stage := range d.Stages {
		if len(stage.Items) == 0 {
			return nil, fmt.Errorf("stage %q has no items: %w", stage.Name, config.ErrInvalidDiagram)
		}
		if err := w.InsertStageAfter(i, toItem(stage.Items[0])); err != nil {
			return nil, fmt.Errorf("stage %q item %q: %w", stage.Name, stage.Items[0].ID, err)
		}
		for _, def := range stage.Items[1:] {
			if err := w.AddItem(i+1, toItem(def)); err != nil {
				return nil, fmt.Errorf("stage %q item %q: %w", stage.Name, def.ID, err)
			}
		}
		logger.Debug("Build: Stage replayed.", "stage", stage.Name, "index", i+1, "items", len(stage.Items))
	}

	logger.Info("Build: Workflow construction successful.",
		"stages", w.StageCount(), "connectors", len(w.Connectors()), "junctions", len(w.Junctions()))
	return w, nil
}

func toItem(def *config.ItemDefinition) flow.Item {
	item := flow.NewItem(itemid.ID(def.ID), def.Label)
	item.Meta = def.Meta
	return item
}
