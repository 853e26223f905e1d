package flow

import (
	"strings"
	"testing"

	"github.com/specialistvlad/stagegrid/internal/itemid"
	"github.com/stretchr/testify/require"
)

// newTestWorkflow creates a workflow with deterministic ids: the start item is
// g1, the end item g2 and junctions take g3, g4, ... in creation order.
func newTestWorkflow(t *testing.T, opts ...Option) *Workflow {
	t.Helper()
	opts = append([]Option{WithIDGenerator(itemid.NewSequence("g")), WithInvariantChecks()}, opts...)
	return New(opts...)
}

func step(id string) Item {
	return NewItem(itemid.ID(id), "")
}

func edge(source, target string) Connector {
	return Connector{Source: itemid.ID(source), Target: itemid.ID(target)}
}

// build creates a workflow whose workflow stages hold the given item ids,
// in order, using only the public mutation surface.
func build(t *testing.T, stages ...[]string) *Workflow {
	t.Helper()
	w := newTestWorkflow(t)
	for i, items := range stages {
		require.NotEmpty(t, items)
		require.NoError(t, w.InsertStageAfter(i, step(items[0])))
		for _, id := range items[1:] {
			require.NoError(t, w.AddItem(i+1, step(id)))
		}
	}
	require.NoError(t, w.Validate())
	return w
}

// stageIDs renders the observable stages as item id lists.
func stageIDs(w *Workflow) [][]string {
	var out [][]string
	for _, s := range w.ObservableStages() {
		var ids []string
		for _, item := range s.Items() {
			ids = append(ids, item.ID.String())
		}
		out = append(out, ids)
	}
	return out
}

// shape renders connectors with every junction id replaced by "J", so
// workflows that differ only in generated junction ids compare equal.
func shape(w *Workflow) []string {
	junctions := make(map[itemid.ID]bool)
	for _, j := range w.Junctions() {
		junctions[j.ID] = true
	}
	name := func(id itemid.ID) string {
		if junctions[id] {
			return "J"
		}
		return id.String()
	}
	var out []string
	for _, c := range w.Connectors() {
		out = append(out, name(c.Source)+"->"+name(c.Target))
	}
	return out
}

func joined(parts []string) string {
	return strings.Join(parts, " ")
}
