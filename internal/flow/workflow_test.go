package flow

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/stagegrid/internal/itemid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	w := newTestWorkflow(t)

	stages := w.AllStages()
	require.Len(t, stages, 3)
	assert.Equal(t, StageStart, stages[0].Role())
	assert.Equal(t, StageSeparator, stages[1].Role())
	assert.Equal(t, StageEnd, stages[2].Role())
	assert.Equal(t, 0, stages[1].Len())

	assert.Equal(t, RoleStart, w.Start().Role)
	assert.Equal(t, RoleEnd, w.End().Role)
	assert.Equal(t, []Connector{{Source: w.Start().ID, Target: w.End().ID}}, w.Connectors())
	assert.Empty(t, w.Junctions())
	assert.Equal(t, 2, w.StageCount())
	assert.NoError(t, w.Validate())
}

func TestNew_DefaultsToUUIDs(t *testing.T) {
	w := New()
	_, err := itemid.Parse(w.Start().ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, w.Start().ID, w.End().ID)
}

func TestInsertStageAfter_SplicesBetweenNeighbours(t *testing.T) {
	w := build(t, []string{"a1"})

	require.NoError(t, w.InsertStageAfter(1, step("b1")))

	assert.Equal(t, [][]string{{"g1"}, {"a1"}, {"b1"}, {"g2"}}, stageIDs(w))
	assert.Equal(t, []Connector{
		edge("g1", "a1"),
		edge("a1", "b1"),
		edge("b1", "g2"),
	}, w.Connectors())
	assert.Empty(t, w.Junctions())
}

func TestInsertStageAfter_NewStageTakesNextIndex(t *testing.T) {
	w := build(t, []string{"a1"}, []string{"c1"})

	require.NoError(t, w.InsertStageAfter(1, step("b1")))

	s, err := w.StageAt(2)
	require.NoError(t, err)
	assert.True(t, s.Contains("b1"))
	idx, err := w.ObservableIndex(s)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestInsertStageAfter_Start(t *testing.T) {
	w := build(t, []string{"a1", "a2"})

	require.NoError(t, w.InsertStageAfter(0, step("z1")))

	assert.Equal(t, [][]string{{"g1"}, {"z1"}, {"a1", "a2"}, {"g2"}}, stageIDs(w))
	assert.ElementsMatch(t, []Connector{
		edge("g1", "z1"),
		edge("z1", "a1"),
		edge("z1", "a2"),
		edge("a1", "g2"),
		edge("a2", "g2"),
	}, w.Connectors())
}

func TestInsertStageAfter_CollapsesJunctionOfOldAdjacency(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2"})
	require.Len(t, w.Junctions(), 1)

	require.NoError(t, w.InsertStageAfter(1, step("n")))

	assert.Empty(t, w.Junctions())
	assert.Equal(t, []Connector{
		edge("g1", "a1"),
		edge("a1", "n"),
		edge("g1", "a2"),
		edge("a2", "n"),
		edge("b1", "g2"),
		edge("n", "b1"),
		edge("n", "b2"),
		edge("b2", "g2"),
	}, w.Connectors())
}

func TestAddItem_NextToTerminalsFansWithoutJunction(t *testing.T) {
	w := build(t, []string{"a1"})

	require.NoError(t, w.AddItem(1, step("a2")))

	assert.Empty(t, w.Junctions())
	assert.ElementsMatch(t, []Connector{
		edge("g1", "a1"),
		edge("g1", "a2"),
		edge("a1", "g2"),
		edge("a2", "g2"),
	}, w.Connectors())
}

func TestAddItem_ThresholdUpCreatesJunction(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1"})
	before := w.Connectors()
	require.Contains(t, before, edge("a1", "b1"))
	require.Contains(t, before, edge("a2", "b1"))

	require.NoError(t, w.AddItem(2, step("b2")))

	junctions := w.Junctions()
	require.Len(t, junctions, 1)
	assert.Equal(t, itemid.ID("g3"), junctions[0].ID)

	sep, err := w.NextStage(mustStage(t, w, 1), 1)
	require.NoError(t, err)
	j, ok := sep.Junction()
	require.True(t, ok)
	assert.Equal(t, junctions[0], j)

	assert.Equal(t, []Connector{
		edge("g1", "a1"),
		edge("a1", "g3"),
		edge("g1", "a2"),
		edge("a2", "g3"),
		edge("b1", "g2"),
		edge("g3", "b1"),
		edge("g3", "b2"),
		edge("b2", "g2"),
	}, w.Connectors())
	assert.NotContains(t, w.Connectors(), edge("a1", "b1"))
	assert.NotContains(t, w.Connectors(), edge("a2", "b1"))
}

func TestAddItem_ThresholdUpReanchorsInPlace(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1"})
	before := w.Connectors()
	i1 := indexOf(before, edge("a1", "b1"))
	i2 := indexOf(before, edge("a2", "b1"))

	require.NoError(t, w.AddItem(2, step("b2")))

	after := w.Connectors()
	assert.Equal(t, edge("a1", "g3"), after[i1])
	assert.Equal(t, edge("a2", "g3"), after[i2])
}

func TestAddItem_AboveThresholdOnlyAddsOwnEdges(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2"})
	before := w.Connectors()

	require.NoError(t, w.AddItem(2, step("b3")))

	want := append(before, edge("g3", "b3"), edge("b3", "g2"))
	if diff := cmp.Diff(want, w.Connectors()); diff != "" {
		t.Errorf("connectors mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, w.Junctions(), 1)
}

func TestRemoveItem_AboveThresholdOnlyDropsOwnEdges(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2", "b3"})
	before := w.Connectors()

	require.NoError(t, w.RemoveItem(2, "b3"))

	var want []Connector
	for _, c := range before {
		if !c.touches("b3") {
			want = append(want, c)
		}
	}
	if diff := cmp.Diff(want, w.Connectors()); diff != "" {
		t.Errorf("connectors mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, w.Junctions(), 1)
}

func TestRemoveItem_ThresholdDownRestoresDirectEdges(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1"})
	before := w.Connectors()

	require.NoError(t, w.AddItem(2, step("b2")))
	require.Len(t, w.Junctions(), 1)
	require.NoError(t, w.RemoveItem(2, "b2"))

	assert.Empty(t, w.Junctions())
	assert.Equal(t, before, w.Connectors())
	_, ok := w.Item("g3")
	assert.False(t, ok, "dropped junction must leave the owner index")
}

func TestRemoveItem_ThresholdDownOnPreviousSide(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2"})

	require.NoError(t, w.RemoveItem(1, "a1"))

	assert.Empty(t, w.Junctions())
	assert.ElementsMatch(t, []Connector{
		edge("g1", "a2"),
		edge("a2", "b1"),
		edge("a2", "b2"),
		edge("b1", "g2"),
		edge("b2", "g2"),
	}, w.Connectors())
}

func TestRemoveItem_EmptiedStageIsDeleted(t *testing.T) {
	w := build(t, []string{"a1"}, []string{"x"}, []string{"b1"})

	require.NoError(t, w.RemoveItem(2, "x"))

	assert.Equal(t, [][]string{{"g1"}, {"a1"}, {"b1"}, {"g2"}}, stageIDs(w))
	assert.Len(t, w.AllStages(), 7)
	assert.Equal(t, []string{"g1->a1", "a1->b1", "b1->g2"}, shape(w))
	assertNoDangling(t, w)
}

func TestRemoveItem_EmptiedStageJoinsTwoWideStages(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"x"}, []string{"b1", "b2"})
	require.Empty(t, w.Junctions())

	require.NoError(t, w.RemoveItem(2, "x"))

	require.Len(t, w.Junctions(), 1)
	assert.ElementsMatch(t, []string{
		"g1->a1", "g1->a2",
		"a1->J", "a2->J",
		"J->b1", "J->b2",
		"b1->g2", "b2->g2",
	}, shape(w))
	assertNoDangling(t, w)
}

func TestRemoveItem_LastWorkflowStage(t *testing.T) {
	w := build(t, []string{"a1", "a2"})

	require.NoError(t, w.RemoveItem(1, "a1"))
	require.NoError(t, w.RemoveItem(1, "a2"))

	assert.Len(t, w.AllStages(), 3)
	assert.Equal(t, []Connector{{Source: w.Start().ID, Target: w.End().ID}}, w.Connectors())
}

func TestInsertThenRemove_RoundTrip(t *testing.T) {
	testCases := []struct {
		name   string
		stages [][]string
		after  int
	}{
		{name: "single items", stages: [][]string{{"a1"}, {"b1"}}, after: 1},
		{name: "fan out", stages: [][]string{{"a1"}, {"b1", "b2"}}, after: 1},
		{name: "fan in", stages: [][]string{{"a1", "a2"}, {"b1"}}, after: 1},
		{name: "junction", stages: [][]string{{"a1", "a2"}, {"b1", "b2"}}, after: 1},
		{name: "after start", stages: [][]string{{"a1", "a2"}}, after: 0},
		{name: "before end", stages: [][]string{{"a1", "a2"}}, after: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := build(t, tc.stages...)
			wantStages := stageIDs(w)
			wantShape := shape(w)
			wantJunctions := len(w.Junctions())

			require.NoError(t, w.InsertStageAfter(tc.after, step("n")))
			require.NoError(t, w.RemoveItem(tc.after+1, "n"))

			assert.Equal(t, wantStages, stageIDs(w))
			assert.ElementsMatch(t, wantShape, shape(w))
			assert.Len(t, w.Junctions(), wantJunctions)
		})
	}
}

func TestMutations_RejectInvalidRequests(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(w *Workflow) error
		wantErr error
	}{
		{name: "add to unknown stage", mutate: func(w *Workflow) error { return w.AddItem(9, step("z")) }, wantErr: ErrNotFound},
		{name: "add to overflowing index", mutate: func(w *Workflow) error { return w.AddItem(math.MaxInt, step("z")) }, wantErr: ErrNotFound},
		{name: "insert after overflowing index", mutate: func(w *Workflow) error { return w.InsertStageAfter(math.MaxInt, step("z")) }, wantErr: ErrNotFound},
		{name: "remove from overflowing index", mutate: func(w *Workflow) error { return w.RemoveItem(math.MaxInt, "a1") }, wantErr: ErrNotFound},
		{name: "add to negative index", mutate: func(w *Workflow) error { return w.AddItem(-1, step("z")) }, wantErr: ErrNotFound},
		{name: "add to start", mutate: func(w *Workflow) error { return w.AddItem(0, step("z")) }, wantErr: ErrInvalidTransition},
		{name: "add to end", mutate: func(w *Workflow) error { return w.AddItem(2, step("z")) }, wantErr: ErrInvalidTransition},
		{name: "add junction role", mutate: func(w *Workflow) error {
			return w.AddItem(1, Item{ID: "z", Role: RoleJunction})
		}, wantErr: ErrInvalidTransition},
		{name: "add empty id", mutate: func(w *Workflow) error { return w.AddItem(1, step("")) }, wantErr: ErrInvalidTransition},
		{name: "add duplicate id", mutate: func(w *Workflow) error { return w.AddItem(1, step("a1")) }, wantErr: ErrInvalidTransition},
		{name: "add start id", mutate: func(w *Workflow) error { return w.AddItem(1, step("g1")) }, wantErr: ErrInvalidTransition},
		{name: "insert after end", mutate: func(w *Workflow) error { return w.InsertStageAfter(2, step("z")) }, wantErr: ErrInvalidTransition},
		{name: "insert after unknown", mutate: func(w *Workflow) error { return w.InsertStageAfter(3, step("z")) }, wantErr: ErrNotFound},
		{name: "insert duplicate id", mutate: func(w *Workflow) error { return w.InsertStageAfter(0, step("a2")) }, wantErr: ErrInvalidTransition},
		{name: "remove from start", mutate: func(w *Workflow) error { return w.RemoveItem(0, "g1") }, wantErr: ErrInvalidTransition},
		{name: "remove from end", mutate: func(w *Workflow) error { return w.RemoveItem(2, "g2") }, wantErr: ErrInvalidTransition},
		{name: "remove unknown item", mutate: func(w *Workflow) error { return w.RemoveItem(1, "zz") }, wantErr: ErrNotFound},
		{name: "remove from unknown stage", mutate: func(w *Workflow) error { return w.RemoveItem(5, "a1") }, wantErr: ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := build(t, []string{"a1", "a2"})
			before := w.Snapshot()

			err := tc.mutate(w)

			require.ErrorIs(t, err, tc.wantErr)
			if diff := cmp.Diff(before, w.Snapshot()); diff != "" {
				t.Errorf("failed mutation changed the workflow (-before +after):\n%s", diff)
			}
		})
	}
}

func TestWidestStage(t *testing.T) {
	w := newTestWorkflow(t)
	assert.Equal(t, StageStart, w.WidestStage().Role(), "ties go to the first stage")

	w = build(t, []string{"a1", "a2"}, []string{"b1", "b2"}, []string{"c1"})
	widest := w.WidestStage()
	assert.True(t, widest.Contains("a1"), "first of the equally wide stages wins")
	assert.Equal(t, 2, widest.Len())

	require.NoError(t, w.AddItem(3, step("c2")))
	require.NoError(t, w.AddItem(3, step("c3")))
	assert.True(t, w.WidestStage().Contains("c3"))
}

func TestAllItems_StageOrder(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2"})

	var ids []string
	for _, item := range w.AllItems() {
		ids = append(ids, item.ID.String())
	}
	assert.Equal(t, []string{"g1", "a1", "a2", "g3", "b1", "b2", "g2"}, ids)
}

func TestStageOf(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2"})

	s, ok := w.StageOf("b2")
	require.True(t, ok)
	assert.Equal(t, mustStage(t, w, 2), s)

	j := w.Junctions()[0]
	s, ok = w.StageOf(j.ID)
	require.True(t, ok)
	assert.True(t, s.IsSeparator())
	_, err := w.ObservableIndex(s)
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok = w.StageOf("nope")
	assert.False(t, ok)
}

func TestSnapshot_JSON(t *testing.T) {
	w := build(t, []string{"a1", "a2"}, []string{"b1", "b2"})

	data, err := json.Marshal(w.Snapshot())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"junction"`)
	assert.Contains(t, string(data), `"role":"separator"`)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, w.Snapshot(), decoded)
	assert.Len(t, decoded.Observable(), 4)
}

func TestWithLogger_ReportsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w := newTestWorkflow(t, WithLogger(logger))

	require.NoError(t, w.InsertStageAfter(0, step("a1")))
	require.NoError(t, w.AddItem(1, step("a2")))
	require.NoError(t, w.InsertStageAfter(1, step("b1")))
	require.NoError(t, w.AddItem(2, step("b2")))
	require.NoError(t, w.RemoveItem(2, "b2"))

	out := buf.String()
	assert.Contains(t, out, "Stage inserted.")
	assert.Contains(t, out, "Junction created.")
	assert.Contains(t, out, "Junction dropped.")
}

func mustStage(t *testing.T, w *Workflow, index int) *Stage {
	t.Helper()
	s, err := w.StageAt(index)
	require.NoError(t, err)
	return s
}

func indexOf(cs []Connector, c Connector) int {
	for i, e := range cs {
		if e == c {
			return i
		}
	}
	return -1
}

func assertNoDangling(t *testing.T, w *Workflow) {
	t.Helper()
	for _, c := range w.Connectors() {
		_, ok := w.Item(c.Source)
		assert.True(t, ok, "connector %s has a dangling source", c)
		_, ok = w.Item(c.Target)
		assert.True(t, ok, "connector %s has a dangling target", c)
	}
}

func TestJunctionIDsSkipTakenIDs(t *testing.T) {
	w := build(t, []string{"g3", "a2"}, []string{"b1"})

	require.NoError(t, w.AddItem(2, step("b2")))

	j := w.Junctions()
	require.Len(t, j, 1)
	assert.Equal(t, itemid.ID("g4"), j[0].ID)
}
