package flow

import (
	"testing"

	"github.com/specialistvlad/stagegrid/internal/itemid"
	"github.com/stretchr/testify/assert"
)

func TestConnectorSet_AddDeduplicates(t *testing.T) {
	var cs connectorSet

	assert.True(t, cs.add(edge("a", "b")))
	assert.False(t, cs.add(edge("a", "b")))
	assert.True(t, cs.add(edge("b", "a")))
	assert.Equal(t, 2, cs.len())
}

func TestConnectorSet_RemoveWhere(t *testing.T) {
	cs := connectorSet{edges: []Connector{edge("a", "b"), edge("b", "c"), edge("c", "d")}}

	n := cs.removeWhere(func(c Connector) bool { return c.touches("b") })

	assert.Equal(t, 2, n)
	assert.Equal(t, []Connector{edge("c", "d")}, cs.all())
}

func TestConnectorSet_RetargetKeepsOrderAndDropsDuplicates(t *testing.T) {
	cs := connectorSet{edges: []Connector{
		edge("s", "x"),
		edge("a", "b"),
		edge("s", "y"),
		edge("b", "c"),
	}}

	moved := cs.retarget(func(c Connector) bool { return c.Source == "s" }, itemid.ID("n"))

	assert.Equal(t, 2, moved)
	assert.Equal(t, []Connector{edge("s", "n"), edge("a", "b"), edge("b", "c")}, cs.all())
}

func TestConnectorSet_Reconcile(t *testing.T) {
	testCases := []struct {
		name      string
		edges     []Connector
		scope     func(Connector) bool
		desired   []Connector
		want      []Connector
		wantStats reconcileStats
	}{
		{
			name:    "already satisfied",
			edges:   []Connector{edge("a", "b"), edge("x", "y")},
			scope:   func(c Connector) bool { return c.Source == "a" },
			desired: []Connector{edge("a", "b")},
			want:    []Connector{edge("a", "b"), edge("x", "y")},
		},
		{
			name:      "reanchor by source in place",
			edges:     []Connector{edge("a", "b"), edge("x", "y")},
			scope:     func(c Connector) bool { return c.Source == "a" },
			desired:   []Connector{edge("a", "j")},
			want:      []Connector{edge("a", "j"), edge("x", "y")},
			wantStats: reconcileStats{reanchored: 1},
		},
		{
			name:      "reanchor by target when no source matches",
			edges:     []Connector{edge("x", "y"), edge("gone", "b")},
			scope:     func(c Connector) bool { return c.Target == "b" },
			desired:   []Connector{edge("j", "b")},
			want:      []Connector{edge("x", "y"), edge("j", "b")},
			wantStats: reconcileStats{reanchored: 1},
		},
		{
			name:      "every stale match is handled",
			edges:     []Connector{edge("a1", "b"), edge("a2", "b"), edge("a3", "b")},
			scope:     func(c Connector) bool { return c.Target == "b" || c.Target == "j" },
			desired:   []Connector{edge("a1", "j"), edge("a2", "j"), edge("a3", "j")},
			want:      []Connector{edge("a1", "j"), edge("a2", "j"), edge("a3", "j")},
			wantStats: reconcileStats{reanchored: 3},
		},
		{
			name:      "unmatched stale connectors are dropped",
			edges:     []Connector{edge("a", "b"), edge("c", "d")},
			scope:     func(Connector) bool { return true },
			desired:   []Connector{edge("a", "b")},
			want:      []Connector{edge("a", "b")},
			wantStats: reconcileStats{dropped: 1},
		},
		{
			name:      "missing connectors are appended in desired order",
			edges:     []Connector{edge("x", "y")},
			scope:     func(c Connector) bool { return c.Source == "a" },
			desired:   []Connector{edge("a", "c"), edge("a", "b"), edge("a", "c")},
			want:      []Connector{edge("x", "y"), edge("a", "c"), edge("a", "b")},
			wantStats: reconcileStats{added: 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cs := connectorSet{edges: tc.edges}

			stats := cs.reconcile(tc.scope, tc.desired)

			assert.Equal(t, tc.want, cs.all())
			assert.Equal(t, tc.wantStats, stats)
			assert.Equal(t, tc.wantStats != reconcileStats{}, stats.changed())
		})
	}
}

func TestDesiredConnectors(t *testing.T) {
	prev := []itemid.ID{"a1", "a2"}
	next := []itemid.ID{"b1", "b2"}

	assert.Equal(t, []Connector{
		edge("a1", "b1"), edge("a1", "b2"), edge("a2", "b1"), edge("a2", "b2"),
	}, desiredConnectors(prev, next, ""))
	assert.Equal(t, []Connector{
		edge("a1", "j"), edge("a2", "j"), edge("j", "b1"), edge("j", "b2"),
	}, desiredConnectors(prev, next, "j"))
}

func TestConnector_String(t *testing.T) {
	assert.Equal(t, "a->b", edge("a", "b").String())
}
