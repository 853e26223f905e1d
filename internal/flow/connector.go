package flow

import (
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Connector is a directed edge between two items, referenced by id.
type Connector struct {
	Source itemid.ID `json:"source"`
	Target itemid.ID `json:"target"`
}

func (c Connector) String() string {
	return fmt.Sprintf("%s->%s", c.Source, c.Target)
}

// touches reports whether either endpoint is id.
func (c Connector) touches(id itemid.ID) bool {
	return c.Source == id || c.Target == id
}

// connectorSet is the ordered connector store of a workflow. It never holds
// two connectors with the same (source, target) pair.
type connectorSet struct {
	edges []Connector
}

func (cs *connectorSet) all() []Connector {
	out := make([]Connector, len(cs.edges))
	copy(out, cs.edges)
	return out
}

func (cs *connectorSet) len() int {
	return len(cs.edges)
}

func (cs *connectorSet) has(c Connector) bool {
	for _, e := range cs.edges {
		if e == c {
			return true
		}
	}
	return false
}

// add appends c unless an identical connector already exists.
func (cs *connectorSet) add(c Connector) bool {
	if cs.has(c) {
		return false
	}
	cs.edges = append(cs.edges, c)
	return true
}

// removeWhere drops every connector matching pred and returns how many were
// removed.
func (cs *connectorSet) removeWhere(pred func(Connector) bool) int {
	kept := cs.edges[:0]
	removed := 0
	for _, e := range cs.edges {
		if pred(e) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	cs.edges = kept
	return removed
}

// retarget points every connector matching pred at target, in place. A
// rewritten connector that would duplicate an existing one is dropped.
func (cs *connectorSet) retarget(pred func(Connector) bool, target itemid.ID) int {
	out := make([]Connector, 0, len(cs.edges))
	seen := make(map[Connector]struct{}, len(cs.edges))
	moved := 0
	for _, e := range cs.edges {
		if pred(e) {
			e.Target = target
			moved++
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	cs.edges = out
	return moved
}

// reconcileStats summarizes what reconcile changed.
type reconcileStats struct {
	reanchored int
	added      int
	dropped    int
}

func (s reconcileStats) changed() bool {
	return s.reanchored+s.added+s.dropped > 0
}

// reconcile makes the connectors selected by inScope equal to desired.
//
// Connectors already in desired are left untouched. Each stale connector is
// re-anchored in place onto a missing desired connector that shares its
// source, or failing that its target; stale connectors with no such partner
// are dropped. Desired connectors still missing afterwards are appended in
// desired order. Every match is handled, not just the first one found.
func (cs *connectorSet) reconcile(inScope func(Connector) bool, desired []Connector) reconcileStats {
	var stats reconcileStats

	present := make(map[Connector]struct{}, len(cs.edges))
	for _, e := range cs.edges {
		present[e] = struct{}{}
	}
	wanted := make(map[Connector]struct{}, len(desired))
	var missing []Connector
	for _, d := range desired {
		if _, dup := wanted[d]; dup {
			continue
		}
		wanted[d] = struct{}{}
		if _, ok := present[d]; !ok {
			missing = append(missing, d)
		}
	}

	take := func(match func(Connector) bool) (Connector, bool) {
		for i, m := range missing {
			if match(m) {
				missing = append(missing[:i], missing[i+1:]...)
				return m, true
			}
		}
		return Connector{}, false
	}

	out := make([]Connector, 0, len(cs.edges)+len(missing))
	for _, e := range cs.edges {
		if !inScope(e) {
			out = append(out, e)
			continue
		}
		if _, ok := wanted[e]; ok {
			out = append(out, e)
			continue
		}
		repl, ok := take(func(m Connector) bool { return m.Source == e.Source })
		if !ok {
			repl, ok = take(func(m Connector) bool { return m.Target == e.Target })
		}
		if !ok {
			stats.dropped++
			continue
		}
		stats.reanchored++
		out = append(out, repl)
	}
	for _, m := range missing {
		out = append(out, m)
		stats.added++
	}
	cs.edges = out
	return stats
}
