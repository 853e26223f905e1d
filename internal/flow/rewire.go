package flow

import (
	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// idSet is a small set of item ids.
type idSet map[itemid.ID]struct{}

func newIDSet(ids ...itemid.ID) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s idSet) has(id itemid.ID) bool {
	_, ok := s[id]
	return ok
}

// desiredConnectors returns the exact connector set a boundary must carry.
// A non-zero junction means both sides hold several items.
func desiredConnectors(prev, next []itemid.ID, junction itemid.ID) []Connector {
	if !junction.IsZero() {
		out := make([]Connector, 0, len(prev)+len(next))
		for _, a := range prev {
			out = append(out, Connector{Source: a, Target: junction})
		}
		for _, b := range next {
			out = append(out, Connector{Source: junction, Target: b})
		}
		return out
	}
	out := make([]Connector, 0, len(prev)*len(next))
	for _, a := range prev {
		for _, b := range next {
			out = append(out, Connector{Source: a, Target: b})
		}
	}
	return out
}

// freshID mints an id no item in the workflow is using. Generated ids can
// collide with caller-chosen ones under the sequence scheme.
func (w *Workflow) freshID() itemid.ID {
	for {
		id := w.ids.NewID()
		if _, taken := w.owner[id]; !taken && !id.IsZero() {
			return id
		}
	}
}

// needsJunction is the junction rule for one boundary.
func needsJunction(prev, next *Stage) bool {
	return prev.Len() > 1 && next.Len() > 1
}

// reconcile restores the junction invariant for the boundary around the
// separator at sepPos.
//
// The junction is created when the boundary crosses the threshold up and
// dropped when it crosses down; in both cases existing connectors are
// re-anchored onto the new shape instead of being rebuilt. detached lists ids
// that just left the boundary (a removed item, a deleted junction) so their
// stale connectors are re-anchored or dropped here too.
func (w *Workflow) reconcile(sepPos int, detached []itemid.ID) {
	sep := w.stages[sepPos]
	prev, next := w.stages[sepPos-1], w.stages[sepPos+1]

	junction, hasJunction := sep.Junction()
	want := needsJunction(prev, next)
	if want && !hasJunction {
		junction = Item{ID: w.freshID(), Role: RoleJunction}
		sep.items = []Item{junction}
		w.owner[junction.ID] = sep
		hasJunction = true
		w.logger.Debug("Junction created.", "separator", sepPos, "junction", junction.ID,
			"prev_items", prev.Len(), "next_items", next.Len())
	}

	sources := newIDSet(prev.ids()...)
	targets := newIDSet(next.ids()...)
	if hasJunction {
		sources[junction.ID] = struct{}{}
		targets[junction.ID] = struct{}{}
	}
	for _, id := range detached {
		sources[id] = struct{}{}
		targets[id] = struct{}{}
	}
	inScope := func(c Connector) bool {
		return sources.has(c.Source) && targets.has(c.Target)
	}

	var hub itemid.ID
	if want {
		hub = junction.ID
	}
	stats := w.connectors.reconcile(inScope, desiredConnectors(prev.ids(), next.ids(), hub))

	if hasJunction && !want {
		sep.items = nil
		delete(w.owner, junction.ID)
		w.logger.Debug("Junction dropped.", "separator", sepPos, "junction", junction.ID,
			"prev_items", prev.Len(), "next_items", next.Len())
	}
	if stats.changed() {
		w.logger.Debug("Boundary rewired.", "separator", sepPos,
			"reanchored", stats.reanchored, "added", stats.added, "dropped", stats.dropped)
	}
}

// splice wires a freshly inserted single-item stage at insertedPos into the
// adjacency that used to run from refPos to the stage after the inserted
// one. Connectors that ran from the reference stage into the old neighbour
// (or into the old junction) now end at the inserted item; the old junction,
// which now faces a single-item stage, collapses during reconcile.
func (w *Workflow) splice(refPos, insertedPos int) {
	ref := w.stages[refPos]
	inserted := w.stages[insertedPos]
	oldSep := w.stages[insertedPos+1]
	oldNext := w.stages[insertedPos+2]
	item := inserted.items[0]

	from := newIDSet(ref.ids()...)
	to := newIDSet(oldNext.ids()...)
	if j, ok := oldSep.Junction(); ok {
		to[j.ID] = struct{}{}
	}
	moved := w.connectors.retarget(func(c Connector) bool {
		return from.has(c.Source) && to.has(c.Target)
	}, item.ID)
	w.logger.Debug("Connectors spliced onto inserted stage.", "item", item.ID, "moved", moved)

	w.reconcile(insertedPos-1, nil)
	w.reconcile(insertedPos+1, nil)
}
