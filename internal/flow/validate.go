package flow

import (
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Validate checks every structural invariant of the aggregate and returns an
// error describing the first violation found. A nil result means the stage
// pattern, the item ownership index, the junction rule and the connector set
// are all consistent.
func (w *Workflow) Validate() error {
	if err := w.validateSequence(); err != nil {
		return err
	}
	if err := w.validateOwnership(); err != nil {
		return err
	}
	return w.validateConnectors()
}

func (w *Workflow) validateSequence() error {
	n := len(w.stages)
	if n < 3 || n%2 == 0 {
		return fmt.Errorf("stage sequence has length %d, want odd length >= 3", n)
	}
	for pos, s := range w.stages {
		var want StageRole
		switch {
		case pos == 0:
			want = StageStart
		case pos == n-1:
			want = StageEnd
		case pos%2 == 1:
			want = StageSeparator
		default:
			want = StageWorkflow
		}
		if s.role != want {
			return fmt.Errorf("stage at position %d is %s, want %s", pos, s.role, want)
		}
		if err := validateStageItems(pos, s); err != nil {
			return err
		}
	}
	return nil
}

func validateStageItems(pos int, s *Stage) error {
	switch s.role {
	case StageStart, StageEnd:
		want := RoleStart
		if s.role == StageEnd {
			want = RoleEnd
		}
		if len(s.items) != 1 || s.items[0].Role != want {
			return fmt.Errorf("%s stage at position %d must hold exactly one %s item, has %d", s.role, pos, want, len(s.items))
		}
	case StageSeparator:
		if len(s.items) > 1 {
			return fmt.Errorf("separator at position %d holds %d items", pos, len(s.items))
		}
		if len(s.items) == 1 && s.items[0].Role != RoleJunction {
			return fmt.Errorf("separator at position %d holds a %s item", pos, s.items[0].Role)
		}
	case StageWorkflow:
		if len(s.items) == 0 {
			return fmt.Errorf("workflow stage at position %d is empty", pos)
		}
		for _, item := range s.items {
			if item.Role != RoleStage {
				return fmt.Errorf("workflow stage at position %d holds a %s item %s", pos, item.Role, item.ID)
			}
		}
	}
	return nil
}

func (w *Workflow) validateOwnership() error {
	seen := make(map[itemid.ID]struct{})
	for pos, s := range w.stages {
		for _, item := range s.items {
			if _, dup := seen[item.ID]; dup {
				return fmt.Errorf("item %s appears more than once", item.ID)
			}
			seen[item.ID] = struct{}{}
			if w.owner[item.ID] != s {
				return fmt.Errorf("owner index for item %s does not point at its stage (position %d)", item.ID, pos)
			}
		}
	}
	if len(seen) != len(w.owner) {
		return fmt.Errorf("owner index tracks %d items, sequence holds %d", len(w.owner), len(seen))
	}
	return nil
}

func (w *Workflow) validateConnectors() error {
	expected := make(map[Connector]struct{})
	for pos := 1; pos < len(w.stages); pos += 2 {
		prev, sep, next := w.stages[pos-1], w.stages[pos], w.stages[pos+1]
		junction, has := sep.Junction()
		if has != needsJunction(prev, next) {
			return fmt.Errorf("separator at position %d: junction present=%t with %d and %d neighbouring items",
				pos, has, prev.Len(), next.Len())
		}
		var hub itemid.ID
		if has {
			hub = junction.ID
		}
		for _, c := range desiredConnectors(prev.ids(), next.ids(), hub) {
			expected[c] = struct{}{}
		}
	}

	actual := make(map[Connector]struct{}, w.connectors.len())
	for _, c := range w.connectors.edges {
		if _, dup := actual[c]; dup {
			return fmt.Errorf("duplicate connector %s", c)
		}
		actual[c] = struct{}{}
		if _, ok := w.owner[c.Source]; !ok {
			return fmt.Errorf("connector %s has a dangling source", c)
		}
		if _, ok := w.owner[c.Target]; !ok {
			return fmt.Errorf("connector %s has a dangling target", c)
		}
		if _, ok := expected[c]; !ok {
			return fmt.Errorf("unexpected connector %s", c)
		}
	}
	for c := range expected {
		if _, ok := actual[c]; !ok {
			return fmt.Errorf("missing connector %s", c)
		}
	}
	return nil
}
