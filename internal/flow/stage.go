package flow

import (
	"slices"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Stage is an ordered holder of items. Stages are created and destroyed only
// by their Workflow; callers receive read-only pointers whose identity is
// stable for the stage's lifetime.
type Stage struct {
	role  StageRole
	items []Item
}

func newStage(role StageRole, items ...Item) *Stage {
	return &Stage{role: role, items: items}
}

// Role returns the stage kind.
func (s *Stage) Role() StageRole {
	return s.role
}

// Len returns the number of items in the stage.
func (s *Stage) Len() int {
	return len(s.items)
}

// Items returns a copy of the stage's items in order.
func (s *Stage) Items() []Item {
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = item.clone()
	}
	return out
}

// IsSeparator reports whether the stage is a separator.
func (s *Stage) IsSeparator() bool {
	return s.role == StageSeparator
}

// Junction returns the junction item held by a separator stage.
func (s *Stage) Junction() (Item, bool) {
	if s.role != StageSeparator || len(s.items) == 0 {
		return Item{}, false
	}
	return s.items[0].clone(), true
}

// Contains reports whether an item with the given id belongs to the stage.
func (s *Stage) Contains(id itemid.ID) bool {
	return s.indexOf(id) >= 0
}

func (s *Stage) indexOf(id itemid.ID) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Stage) add(item Item) {
	s.items = append(s.items, item)
}

func (s *Stage) remove(id itemid.ID) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

func (s *Stage) ids() []itemid.ID {
	out := make([]itemid.ID, len(s.items))
	for i, item := range s.items {
		out[i] = item.ID
	}
	return out
}
