package flow

import (
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// ObservableStages returns the substantive stages in order: start, every
// workflow stage, end. Separators are excluded.
func (w *Workflow) ObservableStages() []*Stage {
	out := make([]*Stage, 0, len(w.stages)/2+1)
	for i := 0; i < len(w.stages); i += 2 {
		out = append(out, w.stages[i])
	}
	return out
}

// AllStages returns the full internal sequence including separators.
func (w *Workflow) AllStages() []*Stage {
	out := make([]*Stage, len(w.stages))
	copy(out, w.stages)
	return out
}

// StageCount returns the number of observable stages.
func (w *Workflow) StageCount() int {
	return len(w.stages)/2 + 1
}

// StageAt returns the stage at an observable index.
func (w *Workflow) StageAt(index int) (*Stage, error) {
	_, s, err := w.lookup(index)
	return s, err
}

// WidestStage returns the stage with the most items over the internal
// sequence. Ties go to the first occurrence.
func (w *Workflow) WidestStage() *Stage {
	widest := w.stages[0]
	for _, s := range w.stages[1:] {
		if s.Len() > widest.Len() {
			widest = s
		}
	}
	return widest
}

// AllItems returns every item, junctions included, in stage order and then
// stage-internal order.
func (w *Workflow) AllItems() []Item {
	out := make([]Item, 0, len(w.owner))
	for _, s := range w.stages {
		for _, item := range s.items {
			out = append(out, item.clone())
		}
	}
	return out
}

// Connectors returns a copy of the connector set in its maintained order.
func (w *Workflow) Connectors() []Connector {
	return w.connectors.all()
}

// Junctions returns every junction item currently held by a separator.
func (w *Workflow) Junctions() []Item {
	var out []Item
	for _, s := range w.stages {
		if j, ok := s.Junction(); ok {
			out = append(out, j)
		}
	}
	return out
}

// Item looks up an item by id.
func (w *Workflow) Item(id itemid.ID) (Item, bool) {
	s, ok := w.owner[id]
	if !ok {
		return Item{}, false
	}
	return s.items[s.indexOf(id)].clone(), true
}

// StageOf returns the stage currently holding the item.
func (w *Workflow) StageOf(id itemid.ID) (*Stage, bool) {
	s, ok := w.owner[id]
	return s, ok
}

// ObservableIndex returns the observable index of a substantive stage.
func (w *Workflow) ObservableIndex(stage *Stage) (int, error) {
	pos, err := w.position(stage)
	if err != nil {
		return 0, err
	}
	idx, ok := observableIndex(pos)
	if !ok {
		return 0, fmt.Errorf("separator stages have no observable index: %w", ErrNotFound)
	}
	return idx, nil
}

// PreviousStage walks distance positions back through the internal sequence.
// Distance 1 reaches the adjacent separator, distance 2 the previous
// substantive stage.
func (w *Workflow) PreviousStage(stage *Stage, distance int) (*Stage, error) {
	return w.walk(stage, distance, -1)
}

// NextStage walks distance positions forward through the internal sequence.
// Distance 1 reaches the adjacent separator, distance 2 the next substantive
// stage.
func (w *Workflow) NextStage(stage *Stage, distance int) (*Stage, error) {
	return w.walk(stage, distance, 1)
}

func (w *Workflow) walk(stage *Stage, distance, direction int) (*Stage, error) {
	pos, err := w.position(stage)
	if err != nil {
		return nil, err
	}
	if distance < 0 {
		return nil, fmt.Errorf("negative distance %d: %w", distance, ErrOutOfRange)
	}
	target := pos + direction*distance
	if target < 0 || target >= len(w.stages) {
		return nil, fmt.Errorf("walk %d from position %d: %w", direction*distance, pos, ErrOutOfRange)
	}
	return w.stages[target], nil
}

// position finds a stage in the internal sequence by identity.
func (w *Workflow) position(stage *Stage) (int, error) {
	if stage == nil {
		return 0, fmt.Errorf("nil stage: %w", ErrNotFound)
	}
	for i, s := range w.stages {
		if s == stage {
			return i, nil
		}
	}
	return 0, fmt.Errorf("stage is not part of this workflow: %w", ErrNotFound)
}

// lookup resolves an observable index into its internal position and stage.
func (w *Workflow) lookup(index int) (int, *Stage, error) {
	// Bound the observable index before mapping it so large values cannot
	// overflow into a valid-looking position.
	if index < 0 || index > (len(w.stages)-1)/2 {
		return 0, nil, fmt.Errorf("stage %d: %w", index, ErrNotFound)
	}
	pos := internalIndex(index)
	return pos, w.stages[pos], nil
}
