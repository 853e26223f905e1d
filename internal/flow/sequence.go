package flow

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// AddItem appends item to the stage at an observable index and rewires both
// of the stage's boundaries. The start and end stages are fixed at one item
// and reject additions.
func (w *Workflow) AddItem(index int, item Item) error {
	pos, stage, err := w.lookup(index)
	if err != nil {
		return fmt.Errorf("add item: %w", err)
	}
	if stage.role.isTerminal() {
		return fmt.Errorf("add item to %s stage: %w", stage.role, ErrInvalidTransition)
	}
	if err := w.checkNewItem(item); err != nil {
		return fmt.Errorf("add item: %w", err)
	}

	stage.add(item.clone())
	w.owner[item.ID] = stage
	w.logger.Debug("Item added.", "stage", index, "item", item.ID, "stage_items", stage.Len())

	w.reconcile(pos-1, nil)
	w.reconcile(pos+1, nil)
	w.assertConsistent("AddItem")
	return nil
}

// InsertStageAfter inserts a new separator and then a new workflow stage
// seeded with item directly after the stage at an observable index. The new
// stage becomes observable index+1. Inserting after the end stage is an
// invalid transition.
func (w *Workflow) InsertStageAfter(index int, item Item) error {
	pos, ref, err := w.lookup(index)
	if err != nil {
		return fmt.Errorf("insert stage: %w", err)
	}
	if ref.role == StageEnd || ref.role == StageSeparator {
		return fmt.Errorf("insert stage after %s stage: %w", ref.role, ErrInvalidTransition)
	}
	if err := w.checkNewItem(item); err != nil {
		return fmt.Errorf("insert stage: %w", err)
	}

	inserted := newStage(StageWorkflow, item.clone())
	w.stages = slices.Insert(w.stages, pos+1, newStage(StageSeparator), inserted)
	w.owner[item.ID] = inserted
	w.logger.Debug("Stage inserted.", "after", index, "stage", index+1, "item", item.ID)

	w.splice(pos, pos+2)
	w.assertConsistent("InsertStageAfter")
	return nil
}

// RemoveItem removes an item from the stage at an observable index. When the
// stage becomes empty the stage and its trailing separator leave the sequence
// and the newly adjacent stages are rewired. The start and end stages can
// never lose their item.
func (w *Workflow) RemoveItem(index int, id itemid.ID) error {
	pos, stage, err := w.lookup(index)
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	if stage.role.isTerminal() {
		return fmt.Errorf("remove item from %s stage: %w", stage.role, ErrInvalidTransition)
	}
	if !stage.Contains(id) {
		return fmt.Errorf("remove item %s from stage %d: %w", id, index, ErrNotFound)
	}

	stage.remove(id)
	delete(w.owner, id)
	detached := []itemid.ID{id}
	w.logger.Debug("Item removed.", "stage", index, "item", id, "stage_items", stage.Len())

	if stage.Len() > 0 {
		w.reconcile(pos-1, detached)
		w.reconcile(pos+1, detached)
		w.assertConsistent("RemoveItem")
		return nil
	}

	if j, ok := w.stages[pos+1].Junction(); ok {
		delete(w.owner, j.ID)
		detached = append(detached, j.ID)
	}
	w.stages = slices.Delete(w.stages, pos, pos+2)
	w.logger.Debug("Stage removed.", "stage", index)

	w.reconcile(pos-1, detached)
	w.assertConsistent("RemoveItem")
	return nil
}

// checkNewItem rejects items the caller may not add: non-step roles, empty
// ids and ids already present in the workflow.
func (w *Workflow) checkNewItem(item Item) error {
	if item.Role != RoleStage {
		return fmt.Errorf("item %s has role %s, want %s: %w", item.ID, item.Role, RoleStage, ErrInvalidTransition)
	}
	if item.ID.IsZero() {
		return fmt.Errorf("item id is empty: %w", ErrInvalidTransition)
	}
	if _, exists := w.owner[item.ID]; exists {
		return fmt.Errorf("item %s already exists: %w", item.ID, ErrInvalidTransition)
	}
	return nil
}

func (w *Workflow) assertConsistent(op string) {
	if !w.checks {
		return
	}
	if err := w.Validate(); err != nil {
		panic(fmt.Sprintf("flow: %s left the workflow inconsistent: %v", op, err))
	}
}
