package config

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// ErrInvalidDiagram is wrapped by every validation failure.
var ErrInvalidDiagram = errors.New("invalid diagram")

// Validate checks the structural rules a diagram must satisfy before it can
// be built: a name, a known id scheme, named non-empty stages and item ids
// that are well formed and unique across the whole diagram.
func (d *Diagram) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("diagram has no name: %w", ErrInvalidDiagram)
	}
	ids, err := itemid.NewGenerator(d.IDScheme)
	if err != nil {
		return fmt.Errorf("diagram %q: %v: %w", d.Name, err, ErrInvalidDiagram)
	}
	// Under the sequence scheme the start, end and junction items take ids
	// from the generator, so user items must stay out of its range.
	seq, _ := ids.(*itemid.SequenceGenerator)

	stages := make(map[string]struct{}, len(d.Stages))
	items := make(map[string]string)
	for i, s := range d.Stages {
		if s.Name == "" {
			return fmt.Errorf("diagram %q: stage %d has no name: %w", d.Name, i, ErrInvalidDiagram)
		}
		if _, dup := stages[s.Name]; dup {
			return fmt.Errorf("diagram %q: stage %q defined more than once: %w", d.Name, s.Name, ErrInvalidDiagram)
		}
		stages[s.Name] = struct{}{}
		if len(s.Items) == 0 {
			return fmt.Errorf("diagram %q: stage %q has no items: %w", d.Name, s.Name, ErrInvalidDiagram)
		}
		for _, item := range s.Items {
			id, err := itemid.Parse(item.ID)
			if err != nil {
				return fmt.Errorf("diagram %q: stage %q: %v: %w", d.Name, s.Name, err, ErrInvalidDiagram)
			}
			if seq != nil && seq.Mints(id) {
				return fmt.Errorf("diagram %q: stage %q: item %q is reserved for generated ids under the %q scheme: %w",
					d.Name, s.Name, item.ID, d.IDScheme, ErrInvalidDiagram)
			}
			if other, dup := items[item.ID]; dup {
				return fmt.Errorf("diagram %q: item %q appears in stage %q and %q: %w",
					d.Name, item.ID, other, s.Name, ErrInvalidDiagram)
			}
			items[item.ID] = s.Name
		}
	}
	return nil
}

// Single picks the only diagram out of everything a loader found.
func Single(diagrams []*Diagram) (*Diagram, error) {
	switch len(diagrams) {
	case 0:
		return nil, fmt.Errorf("no diagram defined: %w", ErrInvalidDiagram)
	case 1:
		return diagrams[0], nil
	default:
		names := make([]string, len(diagrams))
		for i, d := range diagrams {
			names[i] = d.Name
		}
		return nil, fmt.Errorf("expected one diagram, found %d %q: %w", len(diagrams), names, ErrInvalidDiagram)
	}
}
