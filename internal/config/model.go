package config

// Diagram is the unified, format-agnostic representation of a diagram
// definition: an ordered list of workflow stages, each seeded with items.
type Diagram struct {
	Name string
	// IDScheme selects the generator for ids the workflow mints itself
	// (start, end, junctions). Empty means uuid.
	IDScheme string
	Stages   []*StageDefinition
	// Files lists the definition files the diagram was loaded from.
	Files []string
}

// StageDefinition is one workflow stage of a diagram.
type StageDefinition struct {
	Name  string
	Items []*ItemDefinition
}

// ItemDefinition is one item of a stage.
type ItemDefinition struct {
	ID    string
	Label string
	Meta  map[string]string
}

// ItemCount returns the number of items across all stages.
func (d *Diagram) ItemCount() int {
	n := 0
	for _, s := range d.Stages {
		n += len(s.Items)
	}
	return n
}
