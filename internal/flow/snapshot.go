package flow

// Snapshot is a detached, serializable copy of a workflow's stages and
// connectors, used by hosts that publish or render the diagram.
type Snapshot struct {
	Stages     []StageSnapshot `json:"stages"`
	Connectors []Connector     `json:"connectors"`
}

// StageSnapshot describes one stage of the internal sequence. Index is the
// observable index, or -1 for separators.
type StageSnapshot struct {
	Index int       `json:"index"`
	Role  StageRole `json:"role"`
	Items []Item    `json:"items"`
}

// Snapshot copies the current state of the workflow.
func (w *Workflow) Snapshot() Snapshot {
	snap := Snapshot{
		Stages:     make([]StageSnapshot, 0, len(w.stages)),
		Connectors: w.connectors.all(),
	}
	for pos, s := range w.stages {
		idx, ok := observableIndex(pos)
		if !ok {
			idx = -1
		}
		snap.Stages = append(snap.Stages, StageSnapshot{
			Index: idx,
			Role:  s.role,
			Items: s.Items(),
		})
	}
	return snap
}

// Observable returns the snapshot's substantive stages only.
func (s Snapshot) Observable() []StageSnapshot {
	var out []StageSnapshot
	for _, st := range s.Stages {
		if st.Role != StageSeparator {
			out = append(out, st)
		}
	}
	return out
}
