package flow

import "fmt"

// ItemRole tags what an item represents in the diagram.
type ItemRole int

const (
	// RoleStage is a user-visible step inside a workflow stage.
	RoleStage ItemRole = iota
	// RoleStart is the single entry item of the diagram.
	RoleStart
	// RoleEnd is the single exit item of the diagram.
	RoleEnd
	// RoleJunction is an aggregation point held by a separator stage.
	RoleJunction
)

var itemRoleNames = map[ItemRole]string{
	RoleStage:    "stage",
	RoleStart:    "start",
	RoleEnd:      "end",
	RoleJunction: "junction",
}

func (r ItemRole) String() string {
	if name, ok := itemRoleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ItemRole(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r ItemRole) MarshalText() ([]byte, error) {
	name, ok := itemRoleNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown item role %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ItemRole) UnmarshalText(text []byte) error {
	for role, name := range itemRoleNames {
		if name == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown item role %q", string(text))
}

// StageRole tags the kind of a stage in the internal sequence.
type StageRole int

const (
	// StageWorkflow holds one or more RoleStage items.
	StageWorkflow StageRole = iota
	// StageStart holds exactly the start item and is always first.
	StageStart
	// StageEnd holds exactly the end item and is always last.
	StageEnd
	// StageSeparator sits between two substantive stages and holds at most a
	// junction item.
	StageSeparator
)

var stageRoleNames = map[StageRole]string{
	StageWorkflow:  "workflow",
	StageStart:     "start",
	StageEnd:       "end",
	StageSeparator: "separator",
}

func (r StageRole) String() string {
	if name, ok := stageRoleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("StageRole(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r StageRole) MarshalText() ([]byte, error) {
	name, ok := stageRoleNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown stage role %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *StageRole) UnmarshalText(text []byte) error {
	for role, name := range stageRoleNames {
		if name == string(text) {
			*r = role
			return nil
		}
	}
	return fmt.Errorf("unknown stage role %q", string(text))
}

// isTerminal reports whether the role belongs to the fixed start or end stage.
func (r StageRole) isTerminal() bool {
	return r == StageStart || r == StageEnd
}
