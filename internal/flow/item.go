package flow

import (
	"maps"

	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Item is a single node of the diagram. Items are compared by ID only.
type Item struct {
	ID    itemid.ID         `json:"id"`
	Role  ItemRole          `json:"role"`
	Label string            `json:"label,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

// NewItem returns a user-visible step item ready to be added to a workflow
// stage.
func NewItem(id itemid.ID, label string) Item {
	return Item{ID: id, Role: RoleStage, Label: label}
}

// DisplayName returns the label, falling back to the identifier.
func (i Item) DisplayName() string {
	if i.Label != "" {
		return i.Label
	}
	return i.ID.String()
}

// clone returns the item with its own copy of Meta.
func (i Item) clone() Item {
	i.Meta = maps.Clone(i.Meta)
	return i
}
