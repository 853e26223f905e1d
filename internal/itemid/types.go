// internal/itemid/types.go
package itemid

// ID is the opaque, unique identifier of a single diagram item.
type ID string

// String returns the identifier in its raw form.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}

// Generator mints identifiers that are unique for the lifetime of a workflow.
type Generator interface {
	NewID() ID
}
