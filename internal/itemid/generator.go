// internal/itemid/generator.go
package itemid

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Scheme names accepted by NewGenerator.
const (
	SchemeUUID     = "uuid"
	SchemeSequence = "sequence"
)

// UUIDGenerator mints random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID implements Generator.
func (UUIDGenerator) NewID() ID {
	return ID(uuid.NewString())
}

// SequenceGenerator mints readable, monotonically numbered identifiers such
// as "n1", "n2". It is safe for concurrent use.
type SequenceGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a sequence generator with the given prefix.
func NewSequence(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// Mints reports whether id has the form this generator produces: the prefix
// followed by decimal digits.
func (g *SequenceGenerator) Mints(id ID) bool {
	digits, ok := strings.CutPrefix(string(id), g.prefix)
	if !ok || digits == "" {
		return false
	}
	_, err := strconv.ParseUint(digits, 10, 64)
	return err == nil
}

// NewID implements Generator.
func (g *SequenceGenerator) NewID() ID {
	n := g.next.Add(1)
	return ID(g.prefix + strconv.FormatUint(n, 10))
}

// NewGenerator returns the generator registered for scheme. An empty scheme
// selects UUIDs.
func NewGenerator(scheme string) (Generator, error) {
	switch scheme {
	case "", SchemeUUID:
		return UUIDGenerator{}, nil
	case SchemeSequence:
		return NewSequence("n"), nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q: must be %q or %q", scheme, SchemeUUID, SchemeSequence)
	}
}
