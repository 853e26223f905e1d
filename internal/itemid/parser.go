// internal/itemid/parser.go
package itemid

import (
	"fmt"
	"regexp"
)

// idRegex accepts the characters allowed in a user supplied identifier.
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:-]+$`)

// isValidName checks for undesirable but technically valid names.
func isValidName(raw string) bool {
	if raw == "." || raw == ".." || raw == "-" {
		return false
	}
	return true
}

// Parse validates a user supplied identifier and returns it as an ID.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return "", fmt.Errorf("identifier cannot be empty")
	}
	if !idRegex.MatchString(raw) {
		return "", fmt.Errorf("invalid identifier format: %q", raw)
	}
	if !isValidName(raw) {
		return "", fmt.Errorf("invalid identifier name: %q", raw)
	}
	return ID(raw), nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and package-level fixtures.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}
