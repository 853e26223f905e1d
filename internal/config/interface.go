package config

import "context"

// Loader is the interface for a format-specific diagram loader.
type Loader interface {
	// Load reads every definition file found under paths, translates them
	// into the format-agnostic model and validates the result.
	Load(ctx context.Context, paths ...string) (*Diagram, error)
}
