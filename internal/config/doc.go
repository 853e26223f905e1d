// Package config defines the format-agnostic diagram definition model and the
// Loader interface that format-specific packages implement.
//
// A Diagram is the single source of truth for the builder, which replays it
// onto a flow.Workflow. Concrete loaders for HCL and YAML live in separate
// packages.
package config
