// Package cli is responsible for parsing command-line arguments and flags
// and turning them into app.Config values and App calls. It is built on
// cobra: a root command with global logging flags and the render, serve,
// watch and edit subcommands.
package cli
