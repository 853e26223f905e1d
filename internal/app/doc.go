// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the render, serve, watch and edit flows,
// decoupled from any specific entrypoint like the CLI.
package app
