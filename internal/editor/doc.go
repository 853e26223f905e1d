// Package editor hosts a single flow.Workflow for concurrent callers.
//
// # Why Editor Exists
//
// The flow core is synchronous and does no locking of its own. Hosts that
// accept edits from several sources (socket.io clients, the CLI) need one
// place that serializes mutations and tells interested parties about the new
// state. Editor is that place:
//   - Apply runs one Command at a time under a mutex.
//   - Every successful command bumps a version and publishes an Update
//     carrying a snapshot taken under the same lock.
//   - Subscribers receive updates on buffered channels; a slow subscriber
//     only ever misses intermediate versions, never the latest one.
package editor
