// Package render draws workflow snapshots as text: stage columns laid out
// with lipgloss, connector and item listings as go-pretty tables.
package render
