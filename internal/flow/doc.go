// Package flow models a directed flow diagram organized into ordered stages and
// keeps its connector set consistent across every structural change.
//
// # Why Flow Package Exists
//
// A diagram editor lets users add steps to a stage, insert whole stages and
// remove steps again. After each of those edits the diagram must still draw as
// a coherent graph: every item of a stage is linked to the neighbouring stages,
// and when two neighbouring stages both hold several items a single junction
// point is placed between them instead of a dense many-to-many fan. The flow
// package owns that bookkeeping so that rendering and editing layers never
// construct connectors or junctions themselves.
//
// # Stage Sequence
//
// Internally a Workflow is an alternating sequence of substantive stages and
// separator stages:
//
//	Start ─ Sep ─ Workflow ─ Sep ─ Workflow ─ Sep ─ End
//	  0      1       2        3       4        5     6
//
// Callers address stages by observable index (Start=0, then each workflow
// stage, then End). Separators are never addressable by index; observable
// index n always sits at internal position 2n (see internalIndex).
//
// # Junction Invariant
//
// For two adjacent substantive stages A and B separated by S:
//
//   - S holds a junction item iff |A| > 1 and |B| > 1.
//   - With a junction J the edges are exactly a→J for each a and J→b for
//     each b.
//   - Without a junction the edges run directly: 1:1, a 1:n fan-out or an
//     n:1 fan-in.
//
// Every mutation re-establishes this for the boundaries it touched. Existing
// connectors are re-anchored in place where possible, so a connector keeps its
// position in Connectors() when only one of its endpoints moves.
//
// # Concurrency
//
// A Workflow is not safe for concurrent use. Hosts that share one across
// goroutines must serialize access; see internal/editor.
package flow
