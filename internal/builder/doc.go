/*
Package builder turns a format-agnostic config.Diagram into a live
flow.Workflow.

The builder never assembles stages or connectors directly. It replays the
definition through the workflow's public mutation surface:

 1. Generator selection: the diagram's id scheme picks the generator used
    for the start, end and junction items.

 2. Stage replay: for each defined stage, in order, the first item is
    inserted as a new stage after the previous one, and the remaining
    items are added to it one at a time.

Because every step is an ordinary mutation, the resulting workflow satisfies
the junction invariant and carries exactly the connectors an interactive
user would have produced with the same edits.
*/
package builder
