// internal/itemid/doc.go

/*
Package itemid provides the opaque identifier carried by every item of a flow
diagram, along with the generators used to mint fresh identifiers.

The flow engine only requires identifiers to be unique within a workflow; it
never inspects their structure. Identifiers supplied by users (for example in a
diagram definition file) are validated by Parse, while identifiers created by
the engine itself (start, end and junction items) come from a Generator.
*/
package itemid
