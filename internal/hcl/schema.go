package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is used to decode every top-level block of a definition file.
type fileRoot struct {
	Diagrams []*Diagram `hcl:"diagram,block"`
	Remain   hcl.Body   `hcl:",remain"`
}

// Diagram is the HCL shape of a `diagram "name" {}` block.
type Diagram struct {
	Name     string   `hcl:"name,label"`
	IDScheme string   `hcl:"id_scheme,optional"`
	Stages   []*Stage `hcl:"stage,block"`
}

// Stage is the HCL shape of a `stage "name" {}` block.
type Stage struct {
	Name  string  `hcl:"name,label"`
	Items []*Item `hcl:"item,block"`
}

// Item is the HCL shape of an `item "id" {}` block.
type Item struct {
	ID    string         `hcl:"id,label"`
	Label string         `hcl:"label,optional"`
	Meta  hcl.Expression `hcl:"meta,optional"`
}
