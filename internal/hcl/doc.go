// Package hcl provides the HCL implementation of config.Loader. It parses
// definition files with hclparse, decodes them with gohcl and translates the
// result into the format-agnostic config.Diagram. Free-form item metadata is
// evaluated as a cty value and bound to Go with gocty.
//
// A definition file looks like:
//
//	diagram "release" {
//	  id_scheme = "sequence"
//
//	  stage "build" {
//	    item "compile" {
//	      label = "Compile"
//	      meta  = { owner = "ci" }
//	    }
//	    item "lint" {}
//	  }
//	}
package hcl
