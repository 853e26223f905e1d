// Package yamlcfg provides the YAML implementation of config.Loader.
//
// Each file holds one diagram:
//
//	name: release
//	id_scheme: sequence
//	stages:
//	  - name: build
//	    items:
//	      - id: compile
//	        label: Compile
//	        meta: {owner: ci}
//	      - id: lint
package yamlcfg
