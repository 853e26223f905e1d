package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/fsutil"
)

// Extension is the file extension the loader picks up.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL diagram loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses every .hcl file under paths. Exactly one diagram block must be
// defined across all of them.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Diagram, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var diagrams []*config.Diagram
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, d := range root.Diagrams {
			translated, err := l.translateDiagram(ctx, d)
			if err != nil {
				return nil, fmt.Errorf("in HCL file %s: %w", file, err)
			}
			diagrams = append(diagrams, translated)
		}
	}

	diagram, err := config.Single(diagrams)
	if err != nil {
		return nil, err
	}
	diagram.Files = files
	if err := diagram.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "diagram", diagram.Name,
		"stages", len(diagram.Stages), "items", diagram.ItemCount())
	return diagram, nil
}
