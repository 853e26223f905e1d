package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/stagegrid/internal/builder"
	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/flow"
	"github.com/specialistvlad/stagegrid/internal/fsutil"
	"github.com/specialistvlad/stagegrid/internal/hcl"
	"github.com/specialistvlad/stagegrid/internal/yamlcfg"
)

// LoaderFor picks the loader for a definition path. Files are chosen by
// extension; directories by the kind of definition files they contain, HCL
// first.
func LoaderFor(path string) (config.Loader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if !info.IsDir() {
		switch {
		case fsutil.HasExtension(path, hcl.Extension):
			return hcl.NewLoader(), nil
		case fsutil.HasExtension(path, yamlcfg.Extensions...):
			return yamlcfg.NewLoader(), nil
		}
		return nil, fmt.Errorf("unsupported definition file %s: want .hcl, .yaml or .yml", path)
	}

	if files, err := fsutil.FindFilesByExtension(path, hcl.Extension); err != nil {
		return nil, err
	} else if len(files) > 0 {
		return hcl.NewLoader(), nil
	}
	if files, err := fsutil.FindFilesByExtension(path, yamlcfg.Extensions...); err != nil {
		return nil, err
	} else if len(files) > 0 {
		return yamlcfg.NewLoader(), nil
	}
	return nil, fmt.Errorf("no diagram definition files found in %s", path)
}

// load reads the configured definition and builds its workflow.
func (a *App) load(ctx context.Context) (*config.Diagram, *flow.Workflow, error) {
	logger := ctxlog.FromContext(ctx)
	if err := a.config.requireDefinition(); err != nil {
		return nil, nil, err
	}

	loader, err := LoaderFor(a.config.DefinitionPath)
	if err != nil {
		return nil, nil, err
	}
	diagram, err := loader.Load(ctx, a.config.DefinitionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load diagram: %w", err)
	}
	logger.Debug("Diagram loaded.", "name", diagram.Name, "files", diagram.Files)

	var opts []flow.Option
	if a.config.CheckInvariants {
		opts = append(opts, flow.WithInvariantChecks())
	}
	w, err := builder.Build(ctx, diagram, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build diagram %q: %w", diagram.Name, err)
	}
	return diagram, w, nil
}
