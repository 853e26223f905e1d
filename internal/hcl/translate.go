package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateDiagram converts the HCL-specific diagram schema into the agnostic model.
func (l *Loader) translateDiagram(ctx context.Context, d *Diagram) (*config.Diagram, error) {
	logger := ctxlog.FromContext(ctx).With("diagram", d.Name)
	logger.Debug("Translating HCL diagram to internal config model.", "stages", len(d.Stages))

	out := &config.Diagram{
		Name:     d.Name,
		IDScheme: d.IDScheme,
		Stages:   make([]*config.StageDefinition, 0, len(d.Stages)),
	}
	for _, s := range d.Stages {
		stage := &config.StageDefinition{
			Name:  s.Name,
			Items: make([]*config.ItemDefinition, 0, len(s.Items)),
		}
		for _, item := range s.Items {
			meta, err := decodeMeta(item.Meta)
			if err != nil {
				return nil, fmt.Errorf("stage %q item %q: %w", s.Name, item.ID, err)
			}
			stage.Items = append(stage.Items, &config.ItemDefinition{
				ID:    item.ID,
				Label: item.Label,
				Meta:  meta,
			})
		}
		out.Stages = append(out.Stages, stage)
	}
	return out, nil
}

// metaType is the cty type every meta attribute is converted to.
var metaType = cty.Map(cty.String)

// decodeMeta evaluates a `meta` expression into a string map. Absent or null
// meta yields nil. Numbers and bools are converted to their string form.
func decodeMeta(expr hcl.Expression) (map[string]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("evaluating meta: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("meta must be known at load time")
	}

	converted, err := convert.Convert(val, metaType)
	if err != nil {
		return nil, fmt.Errorf("meta must be a map of strings, got %s: %w", val.Type().FriendlyName(), err)
	}
	var out map[string]string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, fmt.Errorf("binding meta: %w", err)
	}
	return out, nil
}
