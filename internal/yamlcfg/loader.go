package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/stagegrid/internal/config"
	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/specialistvlad/stagegrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions the loader picks up.
var Extensions = []string{".yaml", ".yml"}

type diagramDoc struct {
	Name     string     `yaml:"name"`
	IDScheme string     `yaml:"id_scheme"`
	Stages   []stageDoc `yaml:"stages"`
}

type stageDoc struct {
	Name  string    `yaml:"name"`
	Items []itemDoc `yaml:"items"`
}

type itemDoc struct {
	ID    string            `yaml:"id"`
	Label string            `yaml:"label"`
	Meta  map[string]string `yaml:"meta"`
}

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML diagram loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads every YAML file under paths. Exactly one file may define the
// diagram.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Diagram, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	files, err := fsutil.CollectFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}

	var diagrams []*config.Diagram
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("yamlcfg: read %s: %w", file, err)
		}
		d, err := Parse(content)
		if err != nil {
			return nil, fmt.Errorf("yamlcfg: %s: %w", file, err)
		}
		diagrams = append(diagrams, d)
	}

	diagram, err := config.Single(diagrams)
	if err != nil {
		return nil, err
	}
	diagram.Files = files
	if err := diagram.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("YAML loading complete.", "diagram", diagram.Name,
		"stages", len(diagram.Stages), "items", diagram.ItemCount())
	return diagram, nil
}

// Parse decodes a single diagram document. Unknown keys are rejected.
func Parse(data []byte) (*config.Diagram, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("definition payload is empty")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc diagramDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode definition: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("definition must hold a single YAML document")
	}
	return doc.toModel(), nil
}

func (d diagramDoc) toModel() *config.Diagram {
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
			stage.Items = append(stage.Items, &config.ItemDefinition{
				ID:    item.ID,
				Label: item.Label,
				Meta:  item.Meta,
			})
		}
		out.Stages = append(out.Stages, stage)
	}
	return out
}
