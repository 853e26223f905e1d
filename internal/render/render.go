package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/stagegrid/internal/flow"
)

// Options select the sections Write emits.
type Options struct {
	Connectors bool
	Items      bool
}

// Write renders a titled diagram followed by the selected tables.
func Write(w io.Writer, name string, version uint64, snap flow.Snapshot, opts Options) error {
	var b strings.Builder
	b.WriteString(Title(name, version))
	b.WriteString("\n")
	b.WriteString(Columns(snap))
	b.WriteString("\n")
	if opts.Connectors {
		b.WriteString(ConnectorTable(snap))
		b.WriteString("\n")
	}
	if opts.Items {
		b.WriteString(ItemTable(snap))
		b.WriteString("\n")
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing rendered diagram: %w", err)
	}
	return nil
}
