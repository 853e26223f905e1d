package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/specialistvlad/stagegrid/internal/flow"
	"github.com/specialistvlad/stagegrid/internal/itemid"
)

// Connector kinds shown in the connector table.
const (
	KindDirect       = "direct"
	KindIntoJunction = "into junction"
	KindFromJunction = "from junction"
)

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	return tw
}

// ConnectorTable lists every connector in its maintained order.
func ConnectorTable(snap flow.Snapshot) string {
	junctions := make(map[itemid.ID]bool)
	names := make(map[itemid.ID]string)
	for _, st := range snap.Stages {
		for _, item := range st.Items {
			names[item.ID] = item.DisplayName()
			if item.Role == flow.RoleJunction {
				junctions[item.ID] = true
			}
		}
	}
	name := func(id itemid.ID) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id.String()
	}

	tw := newTable()
	tw.AppendHeader(table.Row{"#", "Source", "Target", "Kind"})
	for i, c := range snap.Connectors {
		kind := KindDirect
		switch {
		case junctions[c.Source]:
			kind = KindFromJunction
		case junctions[c.Target]:
			kind = KindIntoJunction
		}
		tw.AppendRow(table.Row{i + 1, name(c.Source), name(c.Target), kind})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// ItemTable lists every item with the stage that holds it. Junctions are
// listed against the separator they sit in.
func ItemTable(snap flow.Snapshot) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"Stage", "ID", "Role", "Label", "Meta"})
	for _, st := range snap.Stages {
		stage := fmt.Sprintf("%d", st.Index)
		if st.Role == flow.StageSeparator {
			stage = "-"
		}
		for _, item := range st.Items {
			tw.AppendRow(table.Row{stage, item.ID.String(), item.Role.String(), item.Label, formatMeta(item.Meta)})
		}
	}
	return tw.Render()
}

func formatMeta(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + meta[k]
	}
	return strings.Join(parts, ", ")
}
