package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/stagegrid/internal/flow"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headerStyle    = lipgloss.NewStyle().Bold(true)
	terminalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	itemStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	junctionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
	columnStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Columns lays the stage sequence out left to right. Workflow and terminal
// stages become bordered columns; separators become a narrow gap that shows
// the junction when one exists.
func Columns(snap flow.Snapshot) string {
	blocks := make([]string, 0, len(snap.Stages))
	for _, st := range snap.Stages {
		if st.Role == flow.StageSeparator {
			blocks = append(blocks, separatorBlock(st))
			continue
		}
		blocks = append(blocks, stageBlock(st))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, blocks...)
}

func stageBlock(st flow.StageSnapshot) string {
	var header string
	switch st.Role {
	case flow.StageStart:
		header = "Start"
	case flow.StageEnd:
		header = "End"
	default:
		header = fmt.Sprintf("Stage %d", st.Index)
	}

	lines := []string{headerStyle.Render(header)}
	for _, item := range st.Items {
		style := itemStyle
		if st.Role != flow.StageWorkflow {
			style = terminalStyle
		}
		lines = append(lines, style.Render(item.DisplayName()))
	}
	return columnStyle.Render(strings.Join(lines, "\n"))
}

func separatorBlock(st flow.StageSnapshot) string {
	if len(st.Items) == 1 && st.Items[0].Role == flow.RoleJunction {
		return junctionStyle.Render(" ─◆─ ")
	}
	return separatorStyle.Render(" ──▶ ")
}

// Title renders a diagram heading.
func Title(name string, version uint64) string {
	if version == 0 {
		return titleStyle.Render(name)
	}
	return titleStyle.Render(fmt.Sprintf("%s (v%d)", name, version))
}
