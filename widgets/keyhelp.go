package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// RenderSwatch renders a single colored block
func RenderSwatch(hex string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	return style.Render("■")
}

// RenderLegendItem renders a single legend item: "■ name"
func RenderLegendItem(hex, name string) string {
	return fmt.Sprintf("%s %s", RenderSwatch(hex), name)
}

// RenderLegend joins legend items on one line
func RenderLegend(items ...string) string {
	return strings.Join(items, "  ")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []key.Binding
}

// RenderKeyHelp formats key bindings in a friendly way. Disabled bindings
// are left out.
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			if !k.Enabled() {
				continue
			}
			h := k.Help()
			lines = append(lines, fmt.Sprintf("  %-14s %s", h.Key, h.Desc))
		}
	}
	return strings.Join(lines, "\n")
}
