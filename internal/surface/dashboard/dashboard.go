// Package dashboard renders the terminal widget grid for `pop dashboard`.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/popdeck/pop/internal/storage"
)

const columns = 3

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(32)

	focusBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(0, 2).
			Width(60)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)
)

// Render draws the full widget grid, or a single expanded widget when focus
// names an anchor. An unknown focus anchor is an error.
func Render(ctx context.Context, s storage.Store, focus string) (string, error) {
	widgets := BuildWidgets(ctx, s)

	if focus != "" {
		for _, w := range widgets {
			if w.Anchor == focus {
				return renderFocused(w), nil
			}
		}
		return "", fmt.Errorf("unknown widget: %s", focus)
	}

	return renderGrid(widgets), nil
}

func renderGrid(widgets []Widget) string {
	cells := make([]string, 0, len(widgets))
	for _, w := range widgets {
		cells = append(cells, renderCell(w))
	}

	var rows []string
	for i := 0; i < len(cells); i += columns {
		end := i + columns
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells[i:end]...))
	}

	header := headerStyle.Render("POP Dashboard")
	return header + "\n" + strings.Join(rows, "\n")
}

func renderCell(w Widget) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(w.Title))
	for _, line := range w.Lines {
		b.WriteString("\n")
		b.WriteString(lineStyle.Render(line))
	}
	return boxStyle.Render(b.String())
}

func renderFocused(w Widget) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(w.Title))
	b.WriteString("\n")
	for _, line := range w.Lines {
		b.WriteString("\n")
		b.WriteString(lineStyle.Render(line))
	}
	return focusBoxStyle.Render(b.String())
}
