// Package render formats shell output as bordered tables.
package render

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var (
	colorBlue = lipgloss.Color("#3b82f6")
	colorDim  = lipgloss.Color("#6b7280")

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// newTable creates a bordered table with the shared styling.
func newTable(headers ...string) *ltable.Table {
	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// MultiValueMap renders a group-to-values mapping as a two-column table, one
// row per value. Groups are sorted for stable output; a group without values
// still gets a row so the user sees every group.
func MultiValueMap(m map[string][]string, keyHeader, valueHeader string) string {
	table := newTable(keyHeader, valueHeader)

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		values := m[key]
		if len(values) == 0 {
			table.Row(key, "")
			continue
		}
		for _, value := range values {
			table.Row(key, value)
		}
	}

	return table.Render()
}

// List renders a single-column table.
func List(header string, items []string) string {
	table := newTable(header)
	for _, item := range items {
		table.Row(item)
	}
	return table.Render()
}
