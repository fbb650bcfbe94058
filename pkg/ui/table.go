package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyValueTable aligns labels in a right-justified column, the way the
// upload summary is printed:
//
//	   ID  2cdc28f0-017a-49c4-9ed7-87056c83901
//	 Name  photo.png
type KeyValueTable struct {
	Title string
	rows  [][2]string
}

// NewKeyValueTable creates an empty table with an optional title
func NewKeyValueTable(title string) *KeyValueTable {
	return &KeyValueTable{Title: title}
}

// Add appends a row
func (t *KeyValueTable) Add(key, value string) {
	t.rows = append(t.rows, [2]string{key, value})
}

// Len returns the row count
func (t *KeyValueTable) Len() int {
	return len(t.rows)
}

// Render renders the table as a string. Widths are measured with
// lipgloss.Width so pre-styled cells align correctly.
func (t *KeyValueTable) Render() string {
	var builder strings.Builder

	width := 0
	for _, row := range t.rows {
		if w := lipgloss.Width(row[0]); w > width {
			width = w
		}
	}

	if t.Title != "" {
		builder.WriteString("\n")
		builder.WriteString(" " + strings.Repeat(" ", width) + "  " + StyleHeader.Render(t.Title))
		builder.WriteString("\n")
	}

	for _, row := range t.rows {
		key := padLeft(row[0], width)
		builder.WriteString(" " + StyleTableHeader.Render(key) + "  " + StyleTableRow.Render(row[1]))
		builder.WriteString("\n")
	}

	return builder.String()
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

// RenderSimpleList renders a simple bulleted list
func RenderSimpleList(items []string) string {
	var builder strings.Builder
	for _, item := range items {
		builder.WriteString(StyleInfo.Render("  • "))
		builder.WriteString(item)
		builder.WriteString("\n")
	}
	return builder.String()
}

// RenderKeyValue renders a key-value pair
func RenderKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s",
		StyleAccent.Render(key),
		value,
	)
}
