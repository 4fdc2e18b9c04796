package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quicklaunch/internal/query"
)

const selectedMarker = "> "

// RowRenderer renders single result rows
type RowRenderer struct {
	styles    *Styles
	showIcons bool
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles, showIcons bool) *RowRenderer {
	return &RowRenderer{
		styles:    styles,
		showIcons: showIcons,
	}
}

// RenderRow renders one row, highlighting the part of the name matching q
func (r *RowRenderer) RenderRow(item query.Item, isSelected bool, q string, width int) string {
	nameStyle := r.styles.Row
	prefix := "  "
	if isSelected {
		nameStyle = r.styles.Selected
		prefix = selectedMarker
	}

	var label string
	if item.Synthetic {
		label = nameStyle.Render(item.Name+query.ResultSeparator) + r.styles.Result.Render(item.Result)
	} else {
		label = highlightMatch(item.Name, q, r.styles.Highlight, nameStyle)
	}

	line := prefix + label
	if r.showIcons && item.Icon != "" {
		line += "  " + r.styles.Icon.Render(item.Icon)
	}

	if isSelected {
		if width > 0 {
			return r.styles.SelectionBg.Width(width).Render(line)
		}
		return r.styles.SelectionBg.Render(line)
	}
	return line
}

func highlightMatch(text, q string, highlightStyle, normalStyle lipgloss.Style) string {
	if q == "" {
		return normalStyle.Render(text)
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(q)

	// byte offsets are only valid when lower-casing kept the length
	if len(lowerText) != len(text) || len(lowerQuery) != len(q) {
		return normalStyle.Render(text)
	}

	index := strings.Index(lowerText, lowerQuery)
	if index == -1 {
		return normalStyle.Render(text)
	}

	before := text[:index]
	match := text[index : index+len(q)]
	after := text[index+len(q):]

	var result []string
	if before != "" {
		result = append(result, normalStyle.Render(before))
	}
	result = append(result, highlightStyle.Render(match))
	if after != "" {
		result = append(result, normalStyle.Render(after))
	}

	return strings.Join(result, "")
}
