package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"quicklaunch/internal/query"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Input      string // rendered search entry
	Query      string
	Items      []query.Item
	Selected   int
	Start, End int // window of Items on screen
	Total      int // catalog size
	Status     string
	HelpModel  help.Model
	KeyMap     help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles    *Styles
	rowRender *RowRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showIcons bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:    styles,
		rowRender: NewRowRenderer(styles, showIcons),
	}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(state.Input)
	content.WriteString("\n")

	if len(state.Items) == 0 {
		if state.Query == "" {
			content.WriteString(r.styles.Dim.Render("  No applications found"))
		} else {
			content.WriteString(r.styles.Dim.Render("  No matches"))
		}
		content.WriteString("\n")
	}

	rowWidth := state.Width - r.styles.Main.GetHorizontalFrameSize()
	for i := state.Start; i < state.End && i < len(state.Items); i++ {
		content.WriteString(r.rowRender.RenderRow(state.Items[i], i == state.Selected, state.Query, rowWidth))
		content.WriteString("\n")
	}

	content.WriteString(r.renderFooter(state))

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderFooter(state ViewState) string {
	var parts []string

	if state.Status != "" {
		parts = append(parts, r.styles.Status.Render(state.Status))
	} else if len(state.Items) > 0 {
		parts = append(parts, r.styles.Scroll.Render(
			fmt.Sprintf("%d-%d of %d (%d apps)", state.Start+1, state.End, len(state.Items), state.Total)))
	}

	if state.KeyMap != nil {
		parts = append(parts, r.styles.Help.Render(state.HelpModel.View(state.KeyMap)))
	}

	return strings.Join(parts, "\n")
}
