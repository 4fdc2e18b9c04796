package ui

import (
	"fmt"
	"io"

	"quicklaunch/internal/query"
)

// WriteRows prints the visible rows one per line, marking the selected row
// with "> ".
func WriteRows(w io.Writer, view query.View, showIcons bool) error {
	for i, item := range view.Items {
		prefix := "  "
		if i == view.Selected {
			prefix = "> "
		}

		line := prefix + item.Label()
		if showIcons && item.Icon != "" {
			line += "\t" + item.Icon
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
