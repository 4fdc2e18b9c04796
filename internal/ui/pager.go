package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/noborus/ov/oviewer"

	"quicklaunch/internal/domain"
)

// CatalogTable renders the catalog rows as a bordered table in catalog order
func CatalogTable(apps []domain.Application, showIcons bool) string {
	headers := []string{"NAME", "EXEC", "FILE"}
	if showIcons {
		headers = []string{"NAME", "ICON", "EXEC", "FILE"}
	}

	rows := make([][]string, 0, len(apps))
	for _, app := range apps {
		if showIcons {
			rows = append(rows, []string{app.Name, app.Icon, app.Exec, app.Path})
		} else {
			rows = append(rows, []string{app.Name, app.Exec, app.Path})
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

// ShowInPager pages content with ov. It takes over the terminal until the
// user quits the pager.
func ShowInPager(content string) error {
	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// leave the screen clean on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
