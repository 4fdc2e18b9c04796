package query

import (
	"strings"

	"quicklaunch/internal/catalog"
)

// Apply computes the visible rows for query. An empty query shows the whole
// catalog. Otherwise rows whose name contains the query, ignoring case, are
// kept in catalog order, preceded by the arithmetic row when eval accepts
// the raw query. The first row is selected. eval may be nil.
func Apply(src catalog.Source, query string, eval Evaluator) View {
	apps := src.Applications()

	if query == "" {
		items := make([]Item, 0, len(apps))
		for _, app := range apps {
			items = append(items, itemFromApplication(app))
		}
		return newView(items)
	}

	var items []Item
	if eval != nil {
		if result, ok := eval(query); ok {
			items = append(items, Item{
				Name:      query,
				Icon:      CalculatorIcon,
				Synthetic: true,
				Result:    result,
			})
		}
	}

	lower := strings.ToLower(query)
	for _, app := range apps {
		if Matches(app.Name, lower) {
			items = append(items, itemFromApplication(app))
		}
	}

	return newView(items)
}

// Matches reports whether name contains the lower-cased query, ignoring case
func Matches(name, lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), lowerQuery)
}

func newView(items []Item) View {
	selected := NoSelection
	if len(items) > 0 {
		selected = 0
	}
	return View{Items: items, Selected: selected}
}
