package query

import "quicklaunch/internal/domain"

// NoSelection is the selection index of a view with nothing selected
const NoSelection = -1

// CalculatorIcon is the icon hint of the arithmetic result row
const CalculatorIcon = "accessories-calculator"

// ResultSeparator joins the query and its value in the result row label
const ResultSeparator = " = "

// Direction represents movement directions
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
)

// Evaluator turns a query into an arithmetic result, reporting false when
// the query is not arithmetic.
type Evaluator func(query string) (string, bool)

// Item is one visible row. Catalog rows carry the application they were
// built from; the arithmetic row is Synthetic and carries its Result.
type Item struct {
	Name      string
	Icon      string
	Exec      string
	Path      string
	Synthetic bool
	Result    string
}

// Label is the text shown for the row
func (i Item) Label() string {
	if i.Synthetic {
		return i.Name + ResultSeparator + i.Result
	}
	return i.Name
}

func itemFromApplication(app domain.Application) Item {
	return Item{
		Name: app.Name,
		Icon: app.Icon,
		Exec: app.Exec,
		Path: app.Path,
	}
}

// View is the outcome of applying a query: the visible rows in display
// order and the selected row index, or NoSelection.
type View struct {
	Items    []Item
	Selected int
}

// Synthetic returns the arithmetic row if the view has one
func (v View) Synthetic() (Item, bool) {
	if len(v.Items) > 0 && v.Items[0].Synthetic {
		return v.Items[0], true
	}
	return Item{}, false
}

// CommitKind says what the front end should do with a commit
type CommitKind int

const (
	// CommitNone means there was nothing to commit
	CommitNone CommitKind = iota
	// CommitCopy means Value goes to the clipboard
	CommitCopy
	// CommitLaunch means Value is an exec template for the launch dispatcher
	CommitLaunch
)

func (k CommitKind) String() string {
	switch k {
	case CommitCopy:
		return "copy"
	case CommitLaunch:
		return "launch"
	default:
		return "none"
	}
}

// Commit is the action resulting from activating the selection
type Commit struct {
	Kind  CommitKind
	Value string
	Item  Item
}
