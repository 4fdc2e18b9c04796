package query

import "quicklaunch/internal/catalog"

const defaultPageSize = 10

// Session owns the query text, the visible rows and the selection for one
// launcher window. It is used from the interaction loop only.
type Session struct {
	src      catalog.Source
	eval     Evaluator
	query    string
	view     View
	pageSize int
	offset   int
}

// NewSession creates a session showing the whole catalog. eval may be nil,
// which turns the arithmetic row off.
func NewSession(src catalog.Source, eval Evaluator) *Session {
	s := &Session{
		src:      src,
		eval:     eval,
		pageSize: defaultPageSize,
	}
	s.SetQuery("")
	return s
}

// SetQuery recomputes the visible rows for text and selects the first one
func (s *Session) SetQuery(text string) {
	s.query = text
	s.view = Apply(s.src, text, s.eval)
	s.offset = 0
}

// Query returns the current query text
func (s *Session) Query() string {
	return s.query
}

// View returns the visible rows and the selection
func (s *Session) View() View {
	return s.view
}

// Len returns the number of visible rows
func (s *Session) Len() int {
	return len(s.view.Items)
}

// CatalogLen returns the number of catalog rows behind the session
func (s *Session) CatalogLen() int {
	return s.src.Len()
}

// Selected returns the selected row
func (s *Session) Selected() (Item, bool) {
	if s.view.Selected == NoSelection {
		return Item{}, false
	}
	return s.view.Items[s.view.Selected], true
}

// Select moves the selection to index, clamped to the visible rows
func (s *Session) Select(index int) {
	if len(s.view.Items) == 0 {
		s.view.Selected = NoSelection
		return
	}
	s.view.Selected = s.clamp(index)
	s.ensureVisible()
}

// ClearSelection leaves the rows in place with nothing selected
func (s *Session) ClearSelection() {
	s.view.Selected = NoSelection
}

// SetPageSize sets how many rows fit on screen. Values below 1 are raised to 1.
func (s *Session) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	s.pageSize = n
	s.ensureVisible()
}

// PageSize returns the number of rows that fit on screen
func (s *Session) PageSize() int {
	return s.pageSize
}

// Window returns the half-open range of rows to draw so that the selection
// stays on screen.
func (s *Session) Window() (start, end int) {
	start = s.offset
	end = start + s.pageSize
	if end > len(s.view.Items) {
		end = len(s.view.Items)
	}
	return start, end
}

// Navigate moves the selection. It never wraps. Moving down with nothing
// selected selects the first row.
func (s *Session) Navigate(direction Direction) {
	if len(s.view.Items) == 0 {
		return
	}

	if s.view.Selected == NoSelection {
		switch direction {
		case DirectionDown, DirectionPageDown, DirectionHome:
			s.Select(0)
		case DirectionEnd:
			s.Select(len(s.view.Items) - 1)
		}
		return
	}

	cursor := s.view.Selected
	switch direction {
	case DirectionUp:
		cursor--
	case DirectionDown:
		cursor++
	case DirectionPageUp:
		cursor -= s.pageSize
	case DirectionPageDown:
		cursor += s.pageSize
	case DirectionHome:
		cursor = 0
	case DirectionEnd:
		cursor = len(s.view.Items) - 1
	}
	s.Select(cursor)
}

// Commit resolves the action for the current selection.
//
// The arithmetic row commits its value for the clipboard. A catalog row
// commits the exec template registered for its name. With nothing selected,
// an arithmetic query commits its value directly; otherwise the first row
// is selected and committed.
func (s *Session) Commit() Commit {
	if item, ok := s.Selected(); ok {
		return s.activate(item)
	}

	if s.eval != nil && s.query != "" {
		if result, ok := s.eval(s.query); ok {
			return Commit{Kind: CommitCopy, Value: result}
		}
	}

	if len(s.view.Items) == 0 {
		return Commit{Kind: CommitNone}
	}
	s.Select(0)
	return s.activate(s.view.Items[0])
}

func (s *Session) activate(item Item) Commit {
	if item.Synthetic {
		return Commit{Kind: CommitCopy, Value: item.Result, Item: item}
	}

	// An empty command still commits; the launcher treats it as a no-op.
	exec, ok := s.src.Command(item.Name)
	if !ok {
		exec = item.Exec
	}
	return Commit{Kind: CommitLaunch, Value: exec, Item: item}
}

func (s *Session) clamp(index int) int {
	if index < 0 {
		return 0
	}
	if last := len(s.view.Items) - 1; index > last {
		return last
	}
	return index
}

func (s *Session) ensureVisible() {
	cursor := s.view.Selected
	if cursor == NoSelection {
		return
	}
	if cursor < s.offset {
		s.offset = cursor
	} else if cursor >= s.offset+s.pageSize {
		s.offset = cursor - s.pageSize + 1
	}
	if maxOffset := len(s.view.Items) - s.pageSize; s.offset > maxOffset && maxOffset >= 0 {
		s.offset = maxOffset
	}
}
