package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 2 * time.Second

// clearStatusMsg removes a status line once it has been on screen long enough
type clearStatusMsg struct {
	id int
}

func clearStatusAfter(id int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}
