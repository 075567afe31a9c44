package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

// Intents: emitted by child components, applied by the page.
type (
	addRequestedMsg  struct{ todo model.Todo }
	editRequestedMsg struct {
		id   int64
		todo model.Todo
	}
	toggleRequestedMsg struct{ todo model.Todo }
	deleteRequestedMsg struct{ id int64 }
	openEditMsg        struct{ todo model.Todo }
	closeEditMsg       struct{}
)

// Outcomes of API calls, folded into session.State by the page.
type (
	loadedMsg struct {
		items []model.Todo
		err   error
	}
	addedMsg struct {
		todo model.Todo
		err  error
	}
	editedMsg struct {
		id   int64
		todo model.Todo
		err  error
	}
	removedMsg struct {
		id  int64
		err error
	}
)

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
