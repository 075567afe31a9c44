package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/model"
)

const emptyListText = "No todos yet. Add one above!"

// listItem adapts model.Todo to bubbles/list.Item
type listItem struct{ todo model.Todo }

func (i listItem) Title() string       { return i.todo.Title }
func (i listItem) Description() string { return i.todo.Description }
func (i listItem) FilterValue() string { return i.todo.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s", box, text)
	if it.todo.Description != "" {
		line += mutedStyle.Render("  · " + it.todo.Description)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	if width := m.Width(); width > 2 {
		line = ansi.Truncate(line, width-2, "…")
	}
	fmt.Fprintln(w, prefix+line)
}

// todoList renders the items and turns item keys into intents.
type todoList struct {
	list list.Model
	keys keyMap
}

func newTodoList(keys keyMap) todoList {
	l := list.New(nil, itemDelegate{}, 80, 20)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp
	return todoList{list: l, keys: keys}
}

func (l *todoList) SetTodos(todos []model.Todo) tea.Cmd {
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, listItem{todo: t})
	}
	return l.list.SetItems(items)
}

func (l *todoList) SetSize(w, h int) { l.list.SetSize(w, h) }

func (l todoList) Len() int { return len(l.list.Items()) }

func (l todoList) Selected() (model.Todo, bool) {
	it, ok := l.list.SelectedItem().(listItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// Filtering reports whether keys currently belong to the filter prompt.
func (l todoList) Filtering() bool { return l.list.SettingFilter() }

func (l todoList) Update(msg tea.Msg) (todoList, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && !l.Filtering() {
		switch {
		case key.Matches(km, l.keys.Toggle):
			if t, ok := l.Selected(); ok {
				return l, emit(toggleRequestedMsg{todo: t})
			}
			return l, nil
		case key.Matches(km, l.keys.Edit):
			if t, ok := l.Selected(); ok {
				return l, emit(openEditMsg{todo: t})
			}
			return l, nil
		case key.Matches(km, l.keys.Delete):
			if t, ok := l.Selected(); ok {
				return l, emit(deleteRequestedMsg{id: t.ID})
			}
			return l, nil
		}
	}
	var cmd tea.Cmd
	l.list, cmd = l.list.Update(msg)
	return l, cmd
}

func (l todoList) View() string {
	if l.Len() == 0 {
		return mutedStyle.Render(emptyListText)
	}
	return l.list.View()
}
