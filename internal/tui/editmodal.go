package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

// editModal is a show/hide overlay over one todo.
type editModal struct {
	open  bool
	todo  model.Todo
	title textinput.Model
	desc  textarea.Model
	focus int // 0 title, 1 description
	err   string
}

func newEditModal() editModal {
	title := textinput.New()
	title.Prompt = "Title: "
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.CharLimit = 500
	desc.SetWidth(48)
	desc.SetHeight(4)

	return editModal{title: title, desc: desc}
}

// Show opens the modal with buffers pre-filled from t.
func (m editModal) Show(t model.Todo) (editModal, tea.Cmd) {
	m.open = true
	m.todo = t
	m.err = ""
	m.focus = 0
	m.title.SetValue(t.Title)
	m.title.CursorEnd()
	m.desc.SetValue(t.Description)
	m.desc.Blur()
	cmd := m.title.Focus()
	return m, cmd
}

// Hide closes the modal and discards unsaved edits.
func (m editModal) Hide() editModal {
	m.open = false
	m.todo = model.Todo{}
	m.err = ""
	m.title.SetValue("")
	m.desc.SetValue("")
	m.title.Blur()
	m.desc.Blur()
	return m
}

func (m editModal) Update(msg tea.Msg) (editModal, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			return m, emit(closeEditMsg{})
		case "tab", "shift+tab":
			return m.switchFocus()
		case "ctrl+s":
			return m.save()
		case "enter":
			if m.focus == 0 {
				return m.save()
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

// save sends the whole record with the edited fields merged in.
func (m editModal) save() (editModal, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	if title == "" {
		m.err = errEmptyTitle
		return m, nil
	}
	t := m.todo
	t.Title = title
	t.Description = m.desc.Value()
	return m, emit(editRequestedMsg{id: t.ID, todo: t})
}

func (m editModal) switchFocus() (editModal, tea.Cmd) {
	if m.focus == 0 {
		m.focus = 1
		m.title.Blur()
		cmd := m.desc.Focus()
		return m, cmd
	}
	m.focus = 0
	m.desc.Blur()
	cmd := m.title.Focus()
	return m, cmd
}

func (m editModal) View() string {
	if !m.open {
		return ""
	}
	head := titleStyle.Render("Edit Todo")
	if m.err != "" {
		head += " — " + errorStyle.Render(m.err)
	}
	body := strings.Join([]string{
		head,
		"",
		m.title.View(),
		"",
		m.desc.View(),
		"",
		helpStyle.Render("tab: switch field   ctrl+s: save   esc: cancel"),
	}, "\n")
	return modalStyle.Render(body)
}
