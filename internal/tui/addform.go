package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
)

const errEmptyTitle = "Title cannot be empty"

// addForm buffers a new todo until it is submitted or cancelled.
type addForm struct {
	open  bool
	title textinput.Model
	desc  textinput.Model
	focus int // 0 title, 1 description
	err   string
}

func newAddForm() addForm {
	title := textinput.New()
	title.Prompt = "> "
	title.Placeholder = "Todo title"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Prompt = "  "
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	return addForm{title: title, desc: desc}
}

func (f addForm) Open() (addForm, tea.Cmd) {
	f.open = true
	f.err = ""
	f.focus = 0
	f.desc.Blur()
	cmd := f.title.Focus()
	return f, cmd
}

// Close drops whatever was typed.
func (f addForm) Close() addForm {
	f.open = false
	f.err = ""
	f.focus = 0
	f.title.SetValue("")
	f.desc.SetValue("")
	f.title.Blur()
	f.desc.Blur()
	return f
}

func (f addForm) Update(msg tea.Msg) (addForm, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			title := strings.TrimSpace(f.title.Value())
			if title == "" {
				f.err = errEmptyTitle
				return f, nil
			}
			todo := model.Todo{Title: title, Description: f.desc.Value(), Completed: false}
			return f.Close(), emit(addRequestedMsg{todo: todo})
		case "esc":
			return f.Close(), nil
		case "tab", "shift+tab":
			return f.switchFocus()
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd
}

func (f addForm) switchFocus() (addForm, tea.Cmd) {
	if f.focus == 0 {
		f.focus = 1
		f.title.Blur()
		cmd := f.desc.Focus()
		return f, cmd
	}
	f.focus = 0
	f.desc.Blur()
	cmd := f.title.Focus()
	return f, cmd
}

func (f addForm) View() string {
	if !f.open {
		return helpStyle.Render("a: add a todo")
	}
	head := titleStyle.Render("Add new todo")
	if f.err != "" {
		head += " — " + errorStyle.Render(f.err)
	}
	return frameStyle.Render(head + "\n" + f.title.View() + "\n" + f.desc.View())
}
