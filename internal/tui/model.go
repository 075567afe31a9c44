// Package tui is the interactive todo page: a list backed by the remote
// collection, an add form and an edit modal.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/session"
	"github.com/idilsaglam/tada/internal/ui"
)

// Model composes the page. It is the single owner of session.State: child
// components only emit intents, and API results come back as messages.
// The todo being edited lives in the edit modal while it is open.
type Model struct {
	ctx    context.Context
	api    session.API
	logger *log.Logger

	state session.State

	list    todoList
	add     addForm
	edit    editModal
	spinner spinner.Model
	keys    keyMap

	width, height int
}

// New builds the page. The first load is issued by Init, as on mount.
func New(ctx context.Context, api session.API, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	keys := defaultKeys()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	m := Model{
		ctx:     ctx,
		api:     api,
		logger:  logger,
		state:   session.StartLoad(session.State{Items: []model.Todo{}}),
		list:    newTodoList(keys),
		add:     newAddForm(),
		edit:    newEditModal(),
		spinner: sp,
		keys:    keys,
		width:   80,
		height:  24,
	}
	m.resize()
	return m
}

// State exposes the synchronized state, mainly for callers embedding the page.
func (m Model) State() session.State { return m.state }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// -------------- API commands ----------------

func (m Model) loadCmd() tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		items, err := api.List(ctx)
		return loadedMsg{items: items, err: err}
	}
}

func (m Model) addCmd(t model.Todo) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		created, err := api.Create(ctx, t)
		return addedMsg{todo: created, err: err}
	}
}

func (m Model) editCmd(id int64, t model.Todo) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		updated, err := api.Update(ctx, id, t)
		return editedMsg{id: id, todo: updated, err: err}
	}
}

func (m Model) removeCmd(id int64) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		err := api.Delete(ctx, id)
		return removedMsg{id: id, err: err}
	}
}

// -------------- update ----------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// outcomes
	case loadedMsg:
		if msg.err != nil {
			session.LogFailure(m.logger, session.OpFetch, msg.err)
		}
		m.state = session.ApplyLoad(m.state, msg.items, msg.err)
		return m, m.list.SetTodos(m.state.Items)
	case addedMsg:
		if msg.err != nil {
			session.LogFailure(m.logger, session.OpAdd, msg.err)
		}
		m.state = session.ApplyAdd(m.state, msg.todo, msg.err)
		return m, m.list.SetTodos(m.state.Items)
	case editedMsg:
		if msg.err != nil {
			session.LogFailure(m.logger, session.OpUpdate, msg.err, "id", msg.id)
		}
		m.state = session.ApplyEdit(m.state, msg.id, msg.todo, msg.err)
		return m, m.list.SetTodos(m.state.Items)
	case removedMsg:
		if msg.err != nil {
			session.LogFailure(m.logger, session.OpDelete, msg.err, "id", msg.id)
		}
		m.state = session.ApplyRemove(m.state, msg.id, msg.err)
		return m, m.list.SetTodos(m.state.Items)

	// intents
	case addRequestedMsg:
		return m, m.addCmd(msg.todo)
	case editRequestedMsg:
		m = m.closeEdit()
		return m, m.editCmd(msg.id, msg.todo)
	case toggleRequestedMsg:
		return m, m.editCmd(msg.todo.ID, session.Toggled(msg.todo))
	case deleteRequestedMsg:
		return m, m.removeCmd(msg.id)
	case openEditMsg:
		var cmd tea.Cmd
		m.edit, cmd = m.edit.Show(msg.todo)
		return m, cmd
	case closeEditMsg:
		return m.closeEdit(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blinks, filter results and the like
	var cmd tea.Cmd
	switch {
	case m.edit.open:
		m.edit, cmd = m.edit.Update(msg)
	case m.add.open:
		m.add, cmd = m.add.Update(msg)
	case m.listVisible():
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch {
	case m.edit.open:
		m.edit, cmd = m.edit.Update(msg)
		return m, cmd
	case m.add.open:
		m.add, cmd = m.add.Update(msg)
		m.resize()
		return m, cmd
	case m.listVisible() && m.list.Filtering():
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.add, cmd = m.add.Open()
		m.resize()
		return m, cmd
	case key.Matches(msg, m.keys.Reload):
		if m.state.Loading {
			return m, nil
		}
		m.state = session.StartLoad(m.state)
		return m, tea.Batch(m.spinner.Tick, m.loadCmd())
	}

	if m.listVisible() {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) closeEdit() Model {
	m.edit = m.edit.Hide()
	return m
}

// The list is shown only once loaded and while no error is pending.
func (m Model) listVisible() bool {
	return !m.state.Loading && m.state.Err == ""
}

// -------------- view ----------------

func (m *Model) resize() {
	// header (2) + form or hint + frame border/padding
	chrome := 6 + lipgloss.Height(m.add.View())
	h := m.height - chrome
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.list.SetSize(w, h)
}

func (m Model) header() string {
	done, pending := m.state.Stats()
	total := len(m.state.Items)
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("My Todo List"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		accentStyle.Render("Total"), total,
	)
	return counts + "\n" + mutedStyle.Render(ui.ProgressBar(done, total, 28))
}

func (m Model) body() string {
	switch {
	case m.state.Loading:
		return m.spinner.View() + " Loading todos..."
	case m.state.Err != "":
		return errorStyle.Render(m.state.Err) + "\n" + helpStyle.Render("r: reload   a: add   q: quit")
	}
	return m.list.View()
}

func (m Model) View() string {
	if m.edit.open {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.edit.View())
	}
	content := strings.Join([]string{m.header(), m.add.View(), "", m.body()}, "\n")
	return frameStyle.Render(content)
}

// Run starts the page in the alternate screen and blocks until the user quits.
func Run(ctx context.Context, api session.API, logger *log.Logger) error {
	p := tea.NewProgram(New(ctx, api, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
