// Package session keeps a local copy of the remote todo collection in sync
// with the server.
//
// State is a plain value. The Apply* functions fold the outcome of one API
// call into it and never mutate their input, so any single owner (the TUI's
// Update loop, or Session below) can drive them.
package session

import (
	"slices"

	"github.com/idilsaglam/tada/internal/model"
)

// Op names the operation that produced an outcome.
type Op int

const (
	OpFetch Op = iota
	OpAdd
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpFetch:
		return "fetch"
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Message is the user-facing text shown when o fails.
func (o Op) Message() string {
	switch o {
	case OpFetch:
		return "Failed to fetch todos"
	case OpAdd:
		return "Failed to add todo"
	case OpUpdate:
		return "Failed to update todo"
	case OpDelete:
		return "Failed to delete todo"
	}
	return "Operation failed"
}

// State is the client's view of the collection.
// Loading is only set around bulk fetches; Err holds at most one message.
type State struct {
	Items   []model.Todo
	Loading bool
	Err     string
}

// Index returns the position of id in Items, or -1.
func (s State) Index(id int64) int {
	return slices.IndexFunc(s.Items, func(t model.Todo) bool { return t.ID == id })
}

// Find returns the item with id.
func (s State) Find(id int64) (model.Todo, bool) {
	if i := s.Index(id); i >= 0 {
		return s.Items[i], true
	}
	return model.Todo{}, false
}

// Stats counts completed and pending items.
func (s State) Stats() (done, pending int) {
	for _, t := range s.Items {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func StartLoad(s State) State {
	s.Loading = true
	return s
}

// ApplyLoad replaces Items wholesale on success. Loading is cleared either way.
func ApplyLoad(s State, items []model.Todo, err error) State {
	s.Loading = false
	if err != nil {
		s.Err = OpFetch.Message()
		return s
	}
	s.Items = slices.Clone(items)
	if s.Items == nil {
		s.Items = []model.Todo{}
	}
	s.Err = ""
	return s
}

// ApplyAdd appends the server's record to the end of Items.
func ApplyAdd(s State, created model.Todo, err error) State {
	if err != nil {
		s.Err = OpAdd.Message()
		return s
	}
	items := make([]model.Todo, 0, len(s.Items)+1)
	items = append(items, s.Items...)
	s.Items = append(items, created)
	s.Err = ""
	return s
}

// ApplyEdit swaps in the server's record for id, keeping the order.
// An id no longer present (deleted meanwhile) leaves Items as they are.
func ApplyEdit(s State, id int64, updated model.Todo, err error) State {
	if err != nil {
		s.Err = OpUpdate.Message()
		return s
	}
	items := slices.Clone(s.Items)
	for i := range items {
		if items[i].ID == id {
			items[i] = updated
		}
	}
	s.Items = items
	s.Err = ""
	return s
}

// ApplyRemove drops id from Items after a confirmed delete.
func ApplyRemove(s State, id int64, err error) State {
	if err != nil {
		s.Err = OpDelete.Message()
		return s
	}
	items := make([]model.Todo, 0, len(s.Items))
	for _, t := range s.Items {
		if t.ID != id {
			items = append(items, t)
		}
	}
	s.Items = items
	s.Err = ""
	return s
}

// Toggled returns t with Completed flipped and everything else kept.
func Toggled(t model.Todo) model.Todo {
	t.Completed = !t.Completed
	return t
}
