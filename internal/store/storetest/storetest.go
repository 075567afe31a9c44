// Package storetest is a behavioral suite every store.Store must pass.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// Run exercises open() against the store contract. open must return an
// empty store each time it is called.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("EmptyList", func(t *testing.T) {
		s := open(t)
		todos, err := s.List(context.Background())
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if todos == nil || len(todos) != 0 {
			t.Errorf("List: got %#v, want empty non-nil", todos)
		}
	})

	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		a, err := s.Create(ctx, model.Todo{ID: 77, Title: "a"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		b, err := s.Create(ctx, model.Todo{Title: "b", Description: "bee", Completed: true})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if a.ID <= 0 || b.ID <= a.ID {
			t.Errorf("ids: a=%d b=%d", a.ID, b.ID)
		}
		todos, _ := s.List(ctx)
		if len(todos) != 2 || todos[0] != a || todos[1] != b {
			t.Errorf("List: got %+v", todos)
		}
	})

	t.Run("UpdateReplacesFields", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		a, _ := s.Create(ctx, model.Todo{Title: "a", Description: "x"})
		got, err := s.Update(ctx, a.ID, model.Todo{ID: 999, Title: "A", Description: "", Completed: true})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		want := model.Todo{ID: a.ID, Title: "A", Description: "", Completed: true}
		if got != want {
			t.Errorf("Update: got %+v, want %+v", got, want)
		}
		if fetched, _ := s.Get(ctx, a.ID); fetched != want {
			t.Errorf("Get: got %+v, want %+v", fetched, want)
		}
	})

	t.Run("DeleteRemoves", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		a, _ := s.Create(ctx, model.Todo{Title: "a"})
		b, _ := s.Create(ctx, model.Todo{Title: "b"})
		if err := s.Delete(ctx, a.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		todos, _ := s.List(ctx)
		if len(todos) != 1 || todos[0].ID != b.ID {
			t.Errorf("List: got %+v", todos)
		}
		// ids are never reused
		c, _ := s.Create(ctx, model.Todo{Title: "c"})
		if c.ID <= b.ID {
			t.Errorf("reused id: %d", c.ID)
		}
	})

	t.Run("MissingIDs", func(t *testing.T) {
		ctx := context.Background()
		s := open(t)
		if _, err := s.Get(ctx, 12345); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Get: got %v", err)
		}
		if _, err := s.Update(ctx, 12345, model.Todo{Title: "x"}); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Update: got %v", err)
		}
		if err := s.Delete(ctx, 12345); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Delete: got %v", err)
		}
	})
}
