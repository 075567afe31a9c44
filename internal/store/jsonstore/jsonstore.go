package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// The whole file is rewritten on every mutation; fine for a dev server.

const DefaultFileName = "todos.json"

type fileFormat struct {
	NextID int64        `json:"next_id"`
	Todos  []model.Todo `json:"todos"`
}

// Store keeps todos in one JSON file guarded by a mutex.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ store.Store = (*Store)(nil)

// Open returns a store rooted at path. An empty path means ./todos.json.
func Open(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) Close() error { return nil }

func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.load()
	if err != nil {
		return nil, err
	}
	return f.Todos, nil
}

func (s *Store) Get(ctx context.Context, id int64) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	i := indexOf(f.Todos, id)
	if i < 0 {
		return model.Todo{}, store.ErrNotFound
	}
	return f.Todos[i], nil
}

func (s *Store) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	t.ID = f.NextID
	f.NextID++
	f.Todos = append(f.Todos, t)
	if err := s.save(f); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (s *Store) Update(ctx context.Context, id int64, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	i := indexOf(f.Todos, id)
	if i < 0 {
		return model.Todo{}, store.ErrNotFound
	}
	t.ID = id
	f.Todos[i] = t
	if err := s.save(f); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(f.Todos, id)
	if i < 0 {
		return store.ErrNotFound
	}
	f.Todos = append(f.Todos[:i], f.Todos[i+1:]...)
	return s.save(f)
}

func (s *Store) load() (fileFormat, error) {
	f := fileFormat{NextID: 1, Todos: []model.Todo{}}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read file: %w", err)
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return f, fmt.Errorf("json unmarshal: %w", err)
	}
	if f.Todos == nil {
		f.Todos = []model.Todo{}
	}
	// Files edited by hand may lack next_id.
	for _, t := range f.Todos {
		if t.ID >= f.NextID {
			f.NextID = t.ID + 1
		}
	}
	return f, nil
}

func (s *Store) save(f fileFormat) error {
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func indexOf(todos []model.Todo, id int64) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
