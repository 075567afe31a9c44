package session

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

// API is the remote collection. *api.Client satisfies it.
type API interface {
	List(ctx context.Context) ([]model.Todo, error)
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Update(ctx context.Context, id int64, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Session is the blocking, goroutine-safe face of State. Calls are not
// queued: overlapping operations race and whichever response lands last
// decides the local copy. Failures are logged and folded into Err; no
// method returns an error.
type Session struct {
	api    API
	logger *log.Logger

	mu    sync.Mutex
	state State
}

func New(api API, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{api: api, logger: logger, state: State{Items: []model.Todo{}}}
}

// State returns a snapshot safe to read without further locking.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Items = append([]model.Todo(nil), s.state.Items...)
	return st
}

func (s *Session) apply(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}

// Load fetches the whole collection and replaces the local copy.
func (s *Session) Load(ctx context.Context) {
	s.apply(StartLoad)
	items, err := s.api.List(ctx)
	s.report(OpFetch, err)
	s.apply(func(st State) State { return ApplyLoad(st, items, err) })
}

// Refresh is Load under the name the UI binds to its reload key.
func (s *Session) Refresh(ctx context.Context) { s.Load(ctx) }

// Add creates candidate on the server and appends the returned record.
func (s *Session) Add(ctx context.Context, candidate model.Todo) {
	created, err := s.api.Create(ctx, candidate)
	s.report(OpAdd, err)
	s.apply(func(st State) State { return ApplyAdd(st, created, err) })
}

// Edit sends the full record for id and replaces the local item with the reply.
func (s *Session) Edit(ctx context.Context, id int64, t model.Todo) {
	updated, err := s.api.Update(ctx, id, t)
	s.report(OpUpdate, err, "id", id)
	s.apply(func(st State) State { return ApplyEdit(st, id, updated, err) })
}

// Remove deletes id on the server, then locally.
func (s *Session) Remove(ctx context.Context, id int64) {
	err := s.api.Delete(ctx, id)
	s.report(OpDelete, err, "id", id)
	s.apply(func(st State) State { return ApplyRemove(st, id, err) })
}

// Toggle is Edit with Completed inverted.
func (s *Session) Toggle(ctx context.Context, t model.Todo) {
	s.Edit(ctx, t.ID, Toggled(t))
}

func (s *Session) report(op Op, err error, kv ...any) {
	if err == nil {
		return
	}
	LogFailure(s.logger, op, err, kv...)
}

// LogFailure records a failed operation the same way everywhere.
func LogFailure(logger *log.Logger, op Op, err error, kv ...any) {
	if logger == nil {
		return
	}
	fields := append([]any{"op", op.String(), "err", err}, kv...)
	logger.Error(op.Message(), fields...)
}
