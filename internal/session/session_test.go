package session

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

// fakeAPI is an in-memory collection with switchable failures.
type fakeAPI struct {
	mu     sync.Mutex
	todos  []model.Todo
	nextID int64

	failList, failCreate, failUpdate, failDelete bool
}

func newFakeAPI(todos ...model.Todo) *fakeAPI {
	f := &fakeAPI{nextID: 1}
	for _, t := range todos {
		f.todos = append(f.todos, t)
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f
}

func (f *fakeAPI) List(ctx context.Context) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errBoom
	}
	return append([]model.Todo(nil), f.todos...), nil
}

func (f *fakeAPI) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return model.Todo{}, errBoom
	}
	t.ID = f.nextID
	f.nextID++
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *fakeAPI) Update(ctx context.Context, id int64, t model.Todo) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return model.Todo{}, errBoom
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			t.ID = id
			f.todos[i] = t
			return t, nil
		}
	}
	return model.Todo{}, errBoom
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errBoom
	}
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return nil
		}
	}
	return errBoom
}

func TestSessionScenario(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI(model.Todo{ID: 1, Title: "Buy milk"})
	s := New(api, nil)

	s.Load(ctx)
	st := s.State()
	if st.Loading || st.Err != "" {
		t.Fatalf("after load: loading=%v err=%q", st.Loading, st.Err)
	}
	if len(st.Items) != 1 || st.Items[0].Title != "Buy milk" || st.Items[0].Completed {
		t.Fatalf("after load: %+v", st.Items)
	}

	s.Add(ctx, model.Todo{Title: "Read book", Description: "", Completed: false})
	st = s.State()
	if len(st.Items) != 2 || st.Items[1].ID != 2 || st.Items[1].Title != "Read book" {
		t.Fatalf("after add: %+v", st.Items)
	}

	s.Remove(ctx, 1)
	st = s.State()
	if len(st.Items) != 1 || st.Items[0].ID != 2 {
		t.Fatalf("after remove: %+v", st.Items)
	}

	api.failUpdate = true
	read := st.Items[0]
	read.Completed = true
	s.Edit(ctx, 2, read)
	st = s.State()
	if len(st.Items) != 1 || st.Items[0].Completed {
		t.Errorf("after failed edit: %+v", st.Items)
	}
	if st.Err != "Failed to update todo" {
		t.Errorf("Err: got %q", st.Err)
	}
}

func TestSessionToggleTwice(t *testing.T) {
	ctx := context.Background()
	s := New(newFakeAPI(model.Todo{ID: 1, Title: "Buy milk", Description: "2l"}), nil)
	s.Load(ctx)

	orig, _ := s.State().Find(1)
	s.Toggle(ctx, orig)
	once, _ := s.State().Find(1)
	if !once.Completed {
		t.Fatal("first toggle should complete")
	}
	s.Toggle(ctx, once)
	twice, _ := s.State().Find(1)
	if twice != orig {
		t.Errorf("got %+v, want %+v", twice, orig)
	}
}

func TestSessionLoadFailureLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	api := newFakeAPI()
	api.failList = true

	s := New(api, logger)
	s.Refresh(context.Background())

	st := s.State()
	if st.Loading {
		t.Error("Loading should be released after failure")
	}
	if st.Err != "Failed to fetch todos" {
		t.Errorf("Err: got %q", st.Err)
	}
	out := buf.String()
	if !strings.Contains(out, "Failed to fetch todos") || !strings.Contains(out, "boom") {
		t.Errorf("log output missing failure: %q", out)
	}
}

func TestSessionSnapshotIsolated(t *testing.T) {
	s := New(newFakeAPI(model.Todo{ID: 1, Title: "a"}), nil)
	s.Load(context.Background())

	snap := s.State()
	snap.Items[0].Title = "mutated"
	if got, _ := s.State().Find(1); got.Title != "a" {
		t.Errorf("snapshot aliased session state: %q", got.Title)
	}
}

func TestSessionConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	s := New(newFakeAPI(), nil)
	s.Load(ctx)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(ctx, model.Todo{Title: "t"})
		}()
	}
	wg.Wait()

	st := s.State()
	if len(st.Items) != n {
		t.Fatalf("len: got %d, want %d", len(st.Items), n)
	}
	seen := map[int64]bool{}
	for _, it := range st.Items {
		if seen[it.ID] {
			t.Errorf("duplicate id %d", it.ID)
		}
		seen[it.ID] = true
	}
}
