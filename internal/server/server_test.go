package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := jsonstore.Open(filepath.Join(t.TempDir(), "todos.json"))
	if err != nil {
		t.Fatal(err)
	}
	return New(st, log.New(io.Discard)).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, CollectionPath, `{"title":"Buy milk","description":"2l","completed":false}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST: status %d, body %s", rec.Code, rec.Body)
	}
	var created model.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 || created.Title != "Buy milk" {
		t.Errorf("POST: got %+v", created)
	}

	rec = do(t, h, http.MethodPut, CollectionPath+"/1", `{"title":"Buy oat milk","description":"","completed":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT: status %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, CollectionPath, "")
	var todos []model.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &todos); err != nil {
		t.Fatal(err)
	}
	want := model.Todo{ID: 1, Title: "Buy oat milk", Completed: true}
	if len(todos) != 1 || todos[0] != want {
		t.Errorf("GET: got %+v", todos)
	}

	rec = do(t, h, http.MethodDelete, CollectionPath+"/1", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("DELETE: status %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, CollectionPath, "")
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("GET after delete: %s", rec.Body)
	}
}

func TestErrorResponses(t *testing.T) {
	h := newRouter(t)
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"get missing", http.MethodGet, CollectionPath + "/42", "", http.StatusNotFound, "Todo not found with id: 42"},
		{"put missing", http.MethodPut, CollectionPath + "/42", `{"title":"x"}`, http.StatusNotFound, "Todo not found with id: 42"},
		{"delete missing", http.MethodDelete, CollectionPath + "/42", "", http.StatusNotFound, "Todo not found with id: 42"},
		{"bad id", http.MethodGet, CollectionPath + "/abc", "", http.StatusBadRequest, "invalid todo id: abc"},
		{"zero id", http.MethodDelete, CollectionPath + "/0", "", http.StatusBadRequest, "invalid todo id: 0"},
		{"malformed body", http.MethodPost, CollectionPath, `{"title":`, http.StatusBadRequest, "malformed todo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v (%s)", err, rec.Body)
			}
			if !strings.Contains(body.Message, tt.wantMsg) {
				t.Errorf("message: got %q, want %q", body.Message, tt.wantMsg)
			}
			if body.Status != tt.wantStatus || body.Path != tt.path {
				t.Errorf("body: got %+v", body)
			}
		})
	}
}

type brokenStore struct{ store.Store }

func (brokenStore) List(context.Context) ([]model.Todo, error) {
	return nil, errors.New("disk full")
}

func TestStoreFailureIs500(t *testing.T) {
	var logs bytes.Buffer
	h := New(brokenStore{}, log.New(&logs)).Router()

	rec := do(t, h, http.MethodGet, CollectionPath, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Errorf("failure not logged: %q", logs.String())
	}
}

func TestRequestID(t *testing.T) {
	var logs bytes.Buffer
	h := New(brokenStore{}, log.New(&logs)).Router()

	rec := do(t, h, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID: got %q", got)
	}
	if !strings.Contains(logs.String(), "abc-123") {
		t.Errorf("request id not logged: %q", logs.String())
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, kind := range []string{"", store.KindJSON, store.KindSQLite} {
		st, err := OpenStore(ctx, kind, filepath.Join(dir, "todos-"+kind))
		if err != nil {
			t.Fatalf("OpenStore(%q): %v", kind, err)
		}
		_ = st.Close()
	}
	if _, err := OpenStore(ctx, "postgres", ""); err == nil {
		t.Error("OpenStore(postgres): want error")
	}
}
