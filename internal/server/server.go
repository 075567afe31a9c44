// Package server is a reference implementation of the todo collection
// endpoint, used for local development and by the client tests.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

// CollectionPath is where the todo resource is mounted.
const CollectionPath = "/api/todos"

type Server struct {
	store  store.Store
	logger *log.Logger
}

func New(st store.Store, logger *log.Logger) *Server {
	return &Server{store: st, logger: logger}
}

// OpenStore builds the backend named by kind ("json" or "sqlite").
func OpenStore(ctx context.Context, kind, path string) (store.Store, error) {
	switch kind {
	case store.KindJSON, "":
		return jsonstore.Open(path)
	case store.KindSQLite:
		return sqlitestore.Open(ctx, path)
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}

// Router returns the collection routes wrapped in request logging.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(s.logger))

	r.Methods(http.MethodGet).Path(CollectionPath).HandlerFunc(s.listTodos)
	r.Methods(http.MethodPost).Path(CollectionPath).HandlerFunc(s.createTodo)
	r.Methods(http.MethodGet).Path(CollectionPath + "/{id}").HandlerFunc(s.getTodo)
	r.Methods(http.MethodPut).Path(CollectionPath + "/{id}").HandlerFunc(s.updateTodo)
	r.Methods(http.MethodDelete).Path(CollectionPath + "/{id}").HandlerFunc(s.deleteTodo)
	r.Methods(http.MethodGet).Path("/health").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	})
	return r
}

// ListenAndServe blocks until ctx is done, then shuts the listener down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "collection", CollectionPath)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// -------------- handlers ----------------

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todos)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	t, ok := s.decodeTodo(w, r)
	if !ok {
		return
	}
	created, err := s.store.Create(r.Context(), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, ok := s.decodeTodo(w, r)
	if !ok {
		return
	}
	updated, err := s.store.Update(r.Context(), id, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -------------- helpers ----------------

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeErrorBody(w, r, http.StatusBadRequest, "invalid todo id: "+raw)
		return 0, false
	}
	return id, true
}

func (s *Server) decodeTodo(w http.ResponseWriter, r *http.Request) (model.Todo, bool) {
	var t model.Todo
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeErrorBody(w, r, http.StatusBadRequest, "malformed todo: "+err.Error())
		return model.Todo{}, false
	}
	return t, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeErrorBody(w, r, http.StatusNotFound, fmt.Sprintf("Todo not found with id: %s", mux.Vars(r)["id"]))
		return
	}
	s.logger.Error("store failure", "method", r.Method, "url", r.URL.String(), "err", err)
	writeErrorBody(w, r, http.StatusInternalServerError, err.Error())
}

type errorBody struct {
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Status    int       `json:"status"`
}

func writeErrorBody(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, status, errorBody{
		Timestamp: time.Now().UTC(),
		Message:   msg,
		Path:      r.URL.Path,
		Status:    status,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
